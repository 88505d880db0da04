package types

// UserResponse is the credential-stripped representation returned by every
// endpoint that serializes a user.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
