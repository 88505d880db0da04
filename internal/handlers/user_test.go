package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestListUsers(t *testing.T) {
	r := setupTest(t)

	alice := registerUser(t, r, "Alice", "alice@example.com")
	registerUser(t, r, "Bob", "bob@example.com")

	w := performRequest(r, http.MethodGet, "/api/users", alice.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var users []userJSON
	decodeBody(t, w, &users)

	assert.Len(t, users, 2)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUpdateProfileName(t *testing.T) {
	r := setupTest(t)

	alice := registerUser(t, r, "Alice", "alice@example.com")

	w := performRequest(r, http.MethodPut, "/api/users/profile", alice.Token, gin.H{
		"name": "Alice Cooper",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User userJSON `json:"user"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, "Alice Cooper", resp.User.Name)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestUpdateProfilePassword(t *testing.T) {
	r := setupTest(t)

	alice := registerUser(t, r, "Alice", "alice@example.com")

	w := performRequest(r, http.MethodPut, "/api/users/profile", alice.Token, gin.H{
		"password": "new-password-456",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Old password stops working, new one logs in.
	w = performRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "new-password-456",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateProfileNothingToUpdate(t *testing.T) {
	r := setupTest(t)

	alice := registerUser(t, r, "Alice", "alice@example.com")

	w := performRequest(r, http.MethodPut, "/api/users/profile", alice.Token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
