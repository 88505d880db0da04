package models

type Ticket struct {
	BaseModel

	ProjectID    string `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Description  string
	Status       string `gorm:"not null;default:'Todo'"`
	Priority     string `gorm:"not null;default:'Medium'"`
	CreatedByID  string `gorm:"not null;index"`
	AssignedToID string `gorm:"not null;index"`

	// Relationships
	Project    Project   `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CreatedBy  User      `gorm:"foreignKey:CreatedByID"`
	AssignedTo User      `gorm:"foreignKey:AssignedToID"`
	Comments   []Comment `gorm:"foreignKey:TicketID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
