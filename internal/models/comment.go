package models

type Comment struct {
	BaseModel

	TicketID string `gorm:"not null;index"`
	AuthorID string `gorm:"not null;index"`
	Text     string `gorm:"not null"`

	// Relationships
	Ticket Ticket `gorm:"foreignKey:TicketID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Author User   `gorm:"foreignKey:AuthorID"`
}
