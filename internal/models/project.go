package models

type Project struct {
	BaseModel

	Name        string `gorm:"not null"`
	Description string
	OwnerID     string `gorm:"not null;index"`

	// Relationships
	Owner              User                `gorm:"foreignKey:OwnerID"`
	ProjectMemberships []ProjectMembership `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tickets            []Ticket            `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
