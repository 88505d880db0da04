package models

type ProjectMembership struct {
	BaseModel

	UserID    string `gorm:"not null;uniqueIndex:idx_user_project"`
	ProjectID string `gorm:"not null;uniqueIndex:idx_user_project"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
