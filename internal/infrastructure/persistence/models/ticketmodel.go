package models

import "gorm.io/datatypes"

type TicketModel struct {
	ID          uint           `gorm:"primaryKey"`
	Title       string         `gorm:"size:200;not null"`
	Description string         `gorm:"type:text;not null"`
	Priority    string         `gorm:"size:20;not null;index"`
	Status      string         `gorm:"size:20;not null;index"`
	PropertyID  uint           `gorm:"not null;index"`
	Metadata    datatypes.JSON `gorm:"type:json"`
	Version     int    `gorm:"not null;default:1"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt   int64  `gorm:"not null;index"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}
