package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationFieldModel mirrors the 'registration_fields' table. Select
// options are stored as a JSON array through GORM's serializer.
type RegistrationFieldModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	FieldName         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	FieldLabel        string    `gorm:"type:varchar(255);not null"`
	FieldType         string    `gorm:"type:varchar(20);not null"`
	IsRequired        bool      `gorm:"not null;default:false"`
	DisplayOrder      int       `gorm:"not null;default:0"`
	IsActive          bool      `gorm:"not null;default:true"`
	Placeholder       string    `gorm:"type:varchar(255)"`
	HelpText          string    `gorm:"type:text"`
	ValidationPattern string    `gorm:"type:varchar(500)"`
	Options           []string  `gorm:"type:text;serializer:json"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (RegistrationFieldModel) TableName() string {
	return "registration_fields"
}
