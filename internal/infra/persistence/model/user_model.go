package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are application-generated UUIDs
// so the schema works identically on PostgreSQL and the in-memory test driver.
type UserModel struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key"`
	Email string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name  string    `gorm:"type:varchar(100)"`
	// NULL for accounts created through an OAuth provider.
	PasswordHash *string `gorm:"type:varchar(255)"`
	Role         string  `gorm:"type:varchar(50);not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Tokens       []TokenModel           `gorm:"foreignKey:UserID"`
	OAuthLinks   []OAuthLinkModel       `gorm:"foreignKey:UserID"`
	CustomFields []UserCustomFieldModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// UserCustomFieldModel mirrors the 'user_custom_fields' table. One row per
// custom registration field value captured at sign-up.
type UserCustomFieldModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_custom_field"`
	FieldName  string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_user_custom_field"`
	FieldValue string    `gorm:"type:text"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserCustomFieldModel) TableName() string {
	return "user_custom_fields"
}
