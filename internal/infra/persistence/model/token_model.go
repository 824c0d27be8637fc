package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenModel mirrors the 'user_tokens' table. The opaque value is stored as-is;
// the unique index doubles as a backstop against the astronomically
// unlikely random collision.
type TokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Value     string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TokenModel) TableName() string {
	return "user_tokens"
}
