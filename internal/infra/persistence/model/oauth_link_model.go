package model

import (
	"time"

	"github.com/google/uuid"
)

// OAuthLinkModel mirrors the 'oauth_providers' table. The composite unique index
// guarantees one local account per provider identity.
type OAuthLinkModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProviderName   string     `gorm:"type:varchar(50);not null;uniqueIndex:idx_oauth_provider_identity"`
	ProviderUserID string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_oauth_provider_identity"`
	ProviderEmail  string     `gorm:"type:varchar(255)"`
	AccessToken    string     `gorm:"type:text"`
	RefreshToken   string     `gorm:"type:text"`
	TokenExpiresAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (OAuthLinkModel) TableName() string {
	return "oauth_providers"
}
