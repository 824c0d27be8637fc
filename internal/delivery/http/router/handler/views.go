package handler

import (
	"time"

	"authgate/internal/domain/entity"
	"authgate/internal/usecase"

	"github.com/google/uuid"
)

// sessionView is the response body for every operation that opens a session.
type sessionView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	HasPassword bool      `json:"hasPassword"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func newSessionView(output *usecase.AuthOutput) *sessionView {
	return &sessionView{
		ID:          output.User.ID,
		Email:       output.User.Email,
		Name:        output.User.Name,
		Role:        output.User.Role,
		HasPassword: output.User.HasPassword(),
		Token:       output.Token,
		ExpiresAt:   output.ExpiresAt,
	}
}

// userView is the public shape of an account, without credentials.
type userView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	HasPassword bool      `json:"hasPassword"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newUserView(user *entity.User) *userView {
	return &userView{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		Role:        user.Role,
		HasPassword: user.HasPassword(),
		CreatedAt:   user.CreatedAt,
	}
}

// profileView is a userView plus the custom registration field values.
type profileView struct {
	User         *userView         `json:"user"`
	CustomFields map[string]string `json:"customFields"`
}

func newProfileView(profile *usecase.ProfileOutput) *profileView {
	fields := make(map[string]string, len(profile.CustomFields))
	for _, field := range profile.CustomFields {
		fields[field.FieldName] = field.FieldValue
	}

	return &profileView{
		User:         newUserView(profile.User),
		CustomFields: fields,
	}
}

// providerView describes one linked OAuth identity.
type providerView struct {
	Provider string    `json:"provider"`
	Email    string    `json:"email"`
	LinkedAt time.Time `json:"linkedAt"`
}

func newProviderView(link *entity.OAuthLink) *providerView {
	return &providerView{
		Provider: link.ProviderName,
		Email:    link.ProviderEmail,
		LinkedAt: link.CreatedAt,
	}
}

// fieldView is the public shape of a registration field definition.
type fieldView struct {
	ID                uuid.UUID `json:"id"`
	FieldName         string    `json:"fieldName"`
	FieldLabel        string    `json:"fieldLabel"`
	FieldType         string    `json:"fieldType"`
	IsRequired        bool      `json:"isRequired"`
	DisplayOrder      int       `json:"displayOrder"`
	IsActive          bool      `json:"isActive"`
	Placeholder       string    `json:"placeholder,omitempty"`
	HelpText          string    `json:"helpText,omitempty"`
	ValidationPattern string    `json:"validationPattern,omitempty"`
	Options           []string  `json:"options,omitempty"`
}

func newFieldView(field *entity.RegistrationField) *fieldView {
	return &fieldView{
		ID:                field.ID,
		FieldName:         field.FieldName,
		FieldLabel:        field.FieldLabel,
		FieldType:         field.FieldType,
		IsRequired:        field.IsRequired,
		DisplayOrder:      field.DisplayOrder,
		IsActive:          field.IsActive,
		Placeholder:       field.Placeholder,
		HelpText:          field.HelpText,
		ValidationPattern: field.ValidationPattern,
		Options:           field.Options,
	}
}

func newFieldViews(fields []*entity.RegistrationField) []*fieldView {
	views := make([]*fieldView, 0, len(fields))
	for _, field := range fields {
		views = append(views, newFieldView(field))
	}

	return views
}
