// Package entity contains the core business objects of the project.
package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Field type tags accepted for registration fields.
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeNumber   = "number"
	FieldTypeSelect   = "select"
	FieldTypeCheckbox = "checkbox"
	FieldTypeTextarea = "textarea"
)

var validFieldTypes = []string{
	FieldTypeText, FieldTypeEmail, FieldTypeNumber,
	FieldTypeSelect, FieldTypeCheckbox, FieldTypeTextarea,
}

// ValidFieldType reports whether the given field type tag is supported.
func ValidFieldType(fieldType string) bool {
	return slices.Contains(validFieldTypes, fieldType)
}

// FieldTypes returns the supported registration field type tags.
func FieldTypes() []string {
	return slices.Clone(validFieldTypes)
}

// RegistrationField is an admin-configurable custom field collected during
// user registration. Inactive fields are hidden from the public registration
// form and skipped during validation.
type RegistrationField struct {
	ID                uuid.UUID // The unique ID for this field definition.
	FieldName         string    // Internal field name used in the API. Globally unique.
	FieldLabel        string    // Display label shown to users.
	FieldType         string    // One of FieldTypes().
	IsRequired        bool      // Whether registration fails without a value for this field.
	DisplayOrder      int       // Lower numbers appear first on the form.
	IsActive          bool      // Whether the field is currently collected.
	Placeholder       string    // Placeholder text for the form input, optional.
	HelpText          string    // Help text displayed with the field, optional.
	ValidationPattern string    // Regex applied to submitted values of text-like fields, optional.
	Options           []string  // Choices for select fields, optional.
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// UserCustomField stores one submitted custom-field value for a user.
// FieldName matches RegistrationField.FieldName; the value is kept as the
// raw submitted string and cast by consumers based on the field type.
type UserCustomField struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	FieldName  string
	FieldValue string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
