package handler

import (
	"log/slog"
	"net/http"

	"authgate/internal/delivery/http/response"
	domainerrors "authgate/internal/domain/errors"
	"authgate/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FieldHandler serves the registration form definition, publicly for the
// sign-up page and fully for administrators.
type FieldHandler struct {
	fieldUC usecase.RegistrationFieldUsecase
	logger  *slog.Logger
}

// NewFieldHandler is the constructor for FieldHandler, injected by Fx.
func NewFieldHandler(fieldUC usecase.RegistrationFieldUsecase, logger *slog.Logger) *FieldHandler {
	return &FieldHandler{
		fieldUC: fieldUC,
		logger:  logger,
	}
}

type fieldRequest struct {
	FieldName         string   `json:"fieldName" validate:"required"`
	FieldLabel        string   `json:"fieldLabel" validate:"required"`
	FieldType         string   `json:"fieldType" validate:"required"`
	IsRequired        bool     `json:"isRequired"`
	DisplayOrder      int      `json:"displayOrder"`
	IsActive          bool     `json:"isActive"`
	Placeholder       string   `json:"placeholder"`
	HelpText          string   `json:"helpText"`
	ValidationPattern string   `json:"validationPattern"`
	Options           []string `json:"options"`
}

func (req *fieldRequest) toInput() usecase.FieldInput {
	return usecase.FieldInput{
		FieldName:         req.FieldName,
		FieldLabel:        req.FieldLabel,
		FieldType:         req.FieldType,
		IsRequired:        req.IsRequired,
		DisplayOrder:      req.DisplayOrder,
		IsActive:          req.IsActive,
		Placeholder:       req.Placeholder,
		HelpText:          req.HelpText,
		ValidationPattern: req.ValidationPattern,
		Options:           req.Options,
	}
}

// ListPublic returns the active fields the registration form renders.
func (h *FieldHandler) ListPublic(c echo.Context) error {
	fields, err := h.fieldUC.ListPublic(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newFieldViews(fields), "Registration fields retrieved successfully")
}

// ListAll returns every field, active or not. Admin-only.
func (h *FieldHandler) ListAll(c echo.Context) error {
	fields, err := h.fieldUC.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newFieldViews(fields), "Registration fields retrieved successfully")
}

// Get returns a single field definition. Admin-only.
func (h *FieldHandler) Get(c echo.Context) error {
	id, err := fieldID(c)
	if err != nil {
		return err
	}

	field, err := h.fieldUC.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newFieldView(field), "Registration field retrieved successfully")
}

// Create adds a new registration field. Admin-only.
func (h *FieldHandler) Create(c echo.Context) error {
	var req fieldRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration field input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	field, err := h.fieldUC.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newFieldView(field), "Registration field created successfully")
}

// Update fully replaces an existing field definition. Admin-only.
func (h *FieldHandler) Update(c echo.Context) error {
	id, err := fieldID(c)
	if err != nil {
		return err
	}

	var req fieldRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration field input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	field, err := h.fieldUC.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newFieldView(field), "Registration field updated successfully")
}

// Delete removes a field definition. Admin-only.
func (h *FieldHandler) Delete(c echo.Context) error {
	id, err := fieldID(c)
	if err != nil {
		return err
	}

	if err := h.fieldUC.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// fieldID parses the :id route parameter.
func fieldID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid field ID")
	}

	return id, nil
}
