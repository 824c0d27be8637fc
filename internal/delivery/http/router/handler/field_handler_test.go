package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"authgate/internal/domain/entity"
	domainerrors "authgate/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getContext(path string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()

	return newTestEcho().NewContext(req, rec), rec
}

func TestFieldHandler_ListPublic(t *testing.T) {
	uc := &fakeFieldUC{active: []*entity.RegistrationField{
		{ID: uuid.New(), FieldName: "phone", FieldLabel: "Phone", FieldType: entity.FieldTypeText, IsActive: true},
	}}
	h := NewFieldHandler(uc, discardLogger())

	c, rec := getContext("/registration-fields")

	require.NoError(t, h.ListPublic(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fieldName":"phone"`)
}

func TestFieldHandler_Create(t *testing.T) {
	uc := &fakeFieldUC{}
	h := NewFieldHandler(uc, discardLogger())

	c, rec := postJSON(newTestEcho(), "/admin/registration-fields",
		`{"fieldName":"company","fieldLabel":"Company","fieldType":"text","isActive":true}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fieldName":"company"`)
}

func TestFieldHandler_Create_MissingLabel(t *testing.T) {
	h := NewFieldHandler(&fakeFieldUC{}, discardLogger())

	c, _ := postJSON(newTestEcho(), "/admin/registration-fields",
		`{"fieldName":"company","fieldType":"text"}`)

	err := h.Create(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestFieldHandler_Get(t *testing.T) {
	field := &entity.RegistrationField{ID: uuid.New(), FieldName: "phone", FieldLabel: "Phone", FieldType: entity.FieldTypeText}
	h := NewFieldHandler(&fakeFieldUC{field: field}, discardLogger())

	c, rec := getContext("/admin/registration-fields/" + field.ID.String())
	c.SetParamNames("id")
	c.SetParamValues(field.ID.String())

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), field.ID.String())
}

func TestFieldHandler_Get_BadID(t *testing.T) {
	h := NewFieldHandler(&fakeFieldUC{}, discardLogger())

	c, _ := getContext("/admin/registration-fields/not-a-uuid")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	err := h.Get(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode())
}

func TestFieldHandler_Get_NotFound(t *testing.T) {
	h := NewFieldHandler(&fakeFieldUC{}, discardLogger())

	id := uuid.New()
	c, _ := getContext("/admin/registration-fields/" + id.String())
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	assert.ErrorIs(t, h.Get(c), domainerrors.ErrFieldNotFound)
}

func TestFieldHandler_Update(t *testing.T) {
	field := &entity.RegistrationField{ID: uuid.New(), FieldName: "phone", FieldLabel: "Phone", FieldType: entity.FieldTypeText}
	h := NewFieldHandler(&fakeFieldUC{field: field}, discardLogger())

	c, rec := postJSON(newTestEcho(), "/admin/registration-fields/"+field.ID.String(),
		`{"fieldName":"phone","fieldLabel":"Mobile Phone","fieldType":"text","isActive":true}`)
	c.SetParamNames("id")
	c.SetParamValues(field.ID.String())

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mobile Phone")
}

func TestFieldHandler_Delete(t *testing.T) {
	uc := &fakeFieldUC{}
	h := NewFieldHandler(uc, discardLogger())

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/admin/registration-fields/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := newTestEcho().NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uuid.UUID{id}, uc.deleted)
}
