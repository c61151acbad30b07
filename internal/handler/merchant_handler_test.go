package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"merchant-registry/internal/merchant"
	"merchant-registry/internal/model"
	"merchant-registry/pkg/jwtutil"
	"merchant-registry/pkg/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMerchantService scripts service responses so handler tests cover only
// envelope shaping, guard behavior and error mapping.
type fakeMerchantService struct {
	cities      []string
	listResult  *merchant.ListResult
	merchant    *model.Merchant
	tsv         string
	err         error
	lastUserID  uint
	lastQuery   merchant.ListQuery
	removeCalls int
}

func (f *fakeMerchantService) GetCities(context.Context) ([]string, error) {
	return f.cities, f.err
}

func (f *fakeMerchantService) List(_ context.Context, query merchant.ListQuery) (*merchant.ListResult, error) {
	f.lastQuery = query
	return f.listResult, f.err
}

func (f *fakeMerchantService) Get(context.Context, uint) (*model.Merchant, error) {
	return f.merchant, f.err
}

func (f *fakeMerchantService) Create(_ context.Context, _ merchant.CreateMerchantRequest, userID uint) (*model.Merchant, error) {
	f.lastUserID = userID
	return f.merchant, f.err
}

func (f *fakeMerchantService) Update(_ context.Context, _ uint, _ merchant.UpdateMerchantRequest, userID uint) (*model.Merchant, error) {
	f.lastUserID = userID
	return f.merchant, f.err
}

func (f *fakeMerchantService) UpdateStatus(_ context.Context, _ uint, _ merchant.UpdateStatusRequest, userID uint) (*model.Merchant, error) {
	f.lastUserID = userID
	return f.merchant, f.err
}

func (f *fakeMerchantService) Remove(_ context.Context, _ uint, userID uint) error {
	f.removeCalls++
	f.lastUserID = userID
	return f.err
}

func (f *fakeMerchantService) ExportTSV(_ context.Context, userID uint) (string, error) {
	f.lastUserID = userID
	return f.tsv, f.err
}

func (f *fakeMerchantService) ListEstablishments(context.Context) ([]model.Establishment, error) {
	return nil, f.err
}

func adminClaims() *jwtutil.UserClaims {
	return &jwtutil.UserClaims{UserID: 1, Name: "Admin", Email: "admin@example.com", Role: model.RoleAdministrator}
}

func newContext(t *testing.T, method, path, body string, claims *jwtutil.UserClaims) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = validator.New()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set("user", claims)
	}
	return c, rec
}

func sampleMerchant() *model.Merchant {
	return &model.Merchant{
		ID:               1,
		Name:             "Acme",
		Municipality:     "Bogotá",
		RegistrationDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Status:           model.StatusActive,
		RegisteredByID:   1,
		UpdatedByID:      1,
	}
}

func TestListEnvelope(t *testing.T) {
	svc := &fakeMerchantService{
		listResult: &merchant.ListResult{
			Data: []model.Merchant{*sampleMerchant()},
			Meta: merchant.Meta{Total: 1, Page: 1, Limit: 5, TotalPages: 1},
		},
	}
	h := NewMerchantHandler(svc)

	c, rec := newContext(t, http.MethodGet, "/api/merchants?page=1&limit=5", "", adminClaims())
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Data []json.RawMessage `json:"data"`
		Meta merchant.Meta     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Len(t, payload.Data, 1)
	assert.Equal(t, int64(1), payload.Meta.Total)
	assert.Equal(t, 1, payload.Meta.TotalPages)
}

func TestListRejectsInvalidStatus(t *testing.T) {
	h := NewMerchantHandler(&fakeMerchantService{})

	c, _ := newContext(t, http.MethodGet, "/api/merchants?status=BROKEN", "", adminClaims())
	err := h.List(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestGetCitiesEnvelope(t *testing.T) {
	svc := &fakeMerchantService{cities: []string{"Bogotá", "Cali"}}
	h := NewMerchantHandler(svc)

	c, rec := newContext(t, http.MethodGet, "/api/merchants/cities", "", adminClaims())
	require.NoError(t, h.GetCities(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":["Bogotá","Cali"]}`, rec.Body.String())
}

func TestGetNotFoundMapsTo404(t *testing.T) {
	svc := &fakeMerchantService{err: merchant.ErrMerchantNotFound}
	h := NewMerchantHandler(svc)

	c, rec := newContext(t, http.MethodGet, "/api/merchants/42", "", adminClaims())
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetWrapsMerchant(t *testing.T) {
	svc := &fakeMerchantService{merchant: sampleMerchant()}
	h := NewMerchantHandler(svc)

	c, rec := newContext(t, http.MethodGet, "/api/merchants/1", "", adminClaims())
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Data struct {
			Merchant *model.Merchant `json:"merchant"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.NotNil(t, payload.Data.Merchant)
	assert.Equal(t, "Acme", payload.Data.Merchant.Name)
}

func TestCreateReturns201AndStampsCaller(t *testing.T) {
	svc := &fakeMerchantService{merchant: sampleMerchant()}
	h := NewMerchantHandler(svc)

	body := `{"name":"Acme","municipality":"Bogotá","registrationDate":"2024-03-15","status":"ACTIVE","employeeCount":5,"revenue":2000}`
	c, rec := newContext(t, http.MethodPost, "/api/merchants", body, adminClaims())
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, uint(1), svc.lastUserID)
}

func TestCreateValidationRejectsMissingName(t *testing.T) {
	h := NewMerchantHandler(&fakeMerchantService{})

	body := `{"municipality":"Bogotá","registrationDate":"2024-03-15","status":"ACTIVE"}`
	c, _ := newContext(t, http.MethodPost, "/api/merchants", body, adminClaims())
	err := h.Create(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreateValidationRejectsBadDate(t *testing.T) {
	h := NewMerchantHandler(&fakeMerchantService{})

	body := `{"name":"Acme","municipality":"Bogotá","registrationDate":"15/03/2024","status":"ACTIVE"}`
	c, _ := newContext(t, http.MethodPost, "/api/merchants", body, adminClaims())
	err := h.Create(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreateWithoutClaimsIsUnauthorized(t *testing.T) {
	h := NewMerchantHandler(&fakeMerchantService{})

	body := `{"name":"Acme","municipality":"Bogotá","registrationDate":"2024-03-15","status":"ACTIVE"}`
	c, rec := newContext(t, http.MethodPost, "/api/merchants", body, nil)
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	h := NewMerchantHandler(&fakeMerchantService{})

	c, _ := newContext(t, http.MethodPatch, "/api/merchants/1/status", `{"status":"PAUSED"}`, adminClaims())
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := h.UpdateStatus(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestDeleteForbiddenMapsTo403(t *testing.T) {
	svc := &fakeMerchantService{err: merchant.ErrNotAdministrator}
	h := NewMerchantHandler(svc)

	c, rec := newContext(t, http.MethodDelete, "/api/merchants/1", "", adminClaims())
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 1, svc.removeCalls)
}

func TestDeleteSuccessMessage(t *testing.T) {
	svc := &fakeMerchantService{}
	h := NewMerchantHandler(svc)

	c, rec := newContext(t, http.MethodDelete, "/api/merchants/1", "", adminClaims())
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Merchant deleted successfully"}`, rec.Body.String())
}

func TestExportCSVHeadersAndBody(t *testing.T) {
	svc := &fakeMerchantService{tsv: "\ufeffheader\r\nrow"}
	h := NewMerchantHandler(svc)

	c, rec := newContext(t, http.MethodGet, "/api/merchants/export/csv", "", adminClaims())
	require.NoError(t, h.ExportCSV(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/tab-separated-values; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "attachment; filename=merchants.tsv", rec.Header().Get(echo.HeaderContentDisposition))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\ufeff"))
}

func TestExportCSVForbiddenMapsTo403(t *testing.T) {
	svc := &fakeMerchantService{err: merchant.ErrNotAdministrator}
	h := NewMerchantHandler(svc)

	c, rec := newContext(t, http.MethodGet, "/api/merchants/export/csv", "", adminClaims())
	require.NoError(t, h.ExportCSV(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
