package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"merchant-registry/internal/model"
	"merchant-registry/pkg/jwtutil"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWT() *jwtutil.JWTUtil {
	return jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-key", ExpirationHours: 1})
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func performRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/merchants", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(okHandler)(c)
	require.NoError(t, err)
	return rec
}

func TestJWTAuthMiddlewareMissingHeader(t *testing.T) {
	rec := performRequest(t, JWTAuthMiddleware(testJWT()), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddlewareBadScheme(t *testing.T) {
	rec := performRequest(t, JWTAuthMiddleware(testJWT()), "Basic abc123")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddlewareInvalidToken(t *testing.T) {
	rec := performRequest(t, JWTAuthMiddleware(testJWT()), "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	jwt := testJWT()
	token, err := jwt.GenerateToken(&model.User{
		ID: 1, Name: "Admin", Email: "admin@example.com", Role: model.RoleAdministrator,
	})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/merchants", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var claims *jwtutil.UserClaims
	next := func(c echo.Context) error {
		claims, _ = c.Get("user").(*jwtutil.UserClaims)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, JWTAuthMiddleware(jwt)(next)(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, claims)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, model.RoleAdministrator, claims.Role)
}

func TestJWTAuthMiddlewareExpiredToken(t *testing.T) {
	expired := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{SigningKey: "test-key", ExpirationHours: -1})
	token, err := expired.GenerateToken(&model.User{ID: 1, Role: model.RoleAdministrator})
	require.NoError(t, err)

	rec := performRequest(t, JWTAuthMiddleware(testJWT()), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func roleRequest(t *testing.T, claims *jwtutil.UserClaims, allowed ...model.Role) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/api/merchants/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set("user", claims)
	}
	err := RequireRoles(allowed...)(okHandler)(c)
	require.NoError(t, err)
	return rec
}

func TestRequireRolesAllows(t *testing.T) {
	rec := roleRequest(t, &jwtutil.UserClaims{UserID: 1, Role: model.RoleAdministrator}, model.RoleAdministrator)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRolesRejects(t *testing.T) {
	rec := roleRequest(t, &jwtutil.UserClaims{UserID: 2, Role: model.RoleRegistrationAssistant}, model.RoleAdministrator)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRolesWithoutClaims(t *testing.T) {
	rec := roleRequest(t, nil, model.RoleAdministrator)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
