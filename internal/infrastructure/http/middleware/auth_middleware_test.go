package middleware

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meetmind/errors"
	"github.com/johnquangdev/meetmind/pkg/jwt"
)

func renderStatus(c echo.Context, err error) error {
	var appErr errors.AppError
	if !stderrors.As(err, &appErr) {
		return c.NoContent(http.StatusInternalServerError)
	}
	return c.String(appErr.HTTPCode, appErr.Code.String())
}

func newEcho(m *jwt.Manager, scope string) *echo.Echo {
	e := echo.New()
	ok := func(c echo.Context) error {
		id, _ := UserID(c)
		return c.String(http.StatusOK, id.String())
	}
	mws := []echo.MiddlewareFunc{EchoAuth(m, renderStatus)}
	if scope != "" {
		mws = append(mws, RequireScope(scope, renderStatus))
	}
	e.GET("/private", ok, mws...)
	e.GET("/public", func(c echo.Context) error {
		if id, found := UserID(c); found {
			return c.String(http.StatusOK, id.String())
		}
		return c.String(http.StatusOK, "anonymous")
	}, OptionalAuth(m))
	return e
}

func get(e *echo.Echo, target string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if len(header) == 2 {
		req.Header.Set(header[0], header[1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEchoAuth(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour, "meetmind")
	e := newEcho(m, "")
	userID := uuid.New()
	token, err := m.Issue(jwt.TokenRequest{UserID: userID})
	require.NoError(t, err)

	rec := get(e, "/private")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHENTICATED", rec.Body.String())

	rec = get(e, "/private", echo.HeaderAuthorization, "Bearer nope")
	assert.Equal(t, "AUTH_INVALID_TOKEN", rec.Body.String())

	rec = get(e, "/private", echo.HeaderAuthorization, "bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), rec.Body.String())

	rec = get(e, "/private", "Cookie", "access_token="+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEchoAuth_Expired(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour, "meetmind")
	token, err := m.Issue(jwt.TokenRequest{UserID: uuid.New(), TTL: -time.Minute})
	require.NoError(t, err)

	rec := get(newEcho(m, ""), "/private", echo.HeaderAuthorization, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_TOKEN_EXPIRED", rec.Body.String())
}

func TestRequireScope(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour, "meetmind")
	e := newEcho(m, jwt.ScopeArchive)

	plain, err := m.Issue(jwt.TokenRequest{UserID: uuid.New(), Scopes: []string{jwt.ScopeHistory}})
	require.NoError(t, err)
	rec := get(e, "/private", echo.HeaderAuthorization, "Bearer "+plain)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "AUTH_FORBIDDEN", rec.Body.String())

	operator, err := m.Issue(jwt.TokenRequest{UserID: uuid.New(), Scopes: []string{jwt.ScopeArchive}})
	require.NoError(t, err)
	rec = get(e, "/private", echo.HeaderAuthorization, "Bearer "+operator)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuth(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour, "meetmind")
	e := newEcho(m, "")
	userID := uuid.New()
	token, err := m.Issue(jwt.TokenRequest{UserID: userID})
	require.NoError(t, err)

	assert.Equal(t, "anonymous", get(e, "/public").Body.String())
	assert.Equal(t, "anonymous", get(e, "/public", echo.HeaderAuthorization, "Bearer nope").Body.String())
	assert.Equal(t, userID.String(), get(e, "/public", echo.HeaderAuthorization, "Bearer "+token).Body.String())
}
