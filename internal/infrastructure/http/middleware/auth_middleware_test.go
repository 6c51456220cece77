package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func contextWithRequest(t *testing.T, decorate func(*http.Request)) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/meetings", nil)
	if decorate != nil {
		decorate(req)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestExtractTokenBearerHeader(t *testing.T) {
	c := contextWithRequest(t, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer abc.def.ghi")
	})
	assert.Equal(t, "abc.def.ghi", extractToken(c))
}

func TestExtractTokenBearerCaseInsensitive(t *testing.T) {
	c := contextWithRequest(t, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "bearer lower.case.token")
	})
	assert.Equal(t, "lower.case.token", extractToken(c))
}

func TestExtractTokenRejectsOtherSchemes(t *testing.T) {
	c := contextWithRequest(t, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	})
	assert.Empty(t, extractToken(c))
}

func TestExtractTokenCookieFallback(t *testing.T) {
	c := contextWithRequest(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie.token"})
	})
	assert.Equal(t, "cookie.token", extractToken(c))
}

func TestExtractTokenHeaderWinsOverCookie(t *testing.T) {
	c := contextWithRequest(t, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer header.token")
		r.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie.token"})
	})
	assert.Equal(t, "header.token", extractToken(c))
}

func TestExtractTokenMissing(t *testing.T) {
	c := contextWithRequest(t, nil)
	assert.Empty(t, extractToken(c))
}
