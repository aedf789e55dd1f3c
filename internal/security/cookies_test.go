package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestCookieManager_SetAuthCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	NewCookieManager(true, 15*time.Minute, 7*24*time.Hour).SetAuthCookies(rec, "acc", "ref")

	cookies := cookiesByName(rec)
	require.Len(t, cookies, 2)

	access := cookies[AccessCookieName]
	assert.Equal(t, "acc", access.Value)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, 900, access.MaxAge)

	refresh := cookies[RefreshCookieName]
	assert.Equal(t, "ref", refresh.Value)
	assert.True(t, refresh.HttpOnly)
	assert.Equal(t, 7*24*60*60, refresh.MaxAge)
}

func TestCookieManager_NotSecureOutsideProduction(t *testing.T) {
	rec := httptest.NewRecorder()
	NewCookieManager(false, time.Minute, time.Hour).SetAuthCookies(rec, "acc", "ref")

	for _, c := range rec.Result().Cookies() {
		assert.False(t, c.Secure, c.Name)
	}
}

func TestCookieManager_ClearAuthCookies(t *testing.T) {
	rec := httptest.NewRecorder()
	NewCookieManager(false, time.Minute, time.Hour).ClearAuthCookies(rec)

	cookies := cookiesByName(rec)
	require.Len(t, cookies, 2)
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		assert.Equal(t, "", cookies[name].Value)
		assert.True(t, cookies[name].MaxAge < 0, name)
	}
}

func TestCookieReaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", AccessToken(r))
	assert.Equal(t, "", RefreshToken(r))

	r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: "a"})
	r.AddCookie(&http.Cookie{Name: RefreshCookieName, Value: "r"})
	assert.Equal(t, "a", AccessToken(r))
	assert.Equal(t, "r", RefreshToken(r))
}
