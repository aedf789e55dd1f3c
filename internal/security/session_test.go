package security

import (
	"context"
	"course-platform-auth/internal/model"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDenylist struct {
	revoked map[string]bool
	err     error
}

func (d *stubDenylist) Add(ctx context.Context, tokenID string, ttl time.Duration) error {
	if d.revoked == nil {
		d.revoked = map[string]bool{}
	}
	d.revoked[tokenID] = true
	return nil
}

func (d *stubDenylist) Contains(ctx context.Context, tokenID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.revoked[tokenID], nil
}

func requestWithAccess(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})
	}
	return r
}

func TestResolveCurrent(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	resolver := NewSessionResolver(codec, nil)

	access, err := codec.SignAccess("user-1", "a@example.com", model.RoleUser)
	require.NoError(t, err)

	user := resolver.ResolveCurrent(requestWithAccess(access))
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "a@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
}

func TestResolveCurrent_Anonymous(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	resolver := NewSessionResolver(newTestCodec(t, clock), nil)

	assert.Nil(t, resolver.ResolveCurrent(requestWithAccess("")))
	assert.Nil(t, resolver.ResolveCurrent(requestWithAccess("garbage")))
}

func TestResolveCurrent_RefreshTokenInAccessCookie(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	resolver := NewSessionResolver(codec, nil)

	refresh, err := codec.SignRefresh("user-1", "a@example.com", model.RoleUser)
	require.NoError(t, err)

	assert.Nil(t, resolver.ResolveCurrent(requestWithAccess(refresh)))
}

func TestResolveCurrent_ExpiresAfterAccessTTL(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	resolver := NewSessionResolver(codec, nil)

	access, err := codec.SignAccess("user-1", "a@example.com", model.RoleUser)
	require.NoError(t, err)

	clock.Advance(14 * time.Minute)
	assert.NotNil(t, resolver.ResolveCurrent(requestWithAccess(access)))

	clock.Advance(2 * time.Minute)
	assert.Nil(t, resolver.ResolveCurrent(requestWithAccess(access)))
}

func TestResolveCurrent_Denylist(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	denylist := &stubDenylist{}
	resolver := NewSessionResolver(codec, denylist)

	access, err := codec.SignAccess("user-1", "a@example.com", model.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, resolver.ResolveCurrent(requestWithAccess(access)))

	payload, err := codec.Verify(access)
	require.NoError(t, err)
	require.NoError(t, denylist.Add(context.Background(), payload.ID, time.Minute))

	assert.Nil(t, resolver.ResolveCurrent(requestWithAccess(access)))
}

func TestResolveCurrent_DenylistError(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	resolver := NewSessionResolver(codec, &stubDenylist{err: errors.New("redis down")})

	access, err := codec.SignAccess("user-1", "a@example.com", model.RoleUser)
	require.NoError(t, err)

	assert.Nil(t, resolver.ResolveCurrent(requestWithAccess(access)))
}

func TestRequireAdmin(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	resolver := NewSessionResolver(codec, nil)

	admin, err := codec.SignAccess("admin-1", "admin@example.com", model.RoleAdmin)
	require.NoError(t, err)
	user, err := codec.SignAccess("user-1", "a@example.com", model.RoleUser)
	require.NoError(t, err)

	got, err := resolver.RequireAdmin(requestWithAccess(admin))
	require.NoError(t, err)
	assert.Equal(t, "admin-1", got.ID)

	_, err = resolver.RequireAdmin(requestWithAccess(user))
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = resolver.RequireAdmin(requestWithAccess(""))
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestAuthenticateMiddleware(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	resolver := NewSessionResolver(codec, nil)

	var seen *model.SessionUser
	h := resolver.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SessionUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithAccess(""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)

	access, err := codec.SignAccess("user-1", "a@example.com", model.RoleUser)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithAccess(access))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.ID)
}

func TestRequireAdminMiddleware(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	codec := newTestCodec(t, clock)
	resolver := NewSessionResolver(codec, nil)

	h := resolver.RequireAdminMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	user, err := codec.SignAccess("user-1", "a@example.com", model.RoleUser)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithAccess(user))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithAccess(""))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	admin, err := codec.SignAccess("admin-1", "admin@example.com", model.RoleAdmin)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, requestWithAccess(admin))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionUserFromContext_Empty(t *testing.T) {
	_, err := SessionUserFromContext(context.Background())
	assert.Error(t, err)
}
