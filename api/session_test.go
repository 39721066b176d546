package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/catalog-admin/catalog"
	"github.com/rpupo63/catalog-admin/errs"
)

func newTestSessionStore(secret string, ttl time.Duration) *sessionStore {
	return newSessionStore(sessionOptions{
		secret:   []byte(secret),
		ttl:      ttl,
		catalog:  catalog.New(catalog.NewClient("http://catalog.invalid")),
		pageSize: 15,
	})
}

func TestSessionOpenAndResolve(t *testing.T) {
	store := newTestSessionStore("secret", time.Hour)

	sess, token, err := store.open("admin")
	require.NoError(t, err)
	require.NotNil(t, sess.workspace)

	resolved, err := store.resolve(token)
	require.NoError(t, err)
	assert.Equal(t, sess.id, resolved.id)
	assert.Equal(t, "admin", resolved.username)
	assert.Same(t, sess.workspace, resolved.workspace)

	other, _, err := store.open("admin")
	require.NoError(t, err)
	assert.NotSame(t, sess.workspace, other.workspace, "each session gets its own workspace")
	assert.Equal(t, 2, store.count())
}

func TestSessionRejectsBadTokens(t *testing.T) {
	store := newTestSessionStore("secret", time.Hour)
	_, token, err := store.open("admin")
	require.NoError(t, err)

	_, err = store.resolve("")
	assert.True(t, errs.IsInvalidSession(err))

	_, err = store.resolve(token + "x")
	assert.True(t, errs.IsInvalidSession(err))

	_, err = newTestSessionStore("another-secret", time.Hour).resolve(token)
	assert.True(t, errs.IsInvalidSession(err))
}

func TestSessionExpires(t *testing.T) {
	store := newTestSessionStore("secret", time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	_, token, err := store.open("admin")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.resolve(token)
	assert.True(t, errs.IsInvalidSession(err))

	// Opening a session sweeps the expired one.
	_, _, err = store.open("admin")
	require.NoError(t, err)
	assert.Equal(t, 1, store.count())
}

func TestSessionClose(t *testing.T) {
	store := newTestSessionStore("secret", time.Hour)
	sess, token, err := store.open("admin")
	require.NoError(t, err)

	store.close(sess.id)
	_, err = store.resolve(token)
	assert.True(t, errs.IsInvalidSession(err))
}

func TestSessionCookie(t *testing.T) {
	store := newTestSessionStore("secret", time.Hour)
	sess, token, err := store.open("admin")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	store.setCookie(rec, token, sess.expiresAt)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.AddCookie(cookies[0])
	resolved, err := store.fromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, sess.id, resolved.id)
}
