package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eniola256/Blog/internal/roles"
)

const testSecret = "cookie-store-test-secret"

func newTestContext(t *testing.T, cookies ...*http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		c.Request.AddCookie(ck)
	}
	return c, w
}

func newTestStore(c *gin.Context) *CookieStore {
	return NewCookieStore(c, testSecret, time.Hour, false)
}

func TestCookieStoreRoundTrip(t *testing.T) {
	c, w := newTestContext(t)
	store := newTestStore(c)

	cred := Credential{
		Token: "t1",
		User:  User{ID: "u1", Name: "Ada", Email: "a@b.com", Role: roles.RoleAdmin, Avatar: "/a.png"},
	}
	require.NoError(t, store.Write(cred))

	// The browser sends the issued cookies back on the next request.
	c2, _ := newTestContext(t, w.Result().Cookies()...)
	got, ok := newTestStore(c2).Read()

	require.True(t, ok)
	assert.Equal(t, "t1", got.Token)
	assert.Equal(t, cred.User, got.User)
}

func TestCookieStoreWriteVisibleToSameRequestRead(t *testing.T) {
	c, _ := newTestContext(t)
	store := newTestStore(c)

	require.NoError(t, store.Write(Credential{Token: "t1", User: User{ID: "u1"}}))

	got, ok := store.Read()
	require.True(t, ok)
	assert.Equal(t, "t1", got.Token)

	store.Clear()
	_, ok = store.Read()
	assert.False(t, ok)
}

func TestCookieStoreEmptyRequest(t *testing.T) {
	c, w := newTestContext(t)

	_, ok := newTestStore(c).Read()

	assert.False(t, ok)
	// Nothing was stored, so nothing needs clearing.
	assert.Empty(t, w.Result().Cookies())
}

func TestCookieStoreTornPairIsForceCleared(t *testing.T) {
	c, w := newTestContext(t, &http.Cookie{Name: "token", Value: "t1"})
	store := newTestStore(c)

	_, ok := store.Read()

	assert.False(t, ok)
	// Both cookies are expired so the torn half does not linger.
	cleared := map[string]bool{}
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			cleared[ck.Name] = true
		}
	}
	assert.True(t, cleared["token"])
	assert.True(t, cleared["user"])
}

func TestCookieStoreTamperedUserCookie(t *testing.T) {
	// Sign the user record with a different secret, as a role-forging
	// client would, and pair it with a legitimate token cookie.
	forgeCtx, forgeRec := newTestContext(t)
	forged := NewCookieStore(forgeCtx, "some-other-secret", time.Hour, false)
	require.NoError(t, forged.Write(Credential{Token: "t1", User: User{ID: "u1", Role: roles.RoleAdmin}}))

	var cookies []*http.Cookie
	for _, ck := range forgeRec.Result().Cookies() {
		if ck.Name == "user" {
			cookies = append(cookies, ck)
		}
	}
	require.Len(t, cookies, 1)
	cookies = append(cookies, &http.Cookie{Name: "token", Value: "t1"})

	c, w := newTestContext(t, cookies...)
	_, ok := newTestStore(c).Read()

	// The forged record reads as a torn pair: absent, and both halves
	// dropped.
	assert.False(t, ok)
	cleared := map[string]bool{}
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			cleared[ck.Name] = true
		}
	}
	assert.True(t, cleared["token"])
	assert.True(t, cleared["user"])
}
