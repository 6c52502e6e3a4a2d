package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eniola256/Blog/internal/roles"
	"github.com/eniola256/Blog/internal/session"
)

func authenticated(role roles.Role) session.Session {
	return session.Session{User: &session.User{ID: "u1", Role: role}}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		sess     session.Session
		required roles.Role
		want     Decision
	}{
		{"pending renders nothing", session.Pending(), roles.RoleAdmin, Suspend},
		{"pending renders nothing even without role requirement", session.Pending(), roles.RoleReader, Suspend},
		{"anonymous visitor goes to login", session.Session{}, roles.RoleAdmin, RedirectLogin},
		{"anonymous visitor goes to login for author area", session.Session{}, roles.RoleAuthor, RedirectLogin},
		{"admin enters admin area", authenticated(roles.RoleAdmin), roles.RoleAdmin, Render},
		{"admin enters author area", authenticated(roles.RoleAdmin), roles.RoleAuthor, Render},
		{"author enters author area", authenticated(roles.RoleAuthor), roles.RoleAuthor, Render},
		{"author on admin area goes home, not to login", authenticated(roles.RoleAuthor), roles.RoleAdmin, RedirectHome},
		{"reader on author area goes home", authenticated(roles.RoleReader), roles.RoleAuthor, RedirectHome},
		{"signed-in reader passes a no-role requirement", authenticated(roles.RoleReader), roles.RoleReader, Render},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.sess, tt.required))
		})
	}
}

// memStore is the minimal TokenStore for middleware tests.
type memStore struct {
	cred    session.Credential
	present bool
}

func (m *memStore) Read() (session.Credential, bool) { return m.cred, m.present }
func (m *memStore) Write(cred session.Credential) error {
	m.cred, m.present = cred, true
	return nil
}
func (m *memStore) Clear() { m.cred, m.present = session.Credential{}, false }

func newGuardedRouter(sess *session.Session, bootstrap bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if bootstrap {
		r.Use(func(c *gin.Context) {
			session.Inject(c, *sess, &memStore{})
			c.Next()
		})
	}
	r.GET("/admin", Middleware(roles.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "admin area")
	})
	r.GET("/author", Middleware(roles.RoleAuthor), func(c *gin.Context) {
		c.String(http.StatusOK, "author area")
	})
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestMiddlewareUnauthenticatedRedirectsToLogin(t *testing.T) {
	sess := session.Session{}
	w := get(newGuardedRouter(&sess, true), "/admin")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}

func TestMiddlewareWrongRoleRedirectsHome(t *testing.T) {
	sess := authenticated(roles.RoleAuthor)
	w := get(newGuardedRouter(&sess, true), "/admin")

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, HomePath, w.Header().Get("Location"))
}

func TestMiddlewareAdminSupersetEntersAuthorArea(t *testing.T) {
	sess := authenticated(roles.RoleAdmin)
	w := get(newGuardedRouter(&sess, true), "/author")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "author area", w.Body.String())
}

func TestMiddlewareWithoutBootstrapSuspends(t *testing.T) {
	sess := authenticated(roles.RoleAdmin)
	w := get(newGuardedRouter(&sess, false), "/admin")

	// No session in context: render nothing, and in particular no redirect.
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
	assert.Empty(t, w.Body.String())
}

func TestMiddlewareSessionClearedBetweenRequests(t *testing.T) {
	sess := authenticated(roles.RoleAdmin)
	r := newGuardedRouter(&sess, true)

	require.Equal(t, http.StatusOK, get(r, "/admin").Code)

	// An external logout is picked up on the very next evaluation.
	sess = session.Session{}
	w := get(r, "/admin")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, LoginPath, w.Header().Get("Location"))
}
