// Package guard gates rendering of role-restricted route groups.
package guard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eniola256/Blog/internal/roles"
	"github.com/eniola256/Blog/internal/session"
)

// Decision is the outcome of gating one request against one required role.
type Decision int

const (
	// Suspend renders neither the protected page nor a redirect: the
	// session has not been resolved yet, and redirecting on an unresolved
	// session would bounce visitors holding a valid stored credential.
	Suspend Decision = iota
	// Render lets the protected page through.
	Render
	// RedirectLogin sends an unauthenticated visitor to the sign-in page.
	RedirectLogin
	// RedirectHome sends an authenticated but under-privileged visitor to
	// the public home page. They are signed in, just lacking the role, and
	// the two cases must not be conflated.
	RedirectHome
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Decide is a pure function of the session and the required role. It is
// evaluated on every request to a protected group, so a cleared session
// takes effect on the next page load without any extra plumbing.
func Decide(sess session.Session, required roles.Role) Decision {
	if sess.Loading {
		return Suspend
	}
	if !sess.IsAuthenticated() {
		return RedirectLogin
	}
	if roles.Satisfies(required, sess.Role()) {
		return Render
	}
	return RedirectHome
}

// Middleware applies Decide to the session the bootstrap middleware placed
// in the context. A request that somehow reaches the guard first counts as
// still loading and gets an empty response, never a redirect.
func Middleware(required roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch Decide(session.FromContext(c), required) {
		case Render:
			c.Next()
		case RedirectLogin:
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
		case RedirectHome:
			c.Redirect(http.StatusFound, HomePath)
			c.Abort()
		default:
			c.AbortWithStatus(http.StatusNoContent)
		}
	}
}
