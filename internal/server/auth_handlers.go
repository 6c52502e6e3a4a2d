package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eniola256/Blog/internal/apiclient"
	"github.com/eniola256/Blog/internal/guard"
	"github.com/eniola256/Blog/internal/roles"
	"github.com/eniola256/Blog/internal/session"
)

// loginForm is the sign-in form body.
type loginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// registerForm is the sign-up form body.
type registerForm struct {
	Name            string `form:"name" binding:"required"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required"`
}

// loginPageData drives the combined sign-in/sign-up page. Entered values
// (except passwords) are retained across a failed submission.
type loginPageData struct {
	Tab    string // "signin" or "signup"
	Error  string
	Notice string
	Email  string
	Name   string
}

func (s *Server) loginPage(c *gin.Context) {
	sess := session.FromContext(c)
	if sess.IsAuthenticated() {
		c.Redirect(http.StatusFound, dashboardPath(sess))
		return
	}

	data := loginPageData{Tab: "signin"}
	if c.Query("tab") == "signup" {
		data.Tab = "signup"
	}
	if c.Query("registered") == "1" {
		data.Notice = "Account created. Sign in to continue."
	}
	c.HTML(http.StatusOK, "login.html", data)
}

func (s *Server) loginSubmit(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", loginPageData{
			Tab:   "signin",
			Error: "A valid email and a password are required",
			Email: c.PostForm("email"),
		})
		return
	}

	cred, err := s.api.SignIn(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		status, msg := authFailure(err)
		// The password never makes the round trip back to the form.
		c.HTML(status, "login.html", loginPageData{Tab: "signin", Error: msg, Email: form.Email})
		return
	}

	sess := session.FromContext(c)
	if err := sess.Login(session.StoreFromContext(c), cred); err != nil {
		// Cookie write failed; the session lasts this request cycle only.
		s.logger.Warn().Err(err).Msg("Failed to persist session cookies")
	}

	s.logger.Info().
		Str("user_id", cred.User.ID).
		Str("role", string(cred.User.Role)).
		Msg("User signed in")

	c.Redirect(http.StatusFound, dashboardPath(sess))
}

func (s *Server) registerSubmit(c *gin.Context) {
	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", loginPageData{
			Tab:   "signup",
			Error: "All fields are required",
			Name:  c.PostForm("name"),
			Email: c.PostForm("email"),
		})
		return
	}

	err := s.api.SignUp(c.Request.Context(), form.Name, form.Email, form.Password, form.ConfirmPassword)
	if err != nil {
		status, msg := authFailure(err)
		c.HTML(status, "login.html", loginPageData{
			Tab:   "signup",
			Error: msg,
			Name:  form.Name,
			Email: form.Email,
		})
		return
	}

	c.Redirect(http.StatusFound, guard.LoginPath+"?registered=1")
}

func (s *Server) logoutSubmit(c *gin.Context) {
	sess := session.FromContext(c)
	sess.Logout(session.StoreFromContext(c))
	c.Redirect(http.StatusFound, guard.HomePath)
}

// dashboardPath picks the landing page after sign-in by role.
func dashboardPath(sess session.Session) string {
	switch sess.Role() {
	case roles.RoleAdmin:
		return "/admin"
	case roles.RoleAuthor:
		return "/author"
	default:
		return guard.HomePath
	}
}

// authFailure maps an auth client error onto an HTTP status and the inline
// message shown on the form. A credential rejection and a systemic failure
// read differently on purpose.
func authFailure(err error) (int, string) {
	var valErr *apiclient.ValidationError
	if errors.As(err, &valErr) {
		return http.StatusBadRequest, valErr.Message
	}

	var authErr *apiclient.AuthenticationError
	if errors.As(err, &authErr) {
		return authErr.Status, authErr.Message
	}

	var protoErr *apiclient.ProtocolError
	if errors.As(err, &protoErr) {
		return http.StatusBadGateway, "The server is misconfigured or unavailable. Please try again later."
	}

	return http.StatusBadGateway, "Could not reach the server. Please try again."
}
