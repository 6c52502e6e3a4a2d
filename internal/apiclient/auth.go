package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/eniola256/Blog/internal/session"
)

var validate = validator.New()

// loginRequest is the body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerRequest is the body for POST /api/auth/register.
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpInput struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// SignIn posts credentials and returns the session payload the backend
// issued. A rejected sign-in is an AuthenticationError carrying the
// backend's message; a response that is not JSON-shaped is a ProtocolError.
func (c *Client) SignIn(ctx context.Context, email, password string) (session.Credential, error) {
	return c.postAuth(ctx, "/api/auth/login", loginRequest{Email: email, Password: password}, "Login failed")
}

// SignUp registers a new account. Password length and confirmation are
// checked locally and fail as ValidationError before any network round
// trip; the request itself carries the same JSON/HTTP error split as
// SignIn.
func (c *Client) SignUp(ctx context.Context, name, email, password, confirmPassword string) error {
	in := signUpInput{Name: name, Email: email, Password: password, ConfirmPassword: confirmPassword}
	if err := validate.Struct(in); err != nil {
		return asValidationError(err)
	}

	_, err := c.postAuth(ctx, "/api/auth/register", registerRequest{Name: name, Email: email, Password: password}, "Registration failed")
	return err
}

// postAuth posts to an auth endpoint. Unlike doJSON, any non-success JSON
// response counts as a rejected credential here, not only 401/403: the
// backend signals duplicate emails and the like with plain 4xx statuses.
func (c *Client) postAuth(ctx context.Context, path string, body any, fallback string) (session.Credential, error) {
	resp, err := c.send(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return session.Credential{}, err
	}
	defer resp.Body.Close()

	if !isJSON(resp.Header.Get("Content-Type")) {
		return session.Credential{}, &ProtocolError{Status: resp.StatusCode, ContentType: resp.Header.Get("Content-Type")}
	}

	var payload struct {
		Message string       `json:"message"`
		Token   string       `json:"token"`
		User    session.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return session.Credential{}, &ProtocolError{Status: resp.StatusCode, ContentType: resp.Header.Get("Content-Type")}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return session.Credential{}, &AuthenticationError{Status: resp.StatusCode, Message: orDefault(payload.Message, fallback)}
	}

	return session.Credential{Token: payload.Token, User: payload.User}, nil
}

// CurrentUser fetches the authenticated user's record.
func (c *Client) CurrentUser(ctx context.Context, ts TokenSource) (session.User, error) {
	var user session.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/me", ts, nil, &user); err != nil {
		return session.User{}, err
	}
	return user, nil
}

func asValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Message: validationMessage(fe)}
	}
	return &ValidationError{Message: "Invalid registration details"}
}

func validationMessage(fe validator.FieldError) string {
	switch {
	case fe.Field() == "Password" && fe.Tag() == "min":
		return "Password must be at least 6 characters"
	case fe.Field() == "ConfirmPassword" && fe.Tag() == "eqfield":
		return "Passwords do not match"
	case fe.Tag() == "email":
		return "Enter a valid email address"
	case fe.Field() == "Name":
		return "Name is required"
	case fe.Field() == "Email":
		return "Email is required"
	case fe.Field() == "ConfirmPassword":
		return "Confirm your password"
	default:
		return "Password is required"
	}
}
