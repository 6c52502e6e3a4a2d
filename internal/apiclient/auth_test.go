package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eniola256/Blog/internal/roles"
)

// newAuthBackend serves the two auth endpoints the way the real backend
// does, counting requests so tests can assert that local validation never
// hits the network.
func newAuthBackend(t *testing.T, requests *atomic.Int64) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			requests.Add(1)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method: %s", r.Method)
		}

		var body struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/auth/login":
			if body.Email != "a@b.com" || body.Password != "pw123456" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "Invalid password"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"token": "t1",
				"user":  map[string]string{"id": "u1", "name": "Ada", "email": "a@b.com", "role": "admin"},
			})
		case "/api/auth/register":
			if body.Email == "taken@b.com" {
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(map[string]string{"message": "Email already registered"})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "Registered"})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestSignInSuccess(t *testing.T) {
	backend := newAuthBackend(t, nil)
	defer backend.Close()

	cred, err := New(backend.URL).SignIn(context.Background(), "a@b.com", "pw123456")

	require.NoError(t, err)
	assert.Equal(t, "t1", cred.Token)
	assert.Equal(t, "u1", cred.User.ID)
	assert.Equal(t, roles.RoleAdmin, cred.User.Role)
}

func TestSignInRejectedCarriesBackendMessage(t *testing.T) {
	backend := newAuthBackend(t, nil)
	defer backend.Close()

	_, err := New(backend.URL).SignIn(context.Background(), "a@b.com", "wrong")

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Equal(t, "Invalid password", authErr.Message)
}

func TestSignInNonJSONResponseIsProtocolError(t *testing.T) {
	// A misrouted base URL typically answers with an HTML error page.
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html>404 Not Found</html>"))
	}))
	defer backend.Close()

	_, err := New(backend.URL).SignIn(context.Background(), "a@b.com", "pw123456")

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, http.StatusNotFound, protoErr.Status)

	var authErr *AuthenticationError
	assert.False(t, errors.As(err, &authErr), "protocol failures must not collapse into credential failures")
}

func TestSignUpSuccess(t *testing.T) {
	backend := newAuthBackend(t, nil)
	defer backend.Close()

	err := New(backend.URL).SignUp(context.Background(), "Ada", "new@b.com", "pw123456", "pw123456")

	require.NoError(t, err)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	backend := newAuthBackend(t, nil)
	defer backend.Close()

	err := New(backend.URL).SignUp(context.Background(), "Ada", "taken@b.com", "pw123456", "pw123456")

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Email already registered", authErr.Message)
}

func TestSignUpLocalValidationSkipsNetwork(t *testing.T) {
	var requests atomic.Int64
	backend := newAuthBackend(t, &requests)
	defer backend.Close()

	client := New(backend.URL)

	tests := []struct {
		name              string
		password, confirm string
		wantMessage       string
	}{
		{"password mismatch", "abc123", "xyz123", "Passwords do not match"},
		{"short password", "abc", "abc", "Password must be at least 6 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.SignUp(context.Background(), "Ada", "a@b.com", tt.password, tt.confirm)

			var valErr *ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, tt.wantMessage, valErr.Message)
		})
	}

	assert.Equal(t, int64(0), requests.Load(), "validation failures must not reach the network")
}
