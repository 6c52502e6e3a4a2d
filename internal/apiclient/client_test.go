package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticatedCallReadsTokenFreshPerCall(t *testing.T) {
	var seen []string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PostList{})
	}))
	defer backend.Close()

	// The source reads the live value on every call, the way both the
	// cookie store and the keyring store do.
	token := atomic.Value{}
	token.Store("t1")
	source := TokenSourceFunc(func() (string, bool) {
		v := token.Load().(string)
		return v, v != ""
	})

	client := New(backend.URL)
	_, err := client.AdminPosts(context.Background(), source)
	require.NoError(t, err)

	token.Store("t2")
	_, err = client.AdminPosts(context.Background(), source)
	require.NoError(t, err)

	require.Equal(t, []string{"Bearer t1", "Bearer t2"}, seen)

	// A cleared store cuts off further calls before any request is sent.
	token.Store("")
	_, err = client.AdminPosts(context.Background(), source)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Len(t, seen, 2)
}

func TestUnauthorizedResponseIsAuthenticationError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Token expired"})
	}))
	defer backend.Close()

	source := TokenSourceFunc(func() (string, bool) { return "stale", true })
	_, err := New(backend.URL).AdminPosts(context.Background(), source)

	var authErr *AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Token expired", authErr.Message)
}

func TestPublicPostsBuildsFilterQuery(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/public/posts", r.URL.Path)
		assert.Equal(t, "go", r.URL.Query().Get("tag"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(PostList{Posts: []Post{{ID: "p1", Title: "Hello"}}, Total: 1})
	}))
	defer backend.Close()

	list, err := New(backend.URL).PostsByTag(context.Background(), "go")

	require.NoError(t, err)
	require.Len(t, list.Posts, 1)
	assert.Equal(t, "Hello", list.Posts[0].Title)
}

func TestNonJSONListResponseIsProtocolError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("bad gateway"))
	}))
	defer backend.Close()

	_, err := New(backend.URL).Categories(context.Background())

	var protoErr *ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, "text/plain", protoErr.ContentType)
}
