// Package session holds the identity of the current visitor for the
// lifetime of a request and the persisted credential that reseeds it on the
// next one.
package session

import "github.com/eniola256/Blog/internal/roles"

// User is the backend's record of an authenticated visitor. It is persisted
// alongside the token and both travel together; neither is ever stored
// without the other.
type User struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Role   roles.Role `json:"role"`
	Avatar string     `json:"avatar,omitempty"`
}

// Credential is the persisted token/user pair.
type Credential struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// TokenStore is durable storage for exactly one Credential.
//
// Read reports ok=false when nothing is stored. A torn entry (a token
// without a decodable user record, or the reverse) is force-cleared and
// reported absent, never surfaced partially. Callers that need the bearer
// token for an outbound request must Read at call time rather than cache
// the value, so that Clear takes effect on the very next request.
type TokenStore interface {
	Read() (Credential, bool)
	Write(Credential) error
	Clear()
}

// Session is the resolved identity of the current visitor. The zero value
// is an anonymous, settled session; use Pending for a not-yet-resolved one.
type Session struct {
	User    *User
	Loading bool
}

// Pending returns a session that has not been resolved against a store yet.
// Guards render nothing for it; they may only decide after Resolve ran.
func Pending() Session { return Session{Loading: true} }

// Resolve reads the store once and returns a settled session. It never
// fails: an empty or unreadable store just means nobody is signed in.
func Resolve(store TokenStore) Session {
	cred, ok := store.Read()
	if !ok {
		return Session{}
	}
	u := cred.User
	return Session{User: &u}
}

// IsAuthenticated is derived from the presence of a user record. There is
// deliberately no way to set it directly.
func (s Session) IsAuthenticated() bool { return s.User != nil }

// Role returns the visitor's role, RoleReader when nobody is signed in.
func (s Session) Role() roles.Role {
	if s.User == nil {
		return roles.RoleReader
	}
	return roles.Parse(string(s.User.Role))
}

// Login writes the credential through to the store and updates the
// in-memory session. It does not navigate; redirecting after a successful
// sign-in is the caller's job. When the store is unavailable the session
// still holds for the current request cycle, so the write error is returned
// but the user is kept.
func (s *Session) Login(store TokenStore, cred Credential) error {
	err := store.Write(cred)
	u := cred.User
	s.User = &u
	s.Loading = false
	return err
}

// Logout clears the store and the in-memory user. Calling it without an
// active session is a no-op.
func (s *Session) Logout(store TokenStore) {
	store.Clear()
	s.User = nil
	s.Loading = false
}
