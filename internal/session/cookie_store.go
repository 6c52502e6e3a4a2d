package session

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/eniola256/Blog/internal/roles"
)

const (
	tokenCookie = "token"
	userCookie  = "user"
)

// CookieStore keeps the credential in the visitor's browser: the opaque
// backend token in one cookie and the user record in a second cookie,
// signed as an HS256 JWT so a tampered record reads as a torn pair. A
// missing cookie, a bad signature or undecodable claims all clear both
// cookies and report no credential.
//
// Writes are mirrored in memory so a Read later in the same request sees
// them; the response cookies only reach the browser afterwards.
type CookieStore struct {
	c      *gin.Context
	secret []byte
	ttl    time.Duration
	secure bool

	pending *Credential
	cleared bool
}

func NewCookieStore(c *gin.Context, secret string, ttl time.Duration, secure bool) *CookieStore {
	return &CookieStore{c: c, secret: []byte(secret), ttl: ttl, secure: secure}
}

type userClaims struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

func (s *CookieStore) Read() (Credential, bool) {
	if s.cleared {
		return Credential{}, false
	}
	if s.pending != nil {
		return *s.pending, true
	}

	token, terr := s.c.Cookie(tokenCookie)
	signedUser, uerr := s.c.Cookie(userCookie)
	if terr != nil && uerr != nil {
		return Credential{}, false
	}
	if terr != nil || uerr != nil || token == "" {
		// One half of the pair survived without the other.
		s.Clear()
		return Credential{}, false
	}

	user, err := s.decodeUser(signedUser)
	if err != nil {
		s.Clear()
		return Credential{}, false
	}

	return Credential{Token: token, User: user}, true
}

func (s *CookieStore) Write(cred Credential) error {
	signedUser, err := s.encodeUser(cred.User)
	if err != nil {
		return fmt.Errorf("failed to encode user cookie: %w", err)
	}

	maxAge := int(s.ttl.Seconds())
	s.c.SetCookie(tokenCookie, cred.Token, maxAge, "/", "", s.secure, true)
	s.c.SetCookie(userCookie, signedUser, maxAge, "/", "", s.secure, true)

	c := cred
	s.pending = &c
	s.cleared = false
	return nil
}

func (s *CookieStore) Clear() {
	s.c.SetCookie(tokenCookie, "", -1, "/", "", s.secure, true)
	s.c.SetCookie(userCookie, "", -1, "/", "", s.secure, true)
	s.pending = nil
	s.cleared = true
}

func (s *CookieStore) encodeUser(user User) (string, error) {
	now := time.Now()
	claims := userClaims{
		Name:   user.Name,
		Email:  user.Email,
		Role:   string(user.Role),
		Avatar: user.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *CookieStore) decodeUser(signed string) (User, error) {
	token, err := jwt.ParseWithClaims(signed, &userClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return User{}, fmt.Errorf("failed to parse user cookie: %w", err)
	}

	claims, ok := token.Claims.(*userClaims)
	if !ok || !token.Valid {
		return User{}, fmt.Errorf("invalid user cookie")
	}

	return User{
		ID:     claims.Subject,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   roles.Parse(claims.Role),
		Avatar: claims.Avatar,
	}, nil
}
