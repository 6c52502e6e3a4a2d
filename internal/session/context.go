package session

import "github.com/gin-gonic/gin"

const (
	sessionKey = "session"
	storeKey   = "session_store"
)

// Inject places the resolved session and its backing store in the request
// context. The bootstrap middleware is the only writer.
func Inject(c *gin.Context, sess Session, store TokenStore) {
	c.Set(sessionKey, sess)
	c.Set(storeKey, store)
}

// FromContext returns the session resolved for this request. Before the
// bootstrap middleware has run it returns Pending, so a misordered guard
// renders nothing instead of redirecting on an unresolved session.
func FromContext(c *gin.Context) Session {
	v, exists := c.Get(sessionKey)
	if !exists {
		return Pending()
	}
	sess, ok := v.(Session)
	if !ok {
		return Pending()
	}
	return sess
}

// StoreFromContext returns the token store bound to this request, or nil
// before bootstrap.
func StoreFromContext(c *gin.Context) TokenStore {
	v, exists := c.Get(storeKey)
	if !exists {
		return nil
	}
	store, ok := v.(TokenStore)
	if !ok {
		return nil
	}
	return store
}
