package amadeus

import (
	"sync"
	"time"
)

// safetyMargin is shaved off the provider-reported token lifetime so a cached
// token is never presented within a minute of its real expiry.
const safetyMargin = 60 * time.Second

type credential struct {
	token     string
	expiresAt time.Time
}

// TokenCache holds the single provider credential for the process. It is
// constructed once and shared by every concurrent search. Refreshes are not
// deduplicated: racing callers each perform their own exchange and the last
// write wins, which is fine because any valid token works.
type TokenCache struct {
	mu   sync.Mutex
	cred *credential
	now  func() time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{now: time.Now}
}

// Get returns the cached token if it is still strictly before expiry.
func (c *TokenCache) Get() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cred != nil && c.now().Before(c.cred.expiresAt) {
		return c.cred.token, true
	}
	return "", false
}

// Put replaces the cached credential wholesale. lifetime is the raw
// provider-reported expires_in; the safety margin is applied here.
func (c *TokenCache) Put(token string, lifetime time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cred = &credential{
		token:     token,
		expiresAt: c.now().Add(lifetime - safetyMargin),
	}
}
