package providers

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// safetyMargin is subtracted from the provider-declared token lifetime so a
// token is never presented when it could expire mid-call.
const safetyMargin = 100 * time.Second

// RefreshFunc performs the identity exchange and returns a fresh token with
// its provider-declared lifetime.
type RefreshFunc func(ctx context.Context) (token string, lifetime time.Duration, err error)

// TokenCache holds the single process-wide bearer token shared by all
// concurrent searches. Refreshes go through singleflight so a burst of
// requests hitting an expired slot triggers one exchange, not one each.
type TokenCache struct {
	mu      sync.Mutex
	sf      singleflight.Group
	token   string
	expires time.Time
	now     func() time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{now: time.Now}
}

// Token returns the cached token, refreshing it first when the slot is
// empty or past its expiry. On refresh failure the slot is left untouched
// so the next caller retries.
func (c *TokenCache) Token(ctx context.Context, refresh RefreshFunc) (string, error) {
	c.mu.Lock()
	if c.token != "" && c.now().Before(c.expires) {
		tok := c.token
		c.mu.Unlock()
		return tok, nil
	}
	c.mu.Unlock()

	v, err, _ := c.sf.Do("token", func() (any, error) {
		// Re-check under the group: a caller that piled up behind the
		// winning refresh must not trigger a second exchange.
		c.mu.Lock()
		if c.token != "" && c.now().Before(c.expires) {
			tok := c.token
			c.mu.Unlock()
			return tok, nil
		}
		c.mu.Unlock()

		tok, lifetime, err := refresh(ctx)
		if err != nil {
			return "", err
		}
		c.mu.Lock()
		c.token = tok
		c.expires = c.now().Add(lifetime - safetyMargin)
		c.mu.Unlock()
		return tok, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
