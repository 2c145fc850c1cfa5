package service

import (
	"sync"
	"time"

	"github.com/kaviyashree6/chatbot/internal/domain"
)

type quoteCache struct {
	mu       sync.RWMutex
	quote    *domain.Quote
	cachedAt time.Time
	ttl      time.Duration
}

func newQuoteCache(ttl time.Duration) *quoteCache {
	return &quoteCache{ttl: ttl}
}

func (c *quoteCache) Get() *domain.Quote {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.quote == nil || time.Since(c.cachedAt) > c.ttl {
		return nil
	}
	return c.quote
}

func (c *quoteCache) Set(q *domain.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quote = q
	c.cachedAt = time.Now()
}
