package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"natkey/internal/domain"
	"natkey/internal/port"
)

// TokenCache is a bounded LRU of tokenization results with a TTL.
type TokenCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	tokens    []domain.Token
	timestamp time.Time
}

func NewTokenCache(maxSize int, ttl time.Duration) *TokenCache {
	if maxSize <= 0 {
		maxSize = 1024
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &TokenCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

func cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:16])
}

func (c *TokenCache) Get(text string) ([]domain.Token, bool) {
	key := cacheKey(text)

	// A hit reorders the LRU list, so lookups take the write lock too.
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}

	if c.now().Sub(entry.timestamp) > c.ttl {
		delete(c.entries, key)
		c.removeFromOrder(key)
		return nil, false
	}

	c.moveToEnd(key)
	return cloneTokens(entry.tokens), true
}

func (c *TokenCache) Put(text string, tokens []domain.Token) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(text)
	entry := &cacheEntry{
		tokens:    cloneTokens(tokens),
		timestamp: c.now(),
	}

	if _, exists := c.entries[key]; exists {
		c.entries[key] = entry
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = entry
	c.order = append(c.order, key)
}

func (c *TokenCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *TokenCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *TokenCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *TokenCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func cloneTokens(tokens []domain.Token) []domain.Token {
	if tokens == nil {
		return nil
	}
	out := make([]domain.Token, len(tokens))
	copy(out, tokens)
	return out
}

// CachedTokenizer memoizes another tokenizer.
type CachedTokenizer struct {
	tokenizer port.Tokenizer
	cache     *TokenCache
}

func NewCachedTokenizer(tokenizer port.Tokenizer, cache *TokenCache) *CachedTokenizer {
	return &CachedTokenizer{
		tokenizer: tokenizer,
		cache:     cache,
	}
}

func (t *CachedTokenizer) Tokenize(text string) []domain.Token {
	if tokens, hit := t.cache.Get(text); hit {
		return tokens
	}

	tokens := t.tokenizer.Tokenize(text)
	t.cache.Put(text, tokens)

	return tokens
}
