package cli

import (
	"natkey/config"
	"natkey/internal/adapter/analyzer"
	"natkey/internal/adapter/cache"
)

// newTokenizer returns the natural tokenizer behind a token cache. The cache
// lives for one command run: it pays off when the same file base name or
// stdin line repeats within that run.
func newTokenizer(cfg *config.Config) *cache.CachedTokenizer {
	return cache.NewCachedTokenizer(analyzer.NewTokenizer(), cache.NewTokenCache(cfg.Cache.Size, cfg.Cache.TTL))
}
