package matcher

import (
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Service wraps a compiled rule table with a TTL result cache. The table
// is read-only after construction, so a single Service is safe for any
// number of concurrent callers.
type Service struct {
	rules  *CompiledRules
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewService compiles the rule table and prepares the cache. Compilation
// failure is the only fatal condition; it must surface before any query
// is served.
func NewService(rs RuleSet, cfg Config, logger *zap.Logger) (*Service, error) {
	cfg.ApplyDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	compiled, err := Compile(rs)
	if err != nil {
		return nil, fmt.Errorf("compile ruleset: %w", err)
	}
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	s := &Service{
		rules:  compiled,
		cache:  gocache.New(ttl, 2*ttl),
		logger: logger,
	}
	logger.Info("ruleset compiled",
		zap.Int("specialties", compiled.Len()),
		zap.Int("version", rs.Version),
		zap.Bool("fallback", compiled.fallback != nil))
	return s, nil
}

// Suggest returns the suggestion for the given free text. Results are
// cached by normalized query, so repeated phrasings of the same complaint
// hit the cache.
func (s *Service) Suggest(text string) Suggestion {
	key := Normalize(text)
	if v, ok := s.cache.Get(key); ok {
		return v.(Suggestion)
	}
	sug := s.rules.Suggest(text)
	s.cache.Set(key, sug, gocache.DefaultExpiration)
	s.logger.Debug("suggestion computed",
		zap.String("specialty", sug.SpecialtyID),
		zap.Int("score", sug.Score),
		zap.Bool("fallback", sug.Fallback))
	return sug
}

// Rules exposes the compiled table for direct use in tests and tools.
func (s *Service) Rules() *CompiledRules {
	return s.rules
}
