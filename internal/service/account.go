package service

import (
	"context"
	"log"
	"time"

	"github.com/avicennajr/gofdisms/internal/cache"
	"github.com/avicennajr/gofdisms/internal/sms"
	"github.com/avicennajr/gofdisms/pkg/fdi"
)

// AccountService exposes the provider's account-level operations: credit
// balance, traffic statistics and number validation. Balance and stats are
// read-heavy dashboard calls, so they go through a cache-aside layer to
// avoid spending a provider round trip on every poll.
type AccountService interface {
	Balance(ctx context.Context, date string) (string, error)
	Stats(ctx context.Context, date string) (string, error)
	Validate(ctx context.Context, msisdns []string, countryCode string) (*fdi.Response, error)
}

type accountService struct {
	gateway sms.Gateway
	cache   cache.Cache

	balanceTTL time.Duration
	statsTTL   time.Duration
}

// NewAccountService builds the account service. TTLs <= 0 disable caching
// for the respective call.
func NewAccountService(gateway sms.Gateway, c cache.Cache, balanceTTL, statsTTL time.Duration) AccountService {
	return &accountService{
		gateway:    gateway,
		cache:      c,
		balanceTTL: balanceTTL,
		statsTTL:   statsTTL,
	}
}

// Balance returns the raw provider balance payload for the given date
// ("" = current balance), serving from cache when a fresh snapshot exists.
func (s *accountService) Balance(ctx context.Context, date string) (string, error) {
	key := cache.Balance.Key(orDefault(date, "now"))

	if raw, ok := s.cached(ctx, key, s.balanceTTL); ok {
		return raw, nil
	}

	resp, err := s.gateway.Balance(ctx, date)
	if err != nil {
		return "", err
	}

	s.store(ctx, key, resp, s.balanceTTL)
	return resp.Raw, nil
}

// Stats returns the raw provider stats payload for the given date
// ("" = today), serving from cache when a fresh snapshot exists.
func (s *accountService) Stats(ctx context.Context, date string) (string, error) {
	key := cache.Stats.Key(orDefault(date, "today"))

	if raw, ok := s.cached(ctx, key, s.statsTTL); ok {
		return raw, nil
	}

	resp, err := s.gateway.Stats(ctx, date)
	if err != nil {
		return "", err
	}

	s.store(ctx, key, resp, s.statsTTL)
	return resp.Raw, nil
}

// Validate routes to the single or bulk provider endpoint depending on how
// many numbers the caller passed. Validation results are not cached: the
// answer depends on provider-side numbering data we cannot invalidate.
func (s *accountService) Validate(ctx context.Context, msisdns []string, countryCode string) (*fdi.Response, error) {
	if len(msisdns) == 1 {
		return s.gateway.Validate(ctx, msisdns[0], countryCode)
	}
	return s.gateway.ValidateBulk(ctx, msisdns, countryCode)
}

// cached returns a cache hit for key, if caching is enabled.
func (s *accountService) cached(ctx context.Context, key string, ttl time.Duration) (string, bool) {
	if s.cache == nil || ttl <= 0 {
		return "", false
	}

	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return "", false
	}
	return raw, true
}

// store writes a successful provider snapshot to the cache. Failed
// responses are never cached so the next poll retries the provider.
func (s *accountService) store(ctx context.Context, key string, resp *fdi.Response, ttl time.Duration) {
	if s.cache == nil || ttl <= 0 || !resp.Success {
		return
	}
	if err := s.cache.Set(ctx, key, resp.Raw, ttl); err != nil {
		log.Printf("[Service] Failed to cache %s: %v", key, err)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
