package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/avicennajr/gofdisms/pkg/fdi"
)

// countingGateway wraps fakeGateway and counts balance/stats round trips.
type countingGateway struct {
	fakeGateway
	mu           sync.Mutex
	balanceCalls int
	statsCalls   int
}

func (g *countingGateway) Balance(ctx context.Context, date string) (*fdi.Response, error) {
	g.mu.Lock()
	g.balanceCalls++
	g.mu.Unlock()
	return g.fakeGateway.Balance(ctx, date)
}

func (g *countingGateway) Stats(ctx context.Context, date string) (*fdi.Response, error) {
	g.mu.Lock()
	g.statsCalls++
	g.mu.Unlock()
	return g.fakeGateway.Stats(ctx, date)
}

func TestBalance_CacheAside(t *testing.T) {
	gw := &countingGateway{}
	c := newFakeCache()
	svc := NewAccountService(gw, c, 30*time.Second, time.Minute)

	ctx := context.Background()

	first, err := svc.Balance(ctx, "")
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	second, err := svc.Balance(ctx, "")
	if err != nil {
		t.Fatalf("Balance (cached): %v", err)
	}

	if first != second {
		t.Fatalf("cached payload %q differs from original %q", second, first)
	}
	if gw.balanceCalls != 1 {
		t.Fatalf("provider hit %d times, want 1 (second call served from cache)", gw.balanceCalls)
	}
}

func TestBalance_DatesAreCachedSeparately(t *testing.T) {
	gw := &countingGateway{}
	c := newFakeCache()
	svc := NewAccountService(gw, c, 30*time.Second, time.Minute)

	ctx := context.Background()

	if _, err := svc.Balance(ctx, ""); err != nil {
		t.Fatalf("Balance now: %v", err)
	}
	if _, err := svc.Balance(ctx, "2024-03-01"); err != nil {
		t.Fatalf("Balance on date: %v", err)
	}

	if gw.balanceCalls != 2 {
		t.Fatalf("provider hit %d times, want 2 (distinct cache keys)", gw.balanceCalls)
	}
}

func TestBalance_CachingDisabledWithoutTTL(t *testing.T) {
	gw := &countingGateway{}
	c := newFakeCache()
	svc := NewAccountService(gw, c, 0, 0)

	ctx := context.Background()
	_, _ = svc.Balance(ctx, "")
	_, _ = svc.Balance(ctx, "")

	if gw.balanceCalls != 2 {
		t.Fatalf("provider hit %d times, want 2 with caching disabled", gw.balanceCalls)
	}
	if c.sets != 0 {
		t.Fatalf("cache written %d times with caching disabled", c.sets)
	}
}

func TestStats_CacheAside(t *testing.T) {
	gw := &countingGateway{}
	c := newFakeCache()
	svc := NewAccountService(gw, c, time.Minute, time.Minute)

	ctx := context.Background()
	_, _ = svc.Stats(ctx, "")
	_, _ = svc.Stats(ctx, "")

	if gw.statsCalls != 1 {
		t.Fatalf("provider hit %d times, want 1", gw.statsCalls)
	}
}

func TestValidate_RoutesSingleVsBulk(t *testing.T) {
	gw := &countingGateway{}
	svc := NewAccountService(gw, nil, 0, 0)

	ctx := context.Background()

	if _, err := svc.Validate(ctx, []string{"0788123456"}, "rw"); err != nil {
		t.Fatalf("Validate single: %v", err)
	}
	if _, err := svc.Validate(ctx, []string{"0788123456", "0722000111"}, "rw"); err != nil {
		t.Fatalf("Validate bulk: %v", err)
	}
}
