package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	domain "github.com/avicennajr/gofdisms/internal/domain/message"
	"github.com/avicennajr/gofdisms/pkg/fdi"
)

// fakeRepo is an in-memory message.Repository.
type fakeRepo struct {
	mu       sync.Mutex
	saved    []*domain.Message
	pending  []*domain.Message
	updated  []*domain.Message
	fetchErr error
}

func (f *fakeRepo) Save(ctx context.Context, m *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, m)
	return nil
}

func (f *fakeRepo) GetPending(ctx context.Context, limit int) ([]*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	if len(f.pending) > limit {
		return f.pending[:limit], nil
	}
	return f.pending, nil
}

func (f *fakeRepo) GetSent(ctx context.Context, page, limit int) ([]*domain.Message, int64, error) {
	return nil, 0, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, m *domain.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, m)
	return nil
}

// fakeGateway is a scripted sms.Gateway: numbers in failFor are rejected.
type fakeGateway struct {
	mu      sync.Mutex
	sends   []string
	failFor map[string]bool
}

func (f *fakeGateway) Send(ctx context.Context, to, content, msgRef string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, to)
	if f.failFor[to] {
		return "", `{"success":false}`, errors.New("provider rejected")
	}
	return "gw-" + msgRef, `{"success":true}`, nil
}

func (f *fakeGateway) Health(ctx context.Context) error { return nil }

func (f *fakeGateway) Balance(ctx context.Context, date string) (*fdi.Response, error) {
	return &fdi.Response{Success: true, StatusCode: 200, Raw: `{"success":true,"balance":42}`}, nil
}

func (f *fakeGateway) Stats(ctx context.Context, date string) (*fdi.Response, error) {
	return &fdi.Response{Success: true, StatusCode: 200, Raw: `{"success":true}`}, nil
}

func (f *fakeGateway) Validate(ctx context.Context, msisdn, cc string) (*fdi.Response, error) {
	return &fdi.Response{Success: true, StatusCode: 200}, nil
}

func (f *fakeGateway) ValidateBulk(ctx context.Context, msisdns []string, cc string) (*fdi.Response, error) {
	return &fdi.Response{Success: true, StatusCode: 200}, nil
}

// fakeCache records Set calls and serves scripted Get hits.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
	sets int
	gets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}}
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	f.sets++
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if v, ok := f.data[key]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func (f *fakeCache) Del(ctx context.Context, key string) error           { return nil }
func (f *fakeCache) Incr(ctx context.Context, key string) (int64, error) { return 0, nil }
func (f *fakeCache) Decr(ctx context.Context, key string) (int64, error) { return 0, nil }

func pendingMessage(t *testing.T, to string) *domain.Message {
	t.Helper()
	m, err := domain.NewMessage(to, "test body")
	if err != nil {
		t.Fatalf("NewMessage(%q): %v", to, err)
	}
	return m
}

func TestEnqueue_NormalizesAndSaves(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewMessageService(repo, &fakeGateway{}, nil, 10, 2, time.Second, time.Hour)

	msg, err := svc.Enqueue(context.Background(), "0788123456", "hello")
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	if msg.To != "250788123456" {
		t.Fatalf("To = %q, want normalized number", msg.To)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved %d messages, want 1", len(repo.saved))
	}
}

func TestEnqueue_RejectsInvalidRecipient(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewMessageService(repo, &fakeGateway{}, nil, 10, 2, time.Second, time.Hour)

	_, err := svc.Enqueue(context.Background(), "12345", "hello")
	if !errors.Is(err, fdi.ErrInvalidMobileNumber) {
		t.Fatalf("Enqueue error = %v, want ErrInvalidMobileNumber", err)
	}
	if len(repo.saved) != 0 {
		t.Fatalf("invalid message reached the repository")
	}
}

func TestProcessBatch_MarksOutcomesAndCachesRefs(t *testing.T) {
	good := pendingMessage(t, "0788123456")
	bad := pendingMessage(t, "0722000111")

	repo := &fakeRepo{pending: []*domain.Message{good, bad}}
	gw := &fakeGateway{failFor: map[string]bool{bad.To: true}}
	c := newFakeCache()

	svc := NewMessageService(repo, gw, c, 10, 2, time.Second, time.Hour)

	if err := svc.ProcessBatch(context.Background()); err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}

	if good.Status != domain.StatusSuccess {
		t.Fatalf("good message status = %q, want SUCCESS", good.Status)
	}
	if !strings.HasPrefix(good.GatewayRef, "gw-") {
		t.Fatalf("good message gatewayRef = %q, want gateway-assigned ref", good.GatewayRef)
	}
	if bad.Status != domain.StatusFailed {
		t.Fatalf("bad message status = %q, want FAILED", bad.Status)
	}

	if len(repo.updated) != 2 {
		t.Fatalf("persisted %d status updates, want 2", len(repo.updated))
	}

	// Only the successful send caches its gateway ref.
	if c.sets != 1 {
		t.Fatalf("cache Set called %d times, want 1", c.sets)
	}
}

func TestProcessBatch_EmptyOutboxIsANoop(t *testing.T) {
	repo := &fakeRepo{}
	gw := &fakeGateway{}
	svc := NewMessageService(repo, gw, nil, 10, 2, time.Second, time.Hour)

	if err := svc.ProcessBatch(context.Background()); err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if len(gw.sends) != 0 {
		t.Fatalf("gateway hit %d times on an empty outbox", len(gw.sends))
	}
}

func TestProcessBatch_RepositoryErrorPropagates(t *testing.T) {
	repo := &fakeRepo{fetchErr: errors.New("db down")}
	svc := NewMessageService(repo, &fakeGateway{}, nil, 10, 2, time.Second, time.Hour)

	if err := svc.ProcessBatch(context.Background()); err == nil {
		t.Fatalf("ProcessBatch succeeded, want error when fetch fails")
	}
}

func TestProcessBatch_WorkerPoolCoversAllMessages(t *testing.T) {
	var pending []*domain.Message
	for i := 0; i < 9; i++ {
		pending = append(pending, pendingMessage(t, "788123456"))
	}

	repo := &fakeRepo{pending: pending}
	gw := &fakeGateway{}
	svc := NewMessageService(repo, gw, nil, 20, 3, time.Second, time.Hour)

	if err := svc.ProcessBatch(context.Background()); err != nil {
		t.Fatalf("ProcessBatch: %v", err)
	}
	if len(gw.sends) != len(pending) {
		t.Fatalf("gateway saw %d sends, want %d", len(gw.sends), len(pending))
	}
}
