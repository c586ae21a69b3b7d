package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/avicennajr/gofdisms/pkg/fdi"
)

// fdiStub is a minimal in-process FDI provider: it hands out numbered
// tokens and rejects sends carrying a stale one.
type fdiStub struct {
	mux       *http.ServeMux
	tokenGen  atomic.Int64
	sendCalls atomic.Int64
}

func newFDIStub(t *testing.T) (*fdiStub, *fdi.Client) {
	t.Helper()

	s := &fdiStub{mux: http.NewServeMux()}

	s.mux.HandleFunc("POST /api/v1/auth/", func(w http.ResponseWriter, r *http.Request) {
		s.writeTokens(w)
	})
	s.mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		s.writeTokens(w)
	})

	srv := httptest.NewServer(s.mux)
	t.Cleanup(srv.Close)

	client, err := fdi.NewClient(context.Background(), fdi.Config{
		APIKey:    "key",
		APISecret: "secret",
		BaseURL:   srv.URL,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return s, client
}

func (s *fdiStub) writeTokens(w http.ResponseWriter) {
	n := s.tokenGen.Add(1)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"access_token":  tokenName(n),
		"refresh_token": "refresh",
	})
}

func tokenName(n int64) string {
	return "tok-" + string(rune('0'+n))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestFDIGateway_SendAppliesSenderAndCallback(t *testing.T) {
	stub, client := newFDIStub(t)

	var gotBody map[string]any
	stub.mux.HandleFunc("POST /api/v1/mt/single", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "gateway_ref": "gw-42"})
	})

	g := NewFDIGateway(client, "ACME", "https://example.com/dlr")

	ref, raw, err := g.Send(context.Background(), "0788123456", "hello", "m1")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if ref != "gw-42" {
		t.Fatalf("gatewayRef = %q, want gw-42", ref)
	}
	if raw == "" {
		t.Fatalf("raw response is empty")
	}

	if gotBody["sender_id"] != "ACME" {
		t.Fatalf("sender_id = %v, want ACME", gotBody["sender_id"])
	}
	if gotBody["dlr"] != "https://example.com/dlr" {
		t.Fatalf("dlr = %v, want callback URL", gotBody["dlr"])
	}
	if gotBody["msisdn"] != "250788123456" {
		t.Fatalf("msisdn = %v, want normalized number", gotBody["msisdn"])
	}
}

// An unauthorized provider response triggers exactly one token refresh and
// one retry.
func TestFDIGateway_RefreshesOnceOnUnauthorized(t *testing.T) {
	stub, client := newFDIStub(t)

	firstToken := client.AuthorizationHeader()["Authorization"]

	stub.mux.HandleFunc("POST /api/v1/mt/single", func(w http.ResponseWriter, r *http.Request) {
		stub.sendCalls.Add(1)
		if r.Header.Get("Authorization") == firstToken {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "message": "token expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "gateway_ref": "gw-1"})
	})

	g := NewFDIGateway(client, "", "")

	ref, _, err := g.Send(context.Background(), "0788123456", "hi", "m1")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if ref != "gw-1" {
		t.Fatalf("gatewayRef = %q, want gw-1", ref)
	}
	if calls := stub.sendCalls.Load(); calls != 2 {
		t.Fatalf("send endpoint hit %d times, want 2 (original + retry)", calls)
	}
}

func TestFDIGateway_RejectedMessageIsAnError(t *testing.T) {
	stub, client := newFDIStub(t)

	stub.mux.HandleFunc("POST /api/v1/mt/single", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"success": false, "message": "sender not whitelisted"})
	})

	g := NewFDIGateway(client, "BAD", "")

	_, raw, err := g.Send(context.Background(), "0788123456", "hi", "m1")
	if err == nil {
		t.Fatalf("Send succeeded, want error for rejected message")
	}
	if raw == "" {
		t.Fatalf("raw response should carry the provider body for diagnostics")
	}
}

func TestFDIGateway_BalanceAndStatsRouting(t *testing.T) {
	stub, client := newFDIStub(t)

	var paths []string
	record := func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
	stub.mux.HandleFunc("GET /api/v1/balance/now", record)
	stub.mux.HandleFunc("GET /api/v1/balance/2024-03-01/closing", record)
	stub.mux.HandleFunc("GET /api/v1/stats", record)
	stub.mux.HandleFunc("GET /api/v1/stats/2024-03-01", record)

	g := NewFDIGateway(client, "", "")
	ctx := context.Background()

	for _, call := range []func() (*fdi.Response, error){
		func() (*fdi.Response, error) { return g.Balance(ctx, "") },
		func() (*fdi.Response, error) { return g.Balance(ctx, "2024-03-01") },
		func() (*fdi.Response, error) { return g.Stats(ctx, "") },
		func() (*fdi.Response, error) { return g.Stats(ctx, "2024-03-01") },
	} {
		if _, err := call(); err != nil {
			t.Fatalf("gateway call: %v", err)
		}
	}

	want := []string{
		"/api/v1/balance/now",
		"/api/v1/balance/2024-03-01/closing",
		"/api/v1/stats",
		"/api/v1/stats/2024-03-01",
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("path[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}
