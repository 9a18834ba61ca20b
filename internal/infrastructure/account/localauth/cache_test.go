package localauth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Porizovatel/kulda/internal/domain/user"
	"github.com/Porizovatel/kulda/internal/platform/logging"
)

func TestCachingVerifier_MemoizesSuccessfulIntrospection(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_ = json.NewEncoder(w).Encode(introspectResponse{Active: true, UserID: "u1", Role: "manager"})
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.Client(), server.URL, "/oauth/introspect", logging.NewNop())
	verifier := NewCachingVerifier(client, time.Minute, 16)

	for i := 0; i < 3; i++ {
		principal, err := verifier.VerifyAccessToken(t.Context(), "tok-123")
		if err != nil {
			t.Fatalf("verify token: %v", err)
		}
		if principal.UserID != "u1" {
			t.Fatalf("unexpected principal: %+v", principal)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single upstream call, got %d", got)
	}

	// A different token misses the cache.
	if _, err := verifier.VerifyAccessToken(t.Context(), "tok-456"); err != nil {
		t.Fatalf("verify second token: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected a second upstream call, got %d", got)
	}
}

func TestCachingVerifier_DoesNotCacheFailures(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.Client(), server.URL, "/oauth/introspect", logging.NewNop())
	verifier := NewCachingVerifier(client, time.Minute, 16)

	for i := 0; i < 2; i++ {
		if _, err := verifier.VerifyAccessToken(t.Context(), "tok-bad"); err == nil {
			t.Fatal("expected an error")
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected every failed verify to hit upstream, got %d calls", got)
	}
}

func TestPrincipalCache_ExpiresEntries(t *testing.T) {
	cache := newInMemoryPrincipalCache(10*time.Millisecond, 4)
	cache.Set("k1", user.Principal{UserID: "u1"})

	if _, ok := cache.Get("k1"); !ok {
		t.Fatal("expected fresh entry to hit")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := cache.Get("k1"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestPrincipalCache_ZeroTTLDisablesCaching(t *testing.T) {
	cache := newInMemoryPrincipalCache(0, 4)
	cache.Set("k1", user.Principal{UserID: "u1"})

	if _, ok := cache.Get("k1"); ok {
		t.Fatal("expected zero-TTL cache to store nothing")
	}
}

func TestPrincipalCache_BoundedSize(t *testing.T) {
	cache := newInMemoryPrincipalCache(time.Minute, 2)
	cache.Set("k1", user.Principal{UserID: "u1"})
	cache.Set("k2", user.Principal{UserID: "u2"})
	cache.Set("k3", user.Principal{UserID: "u3"})

	if len(cache.entries) > 2 {
		t.Fatalf("expected at most 2 entries, got %d", len(cache.entries))
	}
	if _, ok := cache.Get("k3"); !ok {
		t.Fatal("expected the newest entry to survive eviction")
	}
}

func TestHashToken_StableAndOpaque(t *testing.T) {
	h1 := hashToken("tok-123")
	h2 := hashToken("tok-123")
	h3 := hashToken("tok-456")

	if h1 != h2 {
		t.Fatal("expected deterministic hashing")
	}
	if h1 == h3 {
		t.Fatal("expected distinct tokens to hash differently")
	}
	if h1 == "tok-123" || len(h1) != 64 {
		t.Fatalf("expected a sha256 hex digest, got %q", h1)
	}
}
