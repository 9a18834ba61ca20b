package localauth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Porizovatel/kulda/internal/domain/user"
	"github.com/Porizovatel/kulda/internal/platform/logging"
	"github.com/Porizovatel/kulda/internal/usecase"
)

func newIntrospectServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.Client(), server.URL, "/oauth/introspect", logging.NewNop())
	return server, client
}

func TestClient_VerifyAccessToken_ActiveToken(t *testing.T) {
	var gotPath, gotToken string
	_, client := newIntrospectServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		var req introspectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode introspect request: %v", err)
		}
		gotToken = req.Token

		_ = json.NewEncoder(w).Encode(introspectResponse{
			Active: true,
			UserID: "u1",
			Name:   "Marta Dlouha",
			Role:   "manager",
		})
	})

	principal, err := client.VerifyAccessToken(t.Context(), "tok-123")
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}

	if gotPath != "/oauth/introspect" {
		t.Fatalf("unexpected introspect path %q", gotPath)
	}
	if gotToken != "tok-123" {
		t.Fatalf("expected token forwarded, got %q", gotToken)
	}
	if principal.UserID != "u1" || principal.Role != user.RoleManager {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestClient_VerifyAccessToken_InactiveToken(t *testing.T) {
	_, client := newIntrospectServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(introspectResponse{Active: false})
	})

	_, err := client.VerifyAccessToken(t.Context(), "tok-stale")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_VerifyAccessToken_DeniedStatus(t *testing.T) {
	_, client := newIntrospectServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.VerifyAccessToken(t.Context(), "tok-123")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_VerifyAccessToken_UnknownRoleFallsBackToReader(t *testing.T) {
	_, client := newIntrospectServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(introspectResponse{
			Active: true,
			UserID: "u2",
			Role:   "superuser",
		})
	})

	principal, err := client.VerifyAccessToken(t.Context(), "tok-123")
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.Role != user.RoleReader {
		t.Fatalf("expected reader fallback role, got %q", principal.Role)
	}
}

func TestClient_VerifyAccessToken_EmptyToken(t *testing.T) {
	client := NewClient(nil, "http://127.0.0.1:0", "/oauth/introspect", logging.NewNop())

	_, err := client.VerifyAccessToken(t.Context(), "   ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	cases := []struct {
		name string
		base string
		path string
		want string
	}{
		{name: "joins with slash", base: "http://auth.local", path: "oauth/introspect", want: "http://auth.local/oauth/introspect"},
		{name: "trims trailing slash", base: "http://auth.local/", path: "/oauth/introspect", want: "http://auth.local/oauth/introspect"},
		{name: "empty path keeps base", base: "http://auth.local/", path: "", want: "http://auth.local"},
		{name: "absolute path wins", base: "http://auth.local", path: "https://other.local/introspect", want: "https://other.local/introspect"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildURL(tc.base, tc.path); got != tc.want {
				t.Fatalf("buildURL(%q, %q) = %q, want %q", tc.base, tc.path, got, tc.want)
			}
		})
	}
}
