package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Porizovatel/kulda/internal/domain/user"
	"github.com/Porizovatel/kulda/internal/usecase"
)

type stubVerifier struct {
	principal user.Principal
	err       error
	lastToken string
}

func (s *stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	s.lastToken = token
	if s.err != nil {
		return user.Principal{}, s.err
	}
	return s.principal, nil
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	called := false
	handler := RequireAuth(&stubVerifier{}, okHandler(&called))

	req := httptest.NewRequest(http.MethodPost, "/v1/teams", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("expected next handler not to run")
	}
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	called := false
	handler := RequireAuth(&stubVerifier{}, okHandler(&called))

	req := httptest.NewRequest(http.MethodPost, "/v1/teams", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("expected next handler not to run")
	}
}

func TestRequireAuth_AttachesPrincipal(t *testing.T) {
	verifier := &stubVerifier{principal: user.Principal{UserID: "u1", Name: "Marta", Role: user.RoleManager}}

	var seen user.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := principalFromContext(r.Context())
		if !ok {
			t.Fatal("expected principal in downstream context")
		}
		seen = principal
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/teams", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	rec := httptest.NewRecorder()
	RequireAuth(verifier, next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if verifier.lastToken != "tok-123" {
		t.Fatalf("expected raw token forwarded, got %q", verifier.lastToken)
	}
	if seen.UserID != "u1" || seen.Role != user.RoleManager {
		t.Fatalf("unexpected principal: %+v", seen)
	}
}

func TestRequireAuth_VerifierErrorMapped(t *testing.T) {
	verifier := &stubVerifier{err: fmt.Errorf("%w: token expired", usecase.ErrUnauthorized)}
	called := false

	req := httptest.NewRequest(http.MethodPost, "/v1/teams", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()
	RequireAuth(verifier, okHandler(&called)).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Fatal("expected next handler not to run")
	}
}

func TestRequireManager_RejectsReader(t *testing.T) {
	called := false
	handler := RequireManager(okHandler(&called))

	req := httptest.NewRequest(http.MethodPost, "/v1/teams", nil)
	ctx := withPrincipal(req.Context(), user.Principal{UserID: "u2", Role: user.RoleReader})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if called {
		t.Fatal("expected next handler not to run")
	}
}

func TestRequireManager_AllowsAdmin(t *testing.T) {
	called := false
	handler := RequireManager(okHandler(&called))

	req := httptest.NewRequest(http.MethodDelete, "/v1/teams/team-zizkov", nil)
	ctx := withPrincipal(req.Context(), user.Principal{UserID: "u3", Role: user.RoleAdmin})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !called {
		t.Fatal("expected next handler to run")
	}
}

func TestRequireAdmin_RejectsManager(t *testing.T) {
	called := false
	handler := RequireAdmin(okHandler(&called))

	req := httptest.NewRequest(http.MethodDelete, "/v1/matches/m1", nil)
	ctx := withPrincipal(req.Context(), user.Principal{UserID: "u4", Role: user.RoleManager})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if called {
		t.Fatal("expected next handler not to run")
	}
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	called := false
	handler := RequireAdmin(okHandler(&called))

	req := httptest.NewRequest(http.MethodDelete, "/v1/matches/m1", nil)
	ctx := withPrincipal(req.Context(), user.Principal{UserID: "u5", Role: user.RoleAdmin})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	if rec.Code != http.StatusOK || !called {
		t.Fatalf("expected delete allowed for admin, got %d called=%v", rec.Code, called)
	}
}

func TestRequireManager_MissingPrincipal(t *testing.T) {
	called := false
	handler := RequireManager(okHandler(&called))

	req := httptest.NewRequest(http.MethodPost, "/v1/teams", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireInternalJobToken(t *testing.T) {
	cases := []struct {
		name       string
		configured string
		provided   string
		wantCode   int
	}{
		{name: "matching token", configured: "job-secret", provided: "job-secret", wantCode: http.StatusOK},
		{name: "wrong token", configured: "job-secret", provided: "nope", wantCode: http.StatusUnauthorized},
		{name: "missing token", configured: "job-secret", provided: "", wantCode: http.StatusUnauthorized},
		{name: "unconfigured", configured: "", provided: "anything", wantCode: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			handler := RequireInternalJobToken(tc.configured, okHandler(&called))

			req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/rescore", nil)
			if tc.provided != "" {
				req.Header.Set("X-Internal-Job-Token", tc.provided)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			if (tc.wantCode == http.StatusOK) != called {
				t.Fatalf("next handler called=%v for status %d", called, tc.wantCode)
			}
		})
	}
}
