package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"lectern/internal/domain/models"
	"lectern/internal/httputil"
)

type stubVerifier struct {
	claims *models.AccessClaims
	err    error
	seen   string
}

func (v *stubVerifier) VerifyToken(token string) (*models.AccessClaims, error) {
	v.seen = token
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}

func (v *stubVerifier) Close() error { return nil }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func teacherClaims(userID string) *models.AccessClaims {
	return &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
		Role:             "teacher",
	}
}

func TestAuthPlacesActorInContext(t *testing.T) {
	verifier := &stubVerifier{claims: teacherClaims("user-t1")}

	var got models.Actor
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = httputil.GetActor(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/documents/contents", nil)
	req.Header.Set("Authorization", "Bearer token-abc")
	rec := httptest.NewRecorder()
	Auth(verifier, testLogger())(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if verifier.seen != "token-abc" {
		t.Errorf("verified token = %q, want token-abc", verifier.seen)
	}
	if !ok || got.ID != "user-t1" || got.Role != models.RoleTeacher {
		t.Errorf("actor = %+v (ok=%v), want user-t1/teacher", got, ok)
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	tests := []struct {
		name   string
		header string
		err    error
	}{
		{name: "no header"},
		{name: "not a bearer token", header: "Basic dXNlcjpwYXNz"},
		{name: "empty bearer token", header: "Bearer "},
		{name: "verification fails", header: "Bearer expired", err: errors.New("token is expired")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{claims: teacherClaims("user-t1"), err: tt.err}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler reached without valid auth")
			})

			req := httptest.NewRequest(http.MethodGet, "/api/documents/contents", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			Auth(verifier, testLogger())(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestAuthExemptsHealthCheck(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("should not be called")}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	Auth(verifier, testLogger())(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 without a token", rec.Code)
	}
}

func TestRecoveryConvertsPanics(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil map write")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/documents/contents", nil)
	rec := httptest.NewRecorder()
	Recovery(testLogger())(next).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
