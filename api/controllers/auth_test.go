package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/devmarket-mx/tienda-backend/api/middleware"
	authsvc "github.com/devmarket-mx/tienda-backend/internal/auth"
	pkgerrors "github.com/devmarket-mx/tienda-backend/pkg/errors"
	"github.com/google/uuid"
)

type stubAuthService struct {
	login       *authsvc.LoginResponse
	profile     *authsvc.UserSummary
	err         error
	loggedOutID string
}

func (s *stubAuthService) Register(_ context.Context, _ authsvc.RegisterRequest) (*authsvc.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) Login(_ context.Context, _ authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) AdminLogin(_ context.Context, _ authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	return s.login, s.err
}

func (s *stubAuthService) Logout(_ context.Context, accessID string) error {
	s.loggedOutID = accessID
	return s.err
}

func (s *stubAuthService) Profile(context.Context, uuid.UUID) (*authsvc.UserSummary, error) {
	return s.profile, s.err
}

func (s *stubAuthService) UpdateProfile(_ context.Context, _ uuid.UUID, _ authsvc.UpdateProfileRequest) (*authsvc.UserSummary, error) {
	return s.profile, s.err
}

func TestAuthLoginSuccess(t *testing.T) {
	svc := &stubAuthService{login: &authsvc.LoginResponse{
		AccessToken: "token",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	}}
	handler := AuthLogin(svc, nil)

	body := `{"email":"ana@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/usuarios/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data authsvc.LoginResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TokenType != "Bearer" {
		t.Fatalf("unexpected token type: %s", envelope.Data.TokenType)
	}
}

func TestAuthLoginRejectsBadPayload(t *testing.T) {
	handler := AuthLogin(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/usuarios/login", strings.NewReader(`{"email":"not-an-email"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminAuthLoginPropagatesUnauthorized(t *testing.T) {
	handler := AdminAuthLogin(&stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	body := `{"email":"ana@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/usuarios/login", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthLogout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/usuarios/logout", nil)
	req = req.WithContext(middleware.WithAccessID(req.Context(), "session-123"))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.loggedOutID != "session-123" {
		t.Fatalf("expected session-123 revoked, got %q", svc.loggedOutID)
	}
}

func TestAuthLogoutWithoutSession(t *testing.T) {
	handler := AuthLogout(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/usuarios/logout", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
