package web

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kozaktomas/player-verify/internal/config"
	"github.com/kozaktomas/player-verify/internal/database"
	"github.com/kozaktomas/player-verify/internal/database/mock"
	"github.com/kozaktomas/player-verify/internal/events"
	"github.com/kozaktomas/player-verify/internal/sessions"
	"github.com/kozaktomas/player-verify/internal/verify"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.SessionSecret = "test-secret"
	cfg.Verification.Tolerance = 0.6
	cfg.Verification.EmbeddingDim = 4

	stores := Stores{
		Enrollments: mock.NewEnrollmentStore(),
		Audit:       mock.NewAuditLogStore(),
		Admins:      mock.NewAdminStore(),
	}
	engine := verify.NewEngine(stores.Enrollments, stores.Audit, nil, nil, cfg.Verification.Tolerance)
	registry := sessions.NewRegistry(0)
	t.Cleanup(registry.Stop)

	srv := NewServer(cfg, stores, engine, registry, events.NewHub())
	t.Cleanup(srv.sessionManager.Stop)
	return srv
}

func loginAs(t *testing.T, srv *Server, username, role string) *httptest.ResponseRecorder {
	t.Helper()

	session, err := srv.sessionManager.CreateSession(context.Background(), username, role)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	w := httptest.NewRecorder()
	srv.sessionManager.SetSessionCookie(w, session)
	return w
}

func TestCreateAdminRequiresSuperAdmin(t *testing.T) {
	srv := newTestServer(t)
	body := `{"username":"ta1","email":"ta1@example.com","password":"s3cret"}`

	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"super admin", database.RoleSuperAdmin, 201},
		{"tournament admin", database.RoleTournamentAdmin, 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/admins", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			cw := loginAs(t, srv, tt.name, tt.role)
			req.AddCookie(cw.Result().Cookies()[0])

			w := httptest.NewRecorder()
			srv.Router().ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestCreateAdminUnauthenticated(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/v1/admins", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != 401 {
		t.Errorf("Status = %d, want 401", w.Code)
	}
}
