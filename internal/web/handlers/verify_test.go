package handlers

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kozaktomas/player-verify/internal/database"
	"github.com/kozaktomas/player-verify/internal/database/mock"
	"github.com/kozaktomas/player-verify/internal/events"
	"github.com/kozaktomas/player-verify/internal/sessions"
	"github.com/kozaktomas/player-verify/internal/verify"
)

func setupVerifyHandler(t *testing.T) (*VerifyHandler, *mock.AuditLogStore, *sessions.Registry) {
	t.Helper()

	enrollments := mock.NewEnrollmentStore()
	if err := enrollments.Create(context.Background(), database.PlayerEnrollment{
		PlayerID:       "p1",
		Name:           "Alice",
		FacialTemplate: []float32{0.1, 0.2, 0.3, 0.4},
		MachineGUID:    "machine-1",
		RegisteredAt:   time.Now(),
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	audit := mock.NewAuditLogStore()
	engine := verify.NewEngine(enrollments, audit, nil, events.NewHub(), 0.6)
	registry := sessions.NewRegistry(0)

	return NewVerifyHandler(engine, registry), audit, registry
}

func TestVerifySuccess(t *testing.T) {
	h, audit, _ := setupVerifyHandler(t)

	w := httptest.NewRecorder()
	h.Verify(w, jsonRequest(t, "POST", "/api/v1/verify", map[string]any{
		"player_id":       "p1",
		"facial_encoding": []float32{0.1, 0.2, 0.3, 0.4},
		"machine_guid":    "machine-1",
	}))

	assertStatusCode(t, w, 200)

	var result verify.Result
	parseJSONResponse(t, w, &result)
	if result.Status != database.StatusVerified {
		t.Errorf("status = %s, want VERIFIED", result.Status)
	}
	if !result.FaceMatch || !result.DeviceMatch {
		t.Errorf("expected both checks to pass, got face=%v device=%v", result.FaceMatch, result.DeviceMatch)
	}
	if result.PlayerName != "Alice" {
		t.Errorf("player_name = %s, want Alice", result.PlayerName)
	}
	if audit.Count() != 1 {
		t.Errorf("audit rows = %d, want 1", audit.Count())
	}
}

func TestVerifyWrongDevice(t *testing.T) {
	h, _, _ := setupVerifyHandler(t)

	w := httptest.NewRecorder()
	h.Verify(w, jsonRequest(t, "POST", "/api/v1/verify", map[string]any{
		"player_id":       "p1",
		"facial_encoding": []float32{0.1, 0.2, 0.3, 0.4},
		"machine_guid":    "other-machine",
	}))

	assertStatusCode(t, w, 200)

	var result verify.Result
	parseJSONResponse(t, w, &result)
	if result.Status != database.StatusFailed {
		t.Errorf("status = %s, want FAILED", result.Status)
	}
	if result.DeviceMatch {
		t.Error("expected device mismatch")
	}
}

func TestVerifyUnknownPlayer(t *testing.T) {
	h, audit, _ := setupVerifyHandler(t)

	w := httptest.NewRecorder()
	h.Verify(w, jsonRequest(t, "POST", "/api/v1/verify", map[string]any{
		"player_id":       "ghost",
		"facial_encoding": []float32{0.1, 0.2, 0.3, 0.4},
		"machine_guid":    "machine-1",
	}))

	assertStatusCode(t, w, 404)
	if audit.Count() != 0 {
		t.Errorf("unknown player must not be logged, got %d rows", audit.Count())
	}
}

func TestVerifyNoFace(t *testing.T) {
	h, _, _ := setupVerifyHandler(t)

	w := httptest.NewRecorder()
	h.Verify(w, jsonRequest(t, "POST", "/api/v1/verify", map[string]any{
		"player_id":    "p1",
		"machine_guid": "machine-1",
	}))

	assertStatusCode(t, w, 422)
}

func TestVerifyShapeMismatch(t *testing.T) {
	h, _, _ := setupVerifyHandler(t)

	w := httptest.NewRecorder()
	h.Verify(w, jsonRequest(t, "POST", "/api/v1/verify", map[string]any{
		"player_id":       "p1",
		"facial_encoding": []float32{0.1, 0.2},
		"machine_guid":    "machine-1",
	}))

	assertStatusCode(t, w, 500)
}

func TestVerifyMissingPlayerID(t *testing.T) {
	h, _, _ := setupVerifyHandler(t)

	w := httptest.NewRecorder()
	h.Verify(w, jsonRequest(t, "POST", "/api/v1/verify", map[string]any{
		"facial_encoding": []float32{0.1, 0.2, 0.3, 0.4},
	}))

	assertStatusCode(t, w, 400)
}

func TestVerifyMissingMachineGUID(t *testing.T) {
	h, audit, _ := setupVerifyHandler(t)

	w := httptest.NewRecorder()
	h.Verify(w, jsonRequest(t, "POST", "/api/v1/verify", map[string]any{
		"player_id":       "p1",
		"facial_encoding": []float32{0.1, 0.2, 0.3, 0.4},
	}))

	assertStatusCode(t, w, 400)
	if audit.Count() != 0 {
		t.Errorf("rejected attempt must not be logged, got %d rows", audit.Count())
	}
}

func TestVerifyStorageUnavailable(t *testing.T) {
	enrollments := mock.NewEnrollmentStore()
	if err := enrollments.Create(context.Background(), database.PlayerEnrollment{
		PlayerID:       "p1",
		Name:           "Alice",
		FacialTemplate: []float32{0.1, 0.2, 0.3, 0.4},
		MachineGUID:    "machine-1",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	audit := mock.NewAuditLogStore()
	audit.AppendError = context.DeadlineExceeded
	engine := verify.NewEngine(enrollments, audit, nil, nil, 0.6)
	h := NewVerifyHandler(engine, nil)

	w := httptest.NewRecorder()
	h.Verify(w, jsonRequest(t, "POST", "/api/v1/verify", map[string]any{
		"player_id":       "p1",
		"facial_encoding": []float32{0.1, 0.2, 0.3, 0.4},
		"machine_guid":    "machine-1",
	}))

	assertStatusCode(t, w, 503)
}

func TestVerifyTouchesSession(t *testing.T) {
	h, _, registry := setupVerifyHandler(t)
	defer registry.Stop()

	registry.Start("p1")
	before := registry.Active()[0].StartTime

	time.Sleep(5 * time.Millisecond)

	w := httptest.NewRecorder()
	h.Verify(w, jsonRequest(t, "POST", "/api/v1/verify", map[string]any{
		"player_id":       "p1",
		"facial_encoding": []float32{0.1, 0.2, 0.3, 0.4},
		"machine_guid":    "machine-1",
	}))
	assertStatusCode(t, w, 200)

	after := registry.Active()[0].StartTime
	if !after.After(before) {
		t.Error("expected verification to refresh the active session")
	}
}
