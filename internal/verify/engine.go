package verify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kozaktomas/player-verify/internal/database"
	"github.com/kozaktomas/player-verify/internal/events"
)

// NoImageSentinel is recorded as the evidence path when no snapshot was
// captured or the snapshot could not be stored.
const NoImageSentinel = "no_image.jpg"

// EvidenceSaver persists verification snapshots. Failures are always
// recoverable: the verdict degrades to the no-image sentinel.
type EvidenceSaver interface {
	// Save decodes and stores a base64-encoded snapshot, returning the
	// stored path.
	Save(playerID, imageData string) (string, error)
}

// Request is one verification attempt from a client.
type Request struct {
	PlayerID    string
	Template    []float32 // freshly captured facial template
	MachineGUID string    // presented device fingerprint
	ImageData   string    // optional base64-encoded snapshot
}

// Result is the verdict of a single verification attempt.
type Result struct {
	Status      database.VerificationStatus `json:"verification_status"`
	FaceMatch   bool                        `json:"face_match"`
	DeviceMatch bool                        `json:"device_match"`
	Confidence  float64                     `json:"confidence"`
	PlayerName  string                      `json:"player_name"`
	LogID       int64                       `json:"log_id"`
}

// Engine runs verification attempts against enrolled records. It holds
// no state between calls and is safe for concurrent use; each call only
// reads the enrollment and appends one audit row.
type Engine struct {
	enrollments database.EnrollmentStore
	audit       database.AuditLogStore
	evidence    EvidenceSaver // optional
	hub         *events.Hub   // optional
	tolerance   float64
}

// NewEngine creates a verification engine. The evidence saver and event
// hub may be nil; both are best-effort collaborators.
func NewEngine(
	enrollments database.EnrollmentStore,
	audit database.AuditLogStore,
	evidence EvidenceSaver,
	hub *events.Hub,
	tolerance float64,
) *Engine {
	return &Engine{
		enrollments: enrollments,
		audit:       audit,
		evidence:    evidence,
		hub:         hub,
		tolerance:   tolerance,
	}
}

// Verify evaluates one attempt: face comparison, device binding check,
// evidence capture, audit append, live broadcast.
//
// The audit write must succeed before a verdict is returned; an
// unreachable store fails the call with ErrStorageUnavailable rather
// than reporting an uncommitted verdict. Evidence and broadcast
// failures never fail the attempt.
func (e *Engine) Verify(ctx context.Context, req Request) (*Result, error) {
	if len(req.Template) == 0 {
		return nil, ErrNoFaceDetected
	}

	enrollment, err := e.enrollments.GetByID(ctx, req.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("load enrollment: %v: %w", err, ErrStorageUnavailable)
	}
	if enrollment == nil {
		return nil, ErrPlayerNotFound
	}

	faceMatch, confidence, err := Compare(req.Template, enrollment.FacialTemplate, e.tolerance)
	if err != nil {
		return nil, err
	}

	deviceMatch := DeviceMatches(req.MachineGUID, enrollment.MachineGUID)

	status := database.StatusFailed
	if faceMatch && deviceMatch {
		status = database.StatusVerified
	}

	imagePath := NoImageSentinel
	if req.ImageData != "" && e.evidence != nil {
		path, err := e.evidence.Save(req.PlayerID, req.ImageData)
		if err != nil {
			log.Printf("evidence save failed for player %s: %v", req.PlayerID, err)
		} else {
			imagePath = path
		}
	}

	attempt := database.VerificationAttempt{
		PlayerID:      req.PlayerID,
		Timestamp:     time.Now(),
		Status:        status,
		Confidence:    confidence,
		ImagePath:     imagePath,
		DeviceMatched: deviceMatch,
	}

	logID, err := e.audit.Append(ctx, attempt)
	if err != nil {
		return nil, fmt.Errorf("append audit log: %v: %w", err, ErrStorageUnavailable)
	}

	if e.hub != nil {
		e.hub.Broadcast(events.Event{
			Type: events.TypeVerificationUpdate,
			Data: events.VerificationUpdate{
				PlayerID:      req.PlayerID,
				PlayerName:    enrollment.Name,
				Status:        string(status),
				Confidence:    confidence,
				DeviceMatched: deviceMatch,
				Timestamp:     attempt.Timestamp,
				LogID:         logID,
			},
		})
	}

	return &Result{
		Status:      status,
		FaceMatch:   faceMatch,
		DeviceMatch: deviceMatch,
		Confidence:  confidence,
		PlayerName:  enrollment.Name,
		LogID:       logID,
	}, nil
}

// Tolerance returns the configured maximum match distance.
func (e *Engine) Tolerance() float64 {
	return e.tolerance
}
