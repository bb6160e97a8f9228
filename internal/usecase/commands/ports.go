package commands

import (
	"context"

	"happyhour-console/internal/domain/bar"

	"github.com/google/uuid"
)

// MenuStore is the write side of the menu object storage. Staged uploads
// hold the raw PDF between analysis and save; entry uploads land under
// the id-keyed path the download route serves from.
type MenuStore interface {
	UploadEntryMenu(ctx context.Context, entryID uuid.UUID, data []byte) error
	UploadStaging(ctx context.Context, key string, data []byte) error
	OpenStaging(ctx context.Context, key string) ([]byte, error)
	DeleteStaging(ctx context.Context, key string) error
}

// MenuAnalyzer extracts happy-hour schedules from an uploaded menu PDF.
type MenuAnalyzer interface {
	Analyze(ctx context.Context, filename string, data []byte) (bar.AnalysisResult, error)
}

// EditSessionStore persists per-user per-bar edit sessions. Get returns
// (nil, nil) when no session exists.
type EditSessionStore interface {
	Get(ctx context.Context, userID, barID uuid.UUID) (*bar.EditSession, error)
	Put(ctx context.Context, userID, barID uuid.UUID, session *bar.EditSession) error
	Delete(ctx context.Context, userID, barID uuid.UUID) error
}

// ChallengeStore holds pending login verification codes.
type ChallengeStore interface {
	SaveChallenge(ctx context.Context, challengeID, userID uuid.UUID, code string) error
	// ConsumeChallenge returns the user the challenge was issued for and
	// invalidates it. A wrong code leaves the challenge in place so the
	// user can retry until it expires.
	ConsumeChallenge(ctx context.Context, challengeID uuid.UUID, code string) (uuid.UUID, error)
}

// VerificationMessage is what the mail worker consumes off the queue.
type VerificationMessage struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type CodeNotifier interface {
	PublishCode(ctx context.Context, msg VerificationMessage) error
}
