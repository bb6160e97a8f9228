//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"fmt"

	"happyhour-console/internal/domain/bar"
	"happyhour-console/internal/domain/user"
	"happyhour-console/internal/infra"
	"happyhour-console/internal/infra/db"
	"happyhour-console/internal/usecase/commands"
	"happyhour-console/internal/usecase/shared"

	"github.com/google/uuid"
)

// opLog records the order of side effects across stubs so tests can
// assert upload-before-write ordering.
type opLog struct {
	ops []string
}

func (l *opLog) add(op string) {
	l.ops = append(l.ops, op)
}

// stubSessionStore round-trips sessions through JSON like the redis
// store does, so pointer aliasing can't hide serialization bugs.
type stubSessionStore struct {
	data   map[string][]byte
	putErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{data: map[string][]byte{}}
}

func sessionKey(userID, barID uuid.UUID) string {
	return userID.String() + "/" + barID.String()
}

func (s *stubSessionStore) Get(_ context.Context, userID, barID uuid.UUID) (*bar.EditSession, error) {
	raw, ok := s.data[sessionKey(userID, barID)]
	if !ok {
		return nil, nil
	}
	var session bar.EditSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *stubSessionStore) Put(_ context.Context, userID, barID uuid.UUID, session *bar.EditSession) error {
	if s.putErr != nil {
		return s.putErr
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.data[sessionKey(userID, barID)] = raw
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, userID, barID uuid.UUID) error {
	delete(s.data, sessionKey(userID, barID))
	return nil
}

type stubMenuStore struct {
	log     *opLog
	staged  map[string][]byte
	entries map[uuid.UUID][]byte

	entryUploadErr error
	failAfter      int // fail the entry upload once this many succeeded
}

func newStubMenuStore(log *opLog) *stubMenuStore {
	return &stubMenuStore{
		log:     log,
		staged:  map[string][]byte{},
		entries: map[uuid.UUID][]byte{},
	}
}

func (s *stubMenuStore) UploadEntryMenu(_ context.Context, entryID uuid.UUID, data []byte) error {
	if s.entryUploadErr != nil && len(s.entries) >= s.failAfter {
		return s.entryUploadErr
	}
	s.entries[entryID] = data
	s.log.add("upload:" + entryID.String())
	return nil
}

func (s *stubMenuStore) UploadStaging(_ context.Context, key string, data []byte) error {
	s.staged[key] = data
	s.log.add("stage:" + key)
	return nil
}

func (s *stubMenuStore) OpenStaging(_ context.Context, key string) ([]byte, error) {
	data, ok := s.staged[key]
	if !ok {
		return nil, fmt.Errorf("staged object %q not found", key)
	}
	return data, nil
}

func (s *stubMenuStore) DeleteStaging(_ context.Context, key string) error {
	delete(s.staged, key)
	s.log.add("unstage:" + key)
	return nil
}

// stubUoW serves command reads from an in-memory record map and logs
// write-side calls.
type stubUoW struct {
	log       *opLog
	records   map[uuid.UUID]*bar.Bar
	updateErr error
	updated   []bar.Bar
}

func newStubUoW(log *opLog) *stubUoW {
	return &stubUoW{log: log, records: map[uuid.UUID]*bar.Bar{}}
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &stubTx{uow: u})
}

func (u *stubUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *stubUoW) Reads() shared.CommandReads {
	return &stubReads{uow: u}
}

type stubTx struct {
	uow *stubUoW
}

func (t *stubTx) Bars() shared.BarRepository   { return &stubBarRepo{uow: t.uow} }
func (t *stubTx) Users() shared.UserRepository { return &stubUserRepo{uow: t.uow} }
func (t *stubTx) Reads() shared.CommandReads   { return &stubReads{uow: t.uow} }
func (t *stubTx) DB() db.DBTX                  { return nil }

type stubReads struct {
	uow *stubUoW
}

func (r *stubReads) BarByID(_ context.Context, id uuid.UUID) (*bar.Bar, error) {
	b, ok := r.uow.records[id]
	if !ok {
		return nil, infra.WrapRepoErr("bar not found", nil, infra.KindNotFound)
	}
	copied := *b
	return &copied, nil
}

type stubBarRepo struct {
	uow *stubUoW
}

func (r *stubBarRepo) Create(_ context.Context, _ db.DBTX, b *bar.Bar) (uuid.UUID, error) {
	r.uow.records[b.ID] = b
	return b.ID, nil
}

func (r *stubBarRepo) Update(_ context.Context, _ db.DBTX, b *bar.Bar) error {
	if r.uow.updateErr != nil {
		return r.uow.updateErr
	}
	r.uow.records[b.ID] = b
	r.uow.updated = append(r.uow.updated, *b)
	r.uow.log.add("write:" + b.ID.String())
	return nil
}

type stubUserRepo struct {
	uow *stubUoW
}

func (r *stubUserRepo) Create(_ context.Context, _ db.DBTX, _, _ string, _ user.Role) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, _ db.DBTX, _ uuid.UUID) error {
	return nil
}

func (r *stubUserRepo) EnrollPhone(_ context.Context, _ db.DBTX, _ uuid.UUID, _ string) error {
	return nil
}

type stubAnalyzer struct {
	result bar.AnalysisResult
	err    error
	calls  int
}

func (a *stubAnalyzer) Analyze(_ context.Context, _ string, _ []byte) (bar.AnalysisResult, error) {
	a.calls++
	if a.err != nil {
		return bar.AnalysisResult{}, a.err
	}
	return a.result, nil
}

type stubChallengeStore struct {
	challenges map[uuid.UUID]struct {
		userID uuid.UUID
		code   string
	}
	consumed []uuid.UUID
}

func newStubChallengeStore() *stubChallengeStore {
	return &stubChallengeStore{challenges: map[uuid.UUID]struct {
		userID uuid.UUID
		code   string
	}{}}
}

func (s *stubChallengeStore) SaveChallenge(_ context.Context, challengeID, userID uuid.UUID, code string) error {
	s.challenges[challengeID] = struct {
		userID uuid.UUID
		code   string
	}{userID, code}
	return nil
}

func (s *stubChallengeStore) ConsumeChallenge(_ context.Context, challengeID uuid.UUID, code string) (uuid.UUID, error) {
	record, ok := s.challenges[challengeID]
	if !ok {
		return uuid.Nil, fmt.Errorf("challenge not found")
	}
	if record.code != code {
		return uuid.Nil, fmt.Errorf("code mismatch")
	}
	delete(s.challenges, challengeID)
	s.consumed = append(s.consumed, challengeID)
	return record.userID, nil
}

type stubNotifier struct {
	published []commands.VerificationMessage
	err       error
}

func (n *stubNotifier) PublishCode(_ context.Context, msg commands.VerificationMessage) error {
	if n.err != nil {
		return n.err
	}
	n.published = append(n.published, msg)
	return nil
}
