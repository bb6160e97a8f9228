package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"happyhour-console/internal/domain/bar"
	"happyhour-console/internal/pkg/clock"
	"happyhour-console/internal/pkg/errs"
	"happyhour-console/internal/usecase/shared"
)

var ErrAnalysisFailed = errs.New("menu analysis failed")

// AnalyzeOutcome reports what a menu upload did to the edit session.
// EntriesAdded is zero when the analyzer found no happy hours, in which
// case the session state is whatever it already was.
type AnalyzeOutcome struct {
	EntriesAdded int
	State        bar.EditState
	Draft        *bar.Bar
}

type MenuCommands interface {
	Analyze(ctx context.Context, userID, barID uuid.UUID, filename string, data []byte) (*AnalyzeOutcome, error)
}

type menuCommandsImpl struct {
	uow      shared.UnitOfWork
	sessions EditSessionStore
	menus    MenuStore
	analyzer MenuAnalyzer
	clock    clock.Clock
}

func NewMenuCommands(uow shared.UnitOfWork, sessions EditSessionStore, menus MenuStore, analyzer MenuAnalyzer, clk clock.Clock) MenuCommands {
	return &menuCommandsImpl{
		uow:      uow,
		sessions: sessions,
		menus:    menus,
		analyzer: analyzer,
		clock:    clk,
	}
}

// Analyze stages the uploaded PDF, runs it through the analysis
// service, and merges every extracted happy hour into the bar's draft
// as new entries. Each new entry gets its id-keyed PDF object before
// it appears in the draft, so the download route can already serve it
// while the draft is still unsaved. The staged copy stays attached to
// the session so a later save re-distributes it to every draft entry.
func (c *menuCommandsImpl) Analyze(ctx context.Context, userID, barID uuid.UUID, filename string, data []byte) (*AnalyzeOutcome, error) {
	session, err := loadOrCreateSession(ctx, c.uow, c.sessions, userID, barID)
	if err != nil {
		return nil, err
	}

	stagingKey := fmt.Sprintf("%s-%s", uuid.New(), filename)
	if err := c.menus.UploadStaging(ctx, stagingKey, data); err != nil {
		return nil, errs.Mark(err, ErrMenuUpload)
	}

	result, err := c.analyzer.Analyze(ctx, filename, data)
	if err != nil {
		return nil, errs.Mark(err, ErrAnalysisFailed)
	}

	entries := bar.BuildEntries(result, uuid.New, c.clock.Now())

	for _, entry := range entries {
		if err := c.menus.UploadEntryMenu(ctx, entry.ID, data); err != nil {
			return nil, errs.Mark(err, ErrMenuUpload)
		}
	}

	session.StageMenu(stagingKey)
	if _, err := session.ApplyAnalysis(entries); err != nil {
		return nil, err
	}

	if err := c.sessions.Put(ctx, userID, barID, session); err != nil {
		return nil, err
	}

	outcome := &AnalyzeOutcome{
		EntriesAdded: len(entries),
		State:        session.State(),
	}
	if session.State() == bar.StateEditing {
		draft, err := session.Draft()
		if err != nil {
			return nil, err
		}
		outcome.Draft = draft
	}
	return outcome, nil
}
