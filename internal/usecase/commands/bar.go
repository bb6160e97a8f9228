package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"happyhour-console/internal/domain/bar"
	reqdto "happyhour-console/internal/handler/dto/request"
	"happyhour-console/internal/infra"
	"happyhour-console/internal/pkg/clock"
	"happyhour-console/internal/pkg/errs"
	"happyhour-console/internal/usecase/shared"
)

var (
	ErrBarNotFound  = errs.New("bar not found")
	ErrNoActiveEdit = errs.New("no edit in progress")
	ErrMenuUpload   = errs.New("menu upload failed")
	ErrSaveFailed   = errs.New("failed to save bar")
)

type BarCommands interface {
	BeginEdit(ctx context.Context, userID, barID uuid.UUID) (*bar.Bar, error)
	UpdateDraft(ctx context.Context, userID, barID uuid.UUID, req reqdto.UpdateBarDraftRequest) (*bar.Bar, error)
	AddEntry(ctx context.Context, userID, barID uuid.UUID) (*bar.Bar, error)
	Save(ctx context.Context, userID, barID uuid.UUID) (*bar.Bar, error)
	Cancel(ctx context.Context, userID, barID uuid.UUID) error
}

type barCommandsImpl struct {
	uow      shared.UnitOfWork
	sessions EditSessionStore
	menus    MenuStore
	clock    clock.Clock
}

func NewBarCommands(uow shared.UnitOfWork, sessions EditSessionStore, menus MenuStore, clk clock.Clock) BarCommands {
	return &barCommandsImpl{
		uow:      uow,
		sessions: sessions,
		menus:    menus,
		clock:    clk,
	}
}

func (c *barCommandsImpl) BeginEdit(ctx context.Context, userID, barID uuid.UUID) (*bar.Bar, error) {
	session, err := loadOrCreateSession(ctx, c.uow, c.sessions, userID, barID)
	if err != nil {
		return nil, err
	}

	if err := session.BeginEdit(); err != nil {
		return nil, err
	}

	if err := c.sessions.Put(ctx, userID, barID, session); err != nil {
		return nil, err
	}

	return session.Draft()
}

func (c *barCommandsImpl) UpdateDraft(ctx context.Context, userID, barID uuid.UUID, req reqdto.UpdateBarDraftRequest) (*bar.Bar, error) {
	session, err := c.activeSession(ctx, userID, barID)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	if err := session.UpdateDraft(func(b *bar.Bar) {
		req.Apply(b, now, uuid.New)
	}); err != nil {
		return nil, err
	}

	if err := c.sessions.Put(ctx, userID, barID, session); err != nil {
		return nil, err
	}

	return session.Draft()
}

func (c *barCommandsImpl) AddEntry(ctx context.Context, userID, barID uuid.UUID) (*bar.Bar, error) {
	session, err := c.activeSession(ctx, userID, barID)
	if err != nil {
		return nil, err
	}

	if err := session.UpdateDraft(func(b *bar.Bar) {
		b.AppendHappyHours([]bar.HappyHourEntry{bar.NewEmptyEntry(uuid.New())})
	}); err != nil {
		return nil, err
	}

	if err := c.sessions.Put(ctx, userID, barID, session); err != nil {
		return nil, err
	}

	return session.Draft()
}

// Save persists the draft. Any staged menu PDF is copied to every
// entry's id-keyed object first, one upload at a time, so the record
// never references a menu that is not in the store yet. A failure at
// any step leaves the session editing with the draft intact.
func (c *barCommandsImpl) Save(ctx context.Context, userID, barID uuid.UUID) (*bar.Bar, error) {
	session, err := c.activeSession(ctx, userID, barID)
	if err != nil {
		return nil, err
	}

	draft, err := session.Draft()
	if err != nil {
		return nil, ErrNoActiveEdit
	}

	staged := session.StagedMenuKey()
	if staged != "" {
		if err := c.distributeStagedMenu(ctx, staged, draft.HappyHours); err != nil {
			return nil, errs.Mark(err, ErrMenuUpload)
		}
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bars().Update(ctx, tx.DB(), draft)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrSaveFailed)
	}

	if err := session.Commit(); err != nil {
		return nil, err
	}
	committed := session.Committed()

	// The committed state now lives in the database; the session has
	// nothing left to remember.
	if err := c.sessions.Delete(ctx, userID, barID); err != nil {
		slog.Warn("failed to drop edit session after save", "bar_id", barID, "error", err.Error())
	}
	if staged != "" {
		if err := c.menus.DeleteStaging(ctx, staged); err != nil {
			slog.Warn("failed to delete staged menu", "key", staged, "error", err.Error())
		}
	}

	return &committed, nil
}

// Cancel discards the draft and any staged upload. Cancelling with no
// edit in progress is a no-op.
func (c *barCommandsImpl) Cancel(ctx context.Context, userID, barID uuid.UUID) error {
	session, err := c.sessions.Get(ctx, userID, barID)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}

	if staged := session.StagedMenuKey(); staged != "" {
		if err := c.menus.DeleteStaging(ctx, staged); err != nil {
			slog.Warn("failed to delete staged menu", "key", staged, "error", err.Error())
		}
	}

	session.Cancel()
	return c.sessions.Delete(ctx, userID, barID)
}

func (c *barCommandsImpl) distributeStagedMenu(ctx context.Context, stagedKey string, entries []bar.HappyHourEntry) error {
	data, err := c.menus.OpenStaging(ctx, stagedKey)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := c.menus.UploadEntryMenu(ctx, entry.ID, data); err != nil {
			return err
		}
	}
	return nil
}

// loadOrCreateSession returns the stored session or seeds a fresh
// Viewing one from the persisted record.
func loadOrCreateSession(ctx context.Context, uow shared.UnitOfWork, sessions EditSessionStore, userID, barID uuid.UUID) (*bar.EditSession, error) {
	session, err := sessions.Get(ctx, userID, barID)
	if err != nil {
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	committed, err := uow.Reads().BarByID(ctx, barID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBarNotFound
		}
		return nil, err
	}
	return bar.NewEditSession(*committed), nil
}

func (c *barCommandsImpl) activeSession(ctx context.Context, userID, barID uuid.UUID) (*bar.EditSession, error) {
	session, err := c.sessions.Get(ctx, userID, barID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.State() != bar.StateEditing {
		return nil, ErrNoActiveEdit
	}
	return session, nil
}
