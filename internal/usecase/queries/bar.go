package queries

import (
	"context"
	"time"

	"happyhour-console/internal/domain/bar"
	"happyhour-console/internal/infra"
	"happyhour-console/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBarNotFound = errs.New("bar not found")
)

const (
	EditStateViewing = "viewing"
	EditStateEditing = "editing"
)

// EditStateView is what the dashboard polls while a record is open: the
// committed record plus, when an edit session exists, its working draft.
type EditStateView struct {
	State string   `json:"state"`
	Bar   *bar.Bar `json:"bar"`
	Draft *bar.Bar `json:"draft,omitempty"`
}

type BarQueries interface {
	List(ctx context.Context) ([]*BarListItem, error)
	GetByID(ctx context.Context, id uuid.UUID) (*bar.Bar, error)
	GetEditState(ctx context.Context, userID, barID uuid.UUID) (*EditStateView, error)
	MenuDownloadURL(ctx context.Context, entryID uuid.UUID, expiry time.Duration) (string, error)
}

type BarReadStore interface {
	FindAll(ctx context.Context) ([]*BarListItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*bar.Bar, error)
	// FindByEntryID locates the bar owning a happy-hour entry id.
	FindByEntryID(ctx context.Context, entryID uuid.UUID) (*bar.Bar, error)
}

// EditSessionReader is the read-only slice of the session store the query
// side needs. Absence is reported as (nil, nil), not an error.
type EditSessionReader interface {
	Get(ctx context.Context, userID, barID uuid.UUID) (*bar.EditSession, error)
}

type barQueriesImpl struct {
	readStore BarReadStore
	sessions  EditSessionReader
	menus     MenuReadStore
}

func NewBarQueries(readStore BarReadStore, sessions EditSessionReader, menus MenuReadStore) BarQueries {
	return &barQueriesImpl{
		readStore: readStore,
		sessions:  sessions,
		menus:     menus,
	}
}

func (q *barQueriesImpl) List(ctx context.Context) ([]*BarListItem, error) {
	return q.readStore.FindAll(ctx)
}

func (q *barQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*bar.Bar, error) {
	b, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBarNotFound
		}
		return nil, err
	}
	return b, nil
}

func (q *barQueriesImpl) GetEditState(ctx context.Context, userID, barID uuid.UUID) (*EditStateView, error) {
	committed, err := q.GetByID(ctx, barID)
	if err != nil {
		return nil, err
	}

	session, err := q.sessions.Get(ctx, userID, barID)
	if err != nil {
		return nil, err
	}

	view := &EditStateView{State: EditStateViewing, Bar: committed}
	if session != nil && session.State() == bar.StateEditing {
		draft, err := session.Draft()
		if err != nil {
			return nil, err
		}
		view.State = EditStateEditing
		view.Draft = draft
	}
	return view, nil
}

func (q *barQueriesImpl) MenuDownloadURL(ctx context.Context, entryID uuid.UUID, expiry time.Duration) (string, error) {
	barName := q.ownerName(ctx, entryID)
	url, err := q.menus.EntryMenuURL(ctx, entryID, barName, expiry)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", ErrMenuNotFound
		}
		return "", err
	}
	return url, nil
}

// ownerName best-effort resolves the owning bar for legacy menu paths
// that were keyed by bar name. An unknown entry just skips the fallback.
func (q *barQueriesImpl) ownerName(ctx context.Context, entryID uuid.UUID) string {
	b, err := q.readStore.FindByEntryID(ctx, entryID)
	if err != nil || b == nil {
		return ""
	}
	return b.Name
}
