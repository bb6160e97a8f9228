package queries

import (
	"context"
	"time"

	"happyhour-console/internal/infra"
	"happyhour-console/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrMenuNotFound = errs.New("menu PDF not found")

// MenuReadStore resolves a happy-hour entry's uploaded menu. Lookups try
// the id-keyed object first and fall back to the older name-scoped key
// when barName is known.
type MenuReadStore interface {
	OpenEntryMenu(ctx context.Context, entryID uuid.UUID, barName string) ([]byte, error)
	EntryMenuURL(ctx context.Context, entryID uuid.UUID, barName string, expiry time.Duration) (string, error)
}

type MenuQueries interface {
	OpenByEntryID(ctx context.Context, entryID uuid.UUID) ([]byte, error)
}

type menuQueriesImpl struct {
	menus MenuReadStore
	bars  BarReadStore
}

func NewMenuQueries(menus MenuReadStore, bars BarReadStore) MenuQueries {
	return &menuQueriesImpl{
		menus: menus,
		bars:  bars,
	}
}

func (q *menuQueriesImpl) OpenByEntryID(ctx context.Context, entryID uuid.UUID) ([]byte, error) {
	barName := ""
	if b, err := q.bars.FindByEntryID(ctx, entryID); err == nil && b != nil {
		barName = b.Name
	}

	data, err := q.menus.OpenEntryMenu(ctx, entryID, barName)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrMenuNotFound
		}
		return nil, err
	}
	return data, nil
}
