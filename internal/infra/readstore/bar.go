package readstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"happyhour-console/internal/domain/bar"
	"happyhour-console/internal/infra"
	"happyhour-console/internal/infra/db"
	"happyhour-console/internal/usecase/queries"
)

type BarReadStore struct {
	db db.DBTX
}

func NewBarReadStore(database db.DBTX) *BarReadStore {
	return &BarReadStore{db: database}
}

const listBarsSQL = `
SELECT id, name, hero_image_url, address, jsonb_array_length(happy_hours), updated_at
FROM bars
ORDER BY name
`

func (r *BarReadStore) FindAll(ctx context.Context) ([]*queries.BarListItem, error) {
	rows, err := r.db.Query(ctx, listBarsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bars", err)
	}
	defer rows.Close()

	items := []*queries.BarListItem{}
	for rows.Next() {
		var (
			item      queries.BarListItem
			address   []byte
			updatedAt time.Time
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.HeroImageURL, &address, &item.HappyHourCount, &updatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan bar row", err)
		}
		if err := json.Unmarshal(address, &item.Address); err != nil {
			return nil, infra.WrapRepoErr("failed to decode bar address", err)
		}
		item.UpdatedAt = updatedAt
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bar rows", err)
	}
	return items, nil
}

const selectBarSQL = `
SELECT id, name, hero_image_url, address, full_address, phone_number, website, happy_hours
FROM bars
`

func (r *BarReadStore) FindByID(ctx context.Context, id uuid.UUID) (*bar.Bar, error) {
	b, err := r.scanOne(ctx, selectBarSQL+`WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("bar not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find bar by ID", err)
	}
	return b, nil
}

// FindByEntryID resolves which bar owns a happy-hour entry. Entry ids
// are unique across bars, so containment on the happy_hours document
// is enough; the expression matches the GIN index on the column.
func (r *BarReadStore) FindByEntryID(ctx context.Context, entryID uuid.UUID) (*bar.Bar, error) {
	b, err := r.scanOne(ctx,
		selectBarSQL+`WHERE happy_hours @> jsonb_build_array(jsonb_build_object('id', $1::text))`,
		entryID.String())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("bar not found for entry", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find bar by entry ID", err)
	}
	return b, nil
}

func (r *BarReadStore) scanOne(ctx context.Context, sql string, arg any) (*bar.Bar, error) {
	var (
		b          bar.Bar
		address    []byte
		happyHours []byte
	)
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&b.ID, &b.Name, &b.HeroImageURL, &address, &b.FullAddress, &b.PhoneNumber, &b.Website, &happyHours,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(address, &b.Address); err != nil {
		return nil, infra.WrapRepoErr("failed to decode bar address", err)
	}
	if err := json.Unmarshal(happyHours, &b.HappyHours); err != nil {
		return nil, infra.WrapRepoErr("failed to decode happy hours", err)
	}

	b.Sanitize()
	return &b, nil
}
