package repository

import (
	"context"
	"encoding/json"

	"happyhour-console/internal/domain/bar"
	"happyhour-console/internal/infra"
	"happyhour-console/internal/infra/db"

	"github.com/google/uuid"
)

type BarRepository struct{}

func NewBarRepository() *BarRepository {
	return &BarRepository{}
}

const insertBarSQL = `
INSERT INTO bars (id, name, hero_image_url, address, full_address, phone_number, website, happy_hours)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

func (r *BarRepository) Create(ctx context.Context, tx db.DBTX, b *bar.Bar) (uuid.UUID, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.Sanitize()

	address, err := json.Marshal(b.Address)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode bar address", err)
	}
	happyHours, err := json.Marshal(b.HappyHours)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode happy hours", err)
	}

	_, err = tx.Exec(ctx, insertBarSQL,
		b.ID, b.Name, b.HeroImageURL, address, b.FullAddress, b.PhoneNumber, b.Website, happyHours)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create bar", err)
	}
	return b.ID, nil
}

// The address column is merged, not replaced: keys written by older
// clients that this model does not know about survive an update.
const updateBarSQL = `
UPDATE bars
SET name = $2,
    hero_image_url = $3,
    address = address || $4::jsonb,
    full_address = $5,
    phone_number = $6,
    website = $7,
    happy_hours = $8::jsonb,
    updated_at = now()
WHERE id = $1
`

func (r *BarRepository) Update(ctx context.Context, tx db.DBTX, b *bar.Bar) error {
	b.Sanitize()

	address, err := json.Marshal(b.Address)
	if err != nil {
		return infra.WrapRepoErr("failed to encode bar address", err)
	}
	happyHours, err := json.Marshal(b.HappyHours)
	if err != nil {
		return infra.WrapRepoErr("failed to encode happy hours", err)
	}

	tag, err := tx.Exec(ctx, updateBarSQL,
		b.ID, b.Name, b.HeroImageURL, address, b.FullAddress, b.PhoneNumber, b.Website, happyHours)
	if err != nil {
		return infra.WrapRepoErr("failed to update bar", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("bar not found", nil, infra.KindNotFound)
	}
	return nil
}
