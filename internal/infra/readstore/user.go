package readstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"happyhour-console/internal/domain/user"
	"happyhour-console/internal/infra"
	"happyhour-console/internal/infra/db"
	"happyhour-console/internal/usecase/queries"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(database db.DBTX) *UserReadStore {
	return &UserReadStore{db: database}
}

const selectUserSQL = `
SELECT id, email, display_name, password_hash, role, phone, mfa_enabled, is_active, last_login
FROM users
`

type userRow struct {
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
	Role         string
	Phone        *string
	MFAEnabled   bool
	IsActive     bool
	LastLogin    *time.Time
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	row, err := r.scanOne(ctx, selectUserSQL+`WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return toAuthorizedUserView(row), nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	row, err := r.scanOne(ctx, selectUserSQL+`WHERE email = $1`, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}
	return toAuthorizedUserView(row), row.PasswordHash, nil
}

func (r *UserReadStore) scanOne(ctx context.Context, sql string, arg any) (userRow, error) {
	var row userRow
	err := r.db.QueryRow(ctx, sql, arg).Scan(
		&row.ID, &row.Email, &row.DisplayName, &row.PasswordHash, &row.Role,
		&row.Phone, &row.MFAEnabled, &row.IsActive, &row.LastLogin,
	)
	return row, err
}

func toAuthorizedUserView(row userRow) *queries.AuthorizedUserView {
	rm := &queries.AuthorizedUserView{
		ID:          row.ID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		Role:        row.Role,
		MFAEnabled:  row.MFAEnabled && row.Phone != nil,
		IsActive:    row.IsActive,
		LastLogin:   row.LastLogin,
	}

	if row.Phone != nil {
		if phone, err := user.NewPhone(*row.Phone); err == nil {
			masked := phone.Masked()
			rm.PhoneMasked = &masked
		}
	}

	return rm
}
