package repository

import (
	"context"
	"errors"

	"happyhour-console/internal/domain/user"
	"happyhour-console/internal/infra"
	"happyhour-console/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgErrCodeUniqueViolation = "23505"

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

const insertUserSQL = `
INSERT INTO users (email, password_hash, role)
VALUES ($1, $2, $3)
RETURNING id
`

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, email, passwordHash string, role user.Role) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertUserSQL, email, passwordHash, role.String()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return uuid.Nil, infra.WrapRepoErr("user already exists", err, infra.KindDuplicateKey)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	_, err := tx.Exec(ctx, `UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}

// EnrollPhone stores a verified phone and switches the account to
// code-verified logins.
func (r *UserRepository) EnrollPhone(ctx context.Context, tx db.DBTX, userID uuid.UUID, phone string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE users SET phone = $2, mfa_enabled = true, updated_at = now() WHERE id = $1`,
		userID, phone)
	if err != nil {
		return infra.WrapRepoErr("failed to enroll phone", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}
