package shared

import (
	"context"

	"happyhour-console/internal/domain/bar"
	"happyhour-console/internal/domain/user"
	"happyhour-console/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// Reads: Direct access to command reads for validation outside transactions
	Reads() CommandReads
}

type Tx interface {
	Bars() BarRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	BarByID(ctx context.Context, id uuid.UUID) (*bar.Bar, error)
}

type BarRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *bar.Bar) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, b *bar.Bar) error
}

type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, email, passwordHash string, role user.Role) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
	EnrollPhone(ctx context.Context, tx db.DBTX, userID uuid.UUID, phone string) error
}
