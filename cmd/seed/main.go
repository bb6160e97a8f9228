package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"happyhour-console/internal/domain/bar"
	"happyhour-console/internal/domain/user"
	"happyhour-console/internal/infra/db"
	"happyhour-console/internal/infra/repository"
	"happyhour-console/internal/pkg/config"
	"happyhour-console/internal/pkg/password"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    email         text UNIQUE NOT NULL,
    display_name  text NOT NULL DEFAULT '',
    password_hash text NOT NULL,
    role          text NOT NULL DEFAULT 'viewer',
    phone         text,
    mfa_enabled   boolean NOT NULL DEFAULT false,
    is_active     boolean NOT NULL DEFAULT true,
    last_login    timestamptz,
    created_at    timestamptz NOT NULL DEFAULT now(),
    updated_at    timestamptz NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bars (
    id             uuid PRIMARY KEY,
    name           text NOT NULL,
    hero_image_url text NOT NULL DEFAULT '',
    address        jsonb NOT NULL DEFAULT '{}',
    full_address   text NOT NULL DEFAULT '',
    phone_number   text NOT NULL DEFAULT '',
    website        text NOT NULL DEFAULT '',
    happy_hours    jsonb NOT NULL DEFAULT '[]',
    created_at     timestamptz NOT NULL DEFAULT now(),
    updated_at     timestamptz NOT NULL DEFAULT now()
);

-- Entry-id containment lookups for legacy menu paths
CREATE INDEX IF NOT EXISTS idx_bars_happy_hours ON bars USING gin (happy_hours);
`

func main() {
	var op int
	flag.IntVar(&op, "op", 0, "operation (1: create schema, 2: create admin user, 3: insert sample bars)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch op {
	case 1:
		if _, err := pool.Exec(ctx, schemaSQL); err != nil {
			logger.Error("failed to create schema", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("schema created")
	case 2:
		if err := createAdmin(ctx, pool); err != nil {
			logger.Error("failed to create admin user", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("admin user created", slog.String("email", "admin@example.com"))
	case 3:
		if err := insertSampleBars(ctx, pool); err != nil {
			logger.Error("failed to insert sample bars", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("sample bars inserted")
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func createAdmin(ctx context.Context, pool db.DBTX) error {
	hash, err := password.HashPassword("changeme-now")
	if err != nil {
		return err
	}
	_, err = repository.NewUserRepository().Create(ctx, pool, "admin@example.com", hash, user.RoleAdmin)
	return err
}

func insertSampleBars(ctx context.Context, pool db.DBTX) error {
	repo := repository.NewBarRepository()
	for _, b := range sampleBars() {
		if _, err := repo.Create(ctx, pool, &b); err != nil {
			return err
		}
	}
	return nil
}

func sampleBars() []bar.Bar {
	at := func(hour, minute int) *time.Time {
		t := time.Date(2025, 1, 6, hour, minute, 0, 0, time.UTC)
		return &t
	}

	return []bar.Bar{
		{
			ID:   uuid.New(),
			Name: "The Green Mill",
			Address: bar.Address{
				Neighborhood: "Uptown",
				City:         "Chicago",
				State:        "IL",
			},
			FullAddress: "4802 N Broadway St, Chicago, IL 60640",
			PhoneNumber: "+17738785552",
			Website:     "https://greenmilljazz.com",
			HappyHours: []bar.HappyHourEntry{
				{
					ID:        uuid.New(),
					Name:      "Jazz Hour",
					Days:      []bar.Weekday{bar.Monday, bar.Tuesday, bar.Wednesday},
					StartTime: at(16, 0),
					EndTime:   at(18, 0),
					Drinks:    []string{"Old Fashioned", "House Lager"},
					Deals: []bar.Deal{
						{Item: "Old Fashioned", Description: "House bourbon, demerara, bitters", Deal: "$8"},
					},
					DealsSummary: "Classic cocktails at $8 before the first set",
				},
			},
		},
		{
			ID:   uuid.New(),
			Name: "Lone Star Taproom",
			Address: bar.Address{
				Neighborhood: "East Side",
				City:         "Austin",
				State:        "TX",
			},
			FullAddress: "1200 E 6th St, Austin, TX 78702",
			PhoneNumber: "+15125550137",
			Website:     "https://lonestartaproom.example.com",
			HappyHours:  []bar.HappyHourEntry{},
		},
	}
}
