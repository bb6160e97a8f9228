package queries

import (
	"time"

	"happyhour-console/internal/domain/bar"

	"github.com/google/uuid"
)

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	MFAEnabled  bool       `json:"mfa_enabled"`
	PhoneMasked *string    `json:"phone_masked,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// BarListItem represents the trimmed bar row the dashboard list renders.
type BarListItem struct {
	ID             uuid.UUID   `json:"id"`
	Name           string      `json:"name"`
	HeroImageURL   string      `json:"heroImageURL"`
	Address        bar.Address `json:"fullAddress"`
	HappyHourCount int         `json:"happyHourCount"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
