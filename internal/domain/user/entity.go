package user

import (
	"time"

	"github.com/google/uuid"
)

// User entity. Auth plus the MFA enrollment flag; there is no user
// management surface beyond seeding.
type User struct {
	id           uuid.UUID
	email        Email
	passwordHash string
	displayName  string
	role         Role
	phone        *Phone
	mfaEnabled   bool
	lastLogin    *time.Time
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email Email, passwordHash, displayName string, role Role) *User {
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		displayName:  displayName,
		role:         role,
		isActive:     true,
	}
}

// EnrollPhone turns on the second factor. A user without a phone can
// never be mfa-enabled.
func (u *User) EnrollPhone(p Phone) {
	u.phone = &p
	u.mfaEnabled = true
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) DisplayName() string   { return u.displayName }
func (u *User) Role() Role            { return u.role }
func (u *User) Phone() *Phone         { return u.phone }
func (u *User) MFAEnabled() bool      { return u.mfaEnabled && u.phone != nil }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) CreatedAt() time.Time  { return u.createdAt }
func (u *User) UpdatedAt() time.Time  { return u.updatedAt }
