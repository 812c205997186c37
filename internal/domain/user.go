package domain

import (
	"context"
	"time"
)

// User represents a registered account. Passwords are stored as bcrypt
// hashes only; the plaintext never leaves the service layer.
type User struct {
	ID                 int64
	FirstName          string
	LastName           string
	MiddleName         *string
	MobileNumber       string
	Email              string
	DOB                time.Time
	Introduction       string
	Address            string
	CityID             *int64
	Pincode            int
	Gender             string
	Username           string
	PasswordHash       string
	ProfilePicLocation *string
	IsBlocked          bool
	BlockedOn          *time.Time
	RegisteredOn       time.Time
	LastLoginOn        *time.Time
}

// UserRepository defines data access for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	// GetByUsernameOrEmail matches either the username or the email,
	// case-insensitively, in a single query.
	GetByUsernameOrEmail(ctx context.Context, name string) (*User, error)
	GetAll(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}

// UserActivity is one append-only audit record per completed request.
// UserID is a soft reference; anonymous requests leave it nil.
type UserActivity struct {
	ID        int64
	UserID    *int64
	Activity  map[string]any
	CreatedAt time.Time
}

// ActivityRepository defines data access for the audit trail.
type ActivityRepository interface {
	Create(ctx context.Context, a *UserActivity) error
}
