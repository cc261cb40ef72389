package users

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates no user matched.
	ErrNotFound = errors.New("user not found")

	// ErrAlreadyExists indicates a username or email uniqueness conflict.
	ErrAlreadyExists = errors.New("username or email already exists")
)

// Repo persists users.
type Repo interface {
	// Create inserts u and returns it with ID and timestamps set.
	// Uniqueness conflicts surface as ErrAlreadyExists.
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	// FindByIdentifier matches username OR email exactly, without case folding.
	FindByIdentifier(ctx context.Context, identifier string) (User, error)
	// FindBySlugOrUsername matches slug OR username case-insensitively.
	FindBySlugOrUsername(ctx context.Context, value string) (User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
	UpdateProfile(ctx context.Context, id int64, p Profile) error
}
