package user

import (
	"context"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
)

// DirectoryKey holds every registered user as one JSON array.
const DirectoryKey = "users"

// SessionKey holds the user signed in on session.
func SessionKey(session string) string {
	return "user:" + session
}

// Repository lookups return (nil, nil) when nothing matches.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	// Create fails with ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u *model.User) error
	// Update replaces the user with the same id. Moving to an email owned by
	// another user fails with ErrEmailTaken.
	Update(ctx context.Context, u *model.User) error

	GetSessionUser(ctx context.Context, session string) (*model.User, error)
	SetSessionUser(ctx context.Context, session string, u *model.User) error
	ClearSessionUser(ctx context.Context, session string) error
}
