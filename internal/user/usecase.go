package user

import (
	"context"
	"errors"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/fekuna/kiwi-storefront-service/internal/user/dto"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrMissingFields = errors.New("missing required fields")
	ErrNotLoggedIn   = errors.New("not logged in")
)

// UseCase is a mocked account directory: there is no credential check, any password
// signs in an existing user.
type UseCase interface {
	Signup(ctx context.Context, session string, input *dto.SignupInput) (*model.User, error)
	Login(ctx context.Context, session string, input *dto.LoginInput) (*model.User, error)
	Logout(ctx context.Context, session string) error
	CurrentUser(ctx context.Context, session string) (*model.User, error)
	UpdateProfile(ctx context.Context, session string, input *dto.UpdateProfileInput) (*model.User, error)
}
