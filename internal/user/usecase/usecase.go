package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/fekuna/kiwi-storefront-service/internal/user"
	"github.com/fekuna/kiwi-storefront-service/internal/user/dto"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type userUseCase struct {
	repo    user.Repository
	latency time.Duration
	now     func() time.Time
	logger  logger.ZapLogger
}

// NewUserUseCase builds the mocked directory. latency delays signup and login to mimic
// a remote account service; zero disables it.
func NewUserUseCase(repo user.Repository, latency time.Duration, log logger.ZapLogger) user.UseCase {
	return &userUseCase{
		repo:    repo,
		latency: latency,
		now:     time.Now,
		logger:  log,
	}
}

func (uc *userUseCase) wait(ctx context.Context) error {
	if uc.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(uc.latency)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (uc *userUseCase) Signup(ctx context.Context, session string, input *dto.SignupInput) (*model.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" || input.Password == "" {
		return nil, user.ErrMissingFields
	}
	if err := uc.wait(ctx); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	u := &model.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: now,
		LastLogin: now,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	if err := uc.repo.SetSessionUser(ctx, session, u); err != nil {
		return nil, err
	}

	uc.logger.Info("user signed up", zap.String("user_id", u.ID), zap.String("session_id", session))
	return u, nil
}

func (uc *userUseCase) Login(ctx context.Context, session string, input *dto.LoginInput) (*model.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, user.ErrMissingFields
	}
	if err := uc.wait(ctx); err != nil {
		return nil, err
	}

	u, err := uc.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	u.LastLogin = uc.now().UTC()
	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := uc.repo.SetSessionUser(ctx, session, u); err != nil {
		return nil, err
	}

	uc.logger.Info("user logged in", zap.String("user_id", u.ID), zap.String("session_id", session))
	return u, nil
}

func (uc *userUseCase) Logout(ctx context.Context, session string) error {
	return uc.repo.ClearSessionUser(ctx, session)
}

func (uc *userUseCase) CurrentUser(ctx context.Context, session string) (*model.User, error) {
	u, err := uc.repo.GetSessionUser(ctx, session)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrNotLoggedIn
	}
	return u, nil
}

func (uc *userUseCase) UpdateProfile(ctx context.Context, session string, input *dto.UpdateProfileInput) (*model.User, error) {
	current, err := uc.CurrentUser(ctx, session)
	if err != nil {
		return nil, err
	}
	// The directory copy is authoritative; the session copy may predate a later login.
	u, err := uc.repo.FindByID(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		u.Name = name
	}
	if email := strings.TrimSpace(input.Email); email != "" {
		u.Email = email
	}

	if err := uc.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	if err := uc.repo.SetSessionUser(ctx, session, u); err != nil {
		return nil, err
	}
	return u, nil
}
