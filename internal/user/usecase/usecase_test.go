package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/kiwi-storefront-service/internal/user"
	"github.com/fekuna/kiwi-storefront-service/internal/user/dto"
	"github.com/fekuna/kiwi-storefront-service/internal/user/repository"
	"github.com/fekuna/kiwi-storefront-service/pkg/kvstore"
	"github.com/fekuna/kiwi-storefront-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	t time.Time
}

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func newUseCase(kv kvstore.Store) *userUseCase {
	uc := NewUserUseCase(repository.NewKVRepository(kv), 0, logger.NewNop()).(*userUseCase)
	c := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	uc.now = c.now
	return uc
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(kvstore.NewMemoryStore())

	u, err := uc.Signup(ctx, "s1", &dto.SignupInput{Name: "Asha", Email: "asha@farm.test", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, u.CreatedAt, u.LastLogin)

	current, err := uc.CurrentUser(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, current.ID)

	_, err = uc.Signup(ctx, "s2", &dto.SignupInput{Name: "Other", Email: "ASHA@farm.test", Password: "pw"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	_, err = uc.Signup(ctx, "s2", &dto.SignupInput{Name: " ", Email: "x@farm.test", Password: "pw"})
	assert.ErrorIs(t, err, user.ErrMissingFields)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(kvstore.NewMemoryStore())

	_, err := uc.Login(ctx, "s1", &dto.LoginInput{Email: "nobody@farm.test", Password: "pw"})
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	created, err := uc.Signup(ctx, "s1", &dto.SignupInput{Name: "Asha", Email: "asha@farm.test", Password: "pw"})
	require.NoError(t, err)
	require.NoError(t, uc.Logout(ctx, "s1"))

	_, err = uc.CurrentUser(ctx, "s1")
	assert.ErrorIs(t, err, user.ErrNotLoggedIn)

	// any password is accepted for a known email
	u, err := uc.Login(ctx, "s2", &dto.LoginInput{Email: "Asha@Farm.test", Password: "wrong"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.True(t, u.LastLogin.After(created.LastLogin))

	stored, err := uc.repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, u.LastLogin.Equal(stored.LastLogin))
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(kvstore.NewMemoryStore())

	_, err := uc.UpdateProfile(ctx, "s1", &dto.UpdateProfileInput{Name: "X"})
	assert.ErrorIs(t, err, user.ErrNotLoggedIn)

	_, err = uc.Signup(ctx, "s1", &dto.SignupInput{Name: "Asha", Email: "asha@farm.test", Password: "pw"})
	require.NoError(t, err)
	_, err = uc.Signup(ctx, "s2", &dto.SignupInput{Name: "Bikash", Email: "bikash@farm.test", Password: "pw"})
	require.NoError(t, err)

	u, err := uc.UpdateProfile(ctx, "s1", &dto.UpdateProfileInput{Name: "Asha K"})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", u.Name)
	assert.Equal(t, "asha@farm.test", u.Email)

	_, err = uc.UpdateProfile(ctx, "s1", &dto.UpdateProfileInput{Email: "BIKASH@farm.test"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	byEmail, err := uc.repo.FindByEmail(ctx, "asha@farm.test")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, "Asha K", byEmail.Name)
}

func TestUpdateProfile_KeepsLaterLogin(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase(kvstore.NewMemoryStore())

	_, err := uc.Signup(ctx, "phone", &dto.SignupInput{Name: "Asha", Email: "asha@farm.test", Password: "pw"})
	require.NoError(t, err)
	laptop, err := uc.Login(ctx, "laptop", &dto.LoginInput{Email: "asha@farm.test", Password: "pw"})
	require.NoError(t, err)

	u, err := uc.UpdateProfile(ctx, "phone", &dto.UpdateProfileInput{Name: "Asha K"})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", u.Name)
	assert.True(t, laptop.LastLogin.Equal(u.LastLogin))

	stored, err := uc.repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, laptop.LastLogin.Equal(stored.LastLogin))
}

func TestSimulatedLatencyHonorsContext(t *testing.T) {
	uc := NewUserUseCase(repository.NewKVRepository(kvstore.NewMemoryStore()), time.Hour, logger.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := uc.Signup(ctx, "s1", &dto.SignupInput{Name: "Asha", Email: "asha@farm.test", Password: "pw"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
