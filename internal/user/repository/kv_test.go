package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/fekuna/kiwi-storefront-service/internal/user"
	"github.com/fekuna/kiwi-storefront-service/pkg/kvstore"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepository_Directory(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	store := kvstore.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "kiwi:")
	defer store.Close()
	repo := NewKVRepository(store)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	asha := &model.User{ID: "u1", Name: "Asha", Email: "asha@farm.test", CreatedAt: now, LastLogin: now}
	require.NoError(t, repo.Create(ctx, asha))
	require.NoError(t, repo.Create(ctx, &model.User{ID: "u2", Name: "Bikash", Email: "bikash@farm.test"}))

	assert.True(t, mr.Exists("kiwi:"+user.DirectoryKey))

	err := repo.Create(ctx, &model.User{ID: "u3", Email: "ASHA@farm.test"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	found, err := repo.FindByEmail(ctx, "Asha@Farm.Test")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "u1", found.ID)
	assert.True(t, found.CreatedAt.Equal(now))

	missing, err := repo.FindByEmail(ctx, "ghost@farm.test")
	require.NoError(t, err)
	assert.Nil(t, missing)

	found.Email = "bikash@farm.test"
	assert.ErrorIs(t, repo.Update(ctx, found), user.ErrEmailTaken)

	found.Email = "asha.k@farm.test"
	require.NoError(t, repo.Update(ctx, found))
	byID, err := repo.FindByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "asha.k@farm.test", byID.Email)

	assert.ErrorIs(t, repo.Update(ctx, &model.User{ID: "nope", Email: "n@farm.test"}), user.ErrUserNotFound)
}

func TestKVRepository_Session(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := NewKVRepository(store)

	u, err := repo.GetSessionUser(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, u)

	require.NoError(t, repo.SetSessionUser(ctx, "s1", &model.User{ID: "u1", Name: "Asha"}))
	_, err = store.Get(ctx, "user:s1")
	require.NoError(t, err)

	u, err = repo.GetSessionUser(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", u.Name)

	require.NoError(t, repo.ClearSessionUser(ctx, "s1"))
	u, err = repo.GetSessionUser(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, u)
}
