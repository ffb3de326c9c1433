package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fekuna/kiwi-storefront-service/internal/model"
	"github.com/fekuna/kiwi-storefront-service/internal/user"
	"github.com/fekuna/kiwi-storefront-service/pkg/kvstore"
)

// KVRepository keeps the user directory as one JSON document and the signed-in user
// of each session under its own key. Directory writes are read-modify-write, so they
// are serialized within the process.
type KVRepository struct {
	mu    sync.Mutex
	store kvstore.Store
}

func NewKVRepository(store kvstore.Store) *KVRepository {
	return &KVRepository{store: store}
}

func (r *KVRepository) load(ctx context.Context) ([]model.User, error) {
	data, err := r.store.Get(ctx, user.DirectoryKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (r *KVRepository) save(ctx context.Context, users []model.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := r.store.Set(ctx, user.DirectoryKey, data); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

func indexByEmail(users []model.User, email string) int {
	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			return i
		}
	}
	return -1
}

func (r *KVRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexByEmail(users, email); i >= 0 {
		return &users[i], nil
	}
	return nil, nil
}

func (r *KVRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *KVRepository) Create(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}
	if indexByEmail(users, u.Email) >= 0 {
		return user.ErrEmailTaken
	}
	return r.save(ctx, append(users, *u))
}

func (r *KVRepository) Update(ctx context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load(ctx)
	if err != nil {
		return err
	}

	pos := -1
	for i := range users {
		if users[i].ID == u.ID {
			pos = i
			continue
		}
		if strings.EqualFold(users[i].Email, u.Email) {
			return user.ErrEmailTaken
		}
	}
	if pos < 0 {
		return user.ErrUserNotFound
	}
	users[pos] = *u
	return r.save(ctx, users)
}

func (r *KVRepository) GetSessionUser(ctx context.Context, session string) (*model.User, error) {
	data, err := r.store.Get(ctx, user.SessionKey(session))
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session user: %w", err)
	}

	var u model.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode session user: %w", err)
	}
	return &u, nil
}

func (r *KVRepository) SetSessionUser(ctx context.Context, session string, u *model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode session user: %w", err)
	}
	return r.store.Set(ctx, user.SessionKey(session), data)
}

func (r *KVRepository) ClearSessionUser(ctx context.Context, session string) error {
	return r.store.Delete(ctx, user.SessionKey(session))
}
