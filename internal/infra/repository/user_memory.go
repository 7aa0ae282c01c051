package repository

import (
	"context"
	"sync"
	"time"

	"github.com/BruksfildServices01/weekly-availability/internal/domain/user"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

type UserMemoryRepository struct {
	mu     sync.RWMutex
	users  map[uint]models.User
	nextID uint
}

func NewUserMemoryRepository() *UserMemoryRepository {
	return &UserMemoryRepository{users: make(map[uint]models.User)}
}

func (r *UserMemoryRepository) Create(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.users {
		if other.Username == u.Username {
			return user.ErrUsernameTaken
		}
	}

	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	return nil
}

func (r *UserMemoryRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (r *UserMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

var _ user.Repository = (*UserMemoryRepository)(nil)
