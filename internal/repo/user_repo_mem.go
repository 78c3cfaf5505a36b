package repo

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-user-api/internal/domain"
)

// MemoryUserRepo 内存实现，主要给测试用；语义与 GORM 版保持一致
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *MemoryUserRepo) Create(ctx context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.users {
		if strings.EqualFold(e.Email, u.Email) {
			return domain.ErrEmailTaken
		}
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *MemoryUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneUser(r.users[id], false), nil
}

func (r *MemoryUserRepo) FindByIDWithHash(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneUser(r.users[id], true), nil
}

func (r *MemoryUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneUser(r.byEmail(email), false), nil
}

func (r *MemoryUserRepo) FindByEmailWithHash(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneUser(r.byEmail(email), true), nil
}

func (r *MemoryUserRepo) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.users {
		if e.ID != excludeID && strings.EqualFold(e.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepo) UpdateProfile(ctx context.Context, id, email, firstName, lastName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	for _, e := range r.users {
		if e.ID != id && strings.EqualFold(e.Email, email) {
			return domain.ErrEmailTaken
		}
	}
	u.Email = email
	u.FirstName = firstName
	u.LastName = lastName
	u.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryUserRepo) byEmail(email string) *domain.User {
	for _, e := range r.users {
		if strings.EqualFold(e.Email, email) {
			return e
		}
	}
	return nil
}

func cloneUser(u *domain.User, withHash bool) *domain.User {
	if u == nil {
		return nil
	}
	cp := *u
	if !withHash {
		cp.PasswordHash = ""
	}
	return &cp
}
