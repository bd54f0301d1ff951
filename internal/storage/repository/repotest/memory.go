// Package repotest содержит хранилище пользователей в памяти для тестов.
package repotest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/user-auth-service/internal/models"
	"github.com/magabrotheeeer/user-auth-service/internal/storage/repository"
)

// Memory повторяет контракт repository.Storage: уникальный email,
// мягкое удаление и те же ошибки.
type Memory struct {
	mu    sync.Mutex
	users map[string]*models.User
}

// NewMemory создает пустое хранилище.
func NewMemory() *Memory {
	return &Memory{users: make(map[string]*models.User)}
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && !u.IsDeleted() {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *Memory) FindByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.IsDeleted() {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *Memory) Create(_ context.Context, email, passwordHash string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && !u.IsDeleted() {
			return nil, repository.ErrUserExists
		}
	}
	now := time.Now().UTC()
	u := &models.User{Email: email, PasswordHash: passwordHash}
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users[u.ID] = u
	cp := *u
	return &cp, nil
}

// Delete мягко удаляет пользователя, как repository.Storage.Delete.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || u.IsDeleted() {
		return repository.ErrUserNotFound
	}
	now := time.Now().UTC()
	u.DeletedAt = &now
	u.UpdatedAt = now
	return nil
}

// Len возвращает число живых пользователей.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, u := range m.users {
		if !u.IsDeleted() {
			n++
		}
	}
	return n
}
