// Package services содержит логику бизнес-уровня для регистрации, входа и аутентификации пользователей.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/magabrotheeeer/user-auth-service/internal/events"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/apperr"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/user-auth-service/internal/models"
	"github.com/magabrotheeeer/user-auth-service/internal/storage/repository"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// FindByEmail возвращает пользователя или repository.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByID возвращает пользователя или repository.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// Create сохраняет пользователя; при занятом email возвращает repository.ErrUserExists.
	Create(ctx context.Context, email, passwordHash string) (*models.User, error)
}

// PasswordHasher хэширует и проверяет пароли.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenCache хранит subject уже проверенных токенов.
type TokenCache interface {
	Subject(ctx context.Context, token string) (string, bool)
	Remember(ctx context.Context, token, subject string)
}

// AuthService отвечает за регистрацию, вход и проверку access токенов.
type AuthService struct {
	users     UserRepository
	hasher    PasswordHasher
	jwtMaker  jwt.Maker
	tokens    TokenCache
	accessTTL time.Duration
	events    events.Publisher
	now       func() time.Time
}

// NewAuthService создает новый экземпляр AuthService. publisher может быть nil.
func NewAuthService(users UserRepository, hasher PasswordHasher, jwtMaker jwt.Maker, accessTTL time.Duration, publisher events.Publisher) *AuthService {
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		jwtMaker:  jwtMaker,
		accessTTL: accessTTL,
		events:    publisher,
		now:       time.Now,
	}
}

// WithTokenCache включает кеш проверенных токенов для Authenticate.
func (s *AuthService) WithTokenCache(tokens TokenCache) *AuthService {
	s.tokens = tokens
	return s
}

func normalizeEmail(email string) string {
	return strings.ToLower(email)
}

// Register создает пользователя и выпускает для него access токен.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.Register"
	email = normalizeEmail(email)

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return "", apperr.ErrDuplicateEmail
	case !errors.Is(err, repository.ErrUserNotFound):
		return "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := s.hasher.Hash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.Create(ctx, email, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return "", apperr.ErrDuplicateEmail
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.Issue(user.ID, jwt.Access, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, events.UserRegistered, user)
	return token, nil
}

// Login проверяет пароль пользователя и выпускает access токен.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.Login"
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", apperr.ErrUserNotFound
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	ok, err := s.hasher.Verify(rawPassword, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return "", apperr.ErrWrongPassword
	}

	token, err := s.jwtMaker.Issue(user.ID, jwt.Access, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, events.UserLoggedIn, user)
	return token, nil
}

// Authenticate проверяет access токен и возвращает его владельца.
// Пустой токен считается отсутствующим.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "services.Authenticate"
	if token == "" {
		return nil, apperr.ErrNotAuthenticated
	}

	subject, ok := s.verify(ctx, token)
	if !ok {
		return nil, apperr.ErrInvalidToken
	}

	// Владелец токена всегда читается из хранилища: аккаунт мог быть удален.
	user, err := s.users.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (s *AuthService) verify(ctx context.Context, token string) (string, bool) {
	if s.tokens != nil {
		if subject, ok := s.tokens.Subject(ctx, token); ok {
			return subject, true
		}
	}
	subject, ok := s.jwtMaker.Verify(token, jwt.Access)
	if ok && s.tokens != nil {
		s.tokens.Remember(ctx, token, subject)
	}
	return subject, ok
}

func (s *AuthService) publish(ctx context.Context, kind string, user *models.User) {
	s.events.Publish(ctx, events.Event{
		Type:       kind,
		UserID:     user.ID,
		Email:      user.Email,
		OccurredAt: s.now().UTC(),
	})
}
