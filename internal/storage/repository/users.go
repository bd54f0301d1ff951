package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/user-auth-service/internal/models"
)

// FindByEmail возвращает пользователя по email. Сравнение точное,
// вызывающий код приводит email к нижнему регистру сам.
func (s *Storage) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.FindByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	u, err := scanUser(s.DB.QueryRowContext(ctx, s.q.selectByEmail, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindByID возвращает пользователя по его UUID.
func (s *Storage) FindByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.FindByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	u, err := scanUser(s.DB.QueryRowContext(ctx, s.q.selectByID, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Create сохраняет нового пользователя. Если email занят, возвращает
// ErrUserExists: окончательное решение об уникальности принимает база.
func (s *Storage) Create(ctx context.Context, email, passwordHash string) (*models.User, error) {
	const op = "storage.Create"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	now := time.Now().UTC()
	u := &models.User{
		RecordMeta: models.RecordMeta{
			ID:        uuid.NewString(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        email,
		PasswordHash: passwordHash,
	}

	if _, err := s.DB.ExecContext(ctx, s.q.insert,
		u.ID, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// Delete помечает пользователя удалённым. После этого он не находится
// обычными запросами. HTTP API удаление не предоставляет: метод нужен тестам
// сценария "токен выдан, аккаунт удалён", в эксплуатации строка помечается
// удалённой прямо в базе.
func (s *Storage) Delete(ctx context.Context, id string) error {
	const op = "storage.Delete"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	res, err := s.DB.ExecContext(ctx, s.q.softDelete, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var deletedAt sql.NullTime
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash,
		&u.CreatedAt, &u.UpdatedAt, &deletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if deletedAt.Valid {
		u.DeletedAt = &deletedAt.Time
	}
	return u, nil
}
