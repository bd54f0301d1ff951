// Package repository реализует хранилище учётных записей на PostgreSQL.
// Предоставляет поиск пользователя по id и email, создание и мягкое
// удаление записей. Уникальность email гарантируется ограничением таблицы.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	// ErrUserNotFound пользователь не найден или помечен удалённым.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists пользователь с таким email уже существует.
	ErrUserExists = errors.New("user already exists")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и описание схемы таблицы пользователей.
type Storage struct {
	DB     *sql.DB
	schema Schema
	q      queries
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string, schema Schema) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return NewWithDB(db, schema)
}

// NewWithDB создаёт Storage поверх уже открытого соединения.
func NewWithDB(db *sql.DB, schema Schema) (*Storage, error) {
	const op = "storage.NewWithDB"
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{
		DB:     db,
		schema: schema,
		q:      buildQueries(schema),
	}, nil
}

// Close закрывает соединение с базой данных.
func (s *Storage) Close() error {
	return s.DB.Close()
}

// Ping проверяет доступность базы данных.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "storage.Ping"
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
