package repository

import (
	"errors"
	"fmt"
	"regexp"
)

// Schema описывает таблицу пользователей: имя и колонки.
// Передаётся в хранилище при создании вместо разметки полей модели.
type Schema struct {
	Table           string
	IDColumn        string
	EmailColumn     string // уникальная колонка
	PasswordColumn  string
	CreatedAtColumn string
	UpdatedAtColumn string
	DeletedAtColumn string
}

// DefaultSchema соответствует миграции 000001_create_users.
var DefaultSchema = Schema{
	Table:           "users",
	IDColumn:        "id",
	EmailColumn:     "email",
	PasswordColumn:  "password",
	CreatedAtColumn: "created_at",
	UpdatedAtColumn: "updated_at",
	DeletedAtColumn: "deleted_at",
}

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Validate проверяет, что все имена являются простыми SQL идентификаторами.
func (s Schema) Validate() error {
	names := []string{
		s.Table, s.IDColumn, s.EmailColumn, s.PasswordColumn,
		s.CreatedAtColumn, s.UpdatedAtColumn, s.DeletedAtColumn,
	}
	for _, n := range names {
		if n == "" {
			return errors.New("schema: empty identifier")
		}
		if !identifier.MatchString(n) {
			return fmt.Errorf("schema: invalid identifier %q", n)
		}
	}
	return nil
}

type queries struct {
	selectByEmail string
	selectByID    string
	insert        string
	softDelete    string
}

func buildQueries(s Schema) queries {
	columns := fmt.Sprintf("%s, %s, %s, %s, %s, %s",
		s.IDColumn, s.EmailColumn, s.PasswordColumn,
		s.CreatedAtColumn, s.UpdatedAtColumn, s.DeletedAtColumn)

	return queries{
		selectByEmail: fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
			columns, s.Table, s.EmailColumn, s.DeletedAtColumn),
		selectByID: fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
			columns, s.Table, s.IDColumn, s.DeletedAtColumn),
		insert: fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, $3, $4, $5)`,
			s.Table, s.IDColumn, s.EmailColumn, s.PasswordColumn,
			s.CreatedAtColumn, s.UpdatedAtColumn),
		softDelete: fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $1 WHERE %s = $2 AND %s IS NULL`,
			s.Table, s.DeletedAtColumn, s.UpdatedAtColumn, s.IDColumn, s.DeletedAtColumn),
	}
}
