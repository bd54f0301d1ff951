// Package models содержит доменную модель пользователя системы:
// идентификатор, email, хэш пароля и служебные временные метки.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// RecordMeta общие поля любой записи хранилища.
// Встраивается в сущности вместо общего базового класса.
type RecordMeta struct {
	ID        string     `json:"id"`         // Уникальный идентификатор записи (UUID)
	CreatedAt time.Time  `json:"created_at"` // Дата создания
	UpdatedAt time.Time  `json:"updated_at"` // Дата последнего изменения
	DeletedAt *time.Time `json:"-"`          // Дата мягкого удаления, nil для живых записей
}

// IsDeleted сообщает, помечена ли запись как удалённая.
func (m RecordMeta) IsDeleted() bool {
	return m.DeletedAt != nil
}

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash никогда не сериализуется в JSON, поэтому User можно
// отдавать клиенту как есть.
type User struct {
	RecordMeta
	Email        string `json:"email"` // Электронная почта в нижнем регистре, уникальна
	PasswordHash string `json:"-"`     // bcrypt-хэш пароля
}
