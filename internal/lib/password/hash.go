// Package password реализует хеширование и проверку паролей на bcrypt.
//
// Hasher.Hash создаёт соленый bcrypt-хеш пароля для хранения в базе.
// Hasher.Verify сравнивает введённый пароль с сохранённым хешем.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost фиксированная стоимость bcrypt для хранимых паролей.
const DefaultCost = 12

// ErrInvalidHashFormat возвращается, если сохранённый хеш не является bcrypt-хешем.
var ErrInvalidHashFormat = errors.New("invalid hash format")

// Hasher хеширует пароли с заданной стоимостью bcrypt.
type Hasher struct {
	cost int
}

// NewHasher создаёт Hasher со стоимостью DefaultCost.
func NewHasher() *Hasher {
	return &Hasher{cost: DefaultCost}
}

// NewHasherWithCost создаёт Hasher с произвольной стоимостью.
//
// Нужен в основном тестам, где cost 12 слишком медленный.
func NewHasherWithCost(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash принимает пароль пользователя и возвращает его bcrypt‑хэш.
// Соль генерируется заново при каждом вызове.
func (h *Hasher) Hash(password string) (string, error) {
	const op = "password.Hash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// Verify сравнивает bcrypt‑хэш с введённым паролем.
//
// Несовпадение пароля дает обычный результат false без ошибки.
// Ошибка возвращается только для повреждённого хэша.
func (h *Hasher) Verify(password, hash string) (bool, error) {
	const op = "password.Verify"
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w: %v", op, ErrInvalidHashFormat, err)
	}
}
