// Package jwt реализует выпуск и проверку подписанных JWT токенов.
//
// Каждому виду токена (access, refresh) соответствует своя пара RSA ключей,
// поэтому токен одного вида никогда не проходит проверку как токен другого.
// MakerImpl не хранит состояния между вызовами, кроме настроенных ключей.
package jwt

import (
	"crypto/rsa"
	"time"
)

// Kind вид токена, определяет пару ключей для подписи и проверки.
type Kind string

const (
	// Access короткоживущий токен доступа.
	Access Kind = "access"
	// Refresh долгоживущий токен обновления. Ключи настраиваются,
	// но текущие сценарии его не выпускают.
	Refresh Kind = "refresh"
)

// KeyPair закрытый ключ для подписи и открытый для проверки.
type KeyPair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// Maker описывает выпуск и проверку токенов.
type Maker interface {
	// Issue выпускает токен вида kind для subject со сроком жизни ttl.
	Issue(subject string, kind Kind, ttl time.Duration) (string, error)
	// Verify возвращает subject и true для валидного токена вида kind.
	// Для любой ошибки (формат, подпись, срок, чужой ключ) возвращает "", false.
	Verify(tokenStr string, kind Kind) (string, bool)
}

// MakerImpl реализует Maker на RS256.
type MakerImpl struct {
	keys map[Kind]KeyPair
	now  func() time.Time
}

// NewJWTMaker создаёт MakerImpl с парами ключей по видам токенов.
func NewJWTMaker(keys map[Kind]KeyPair) *MakerImpl {
	copied := make(map[Kind]KeyPair, len(keys))
	for k, v := range keys {
		copied[k] = v
	}
	return &MakerImpl{
		keys: copied,
		now:  time.Now,
	}
}

// WithClock подменяет источник текущего времени.
func (j *MakerImpl) WithClock(now func() time.Time) *MakerImpl {
	j.now = now
	return j
}
