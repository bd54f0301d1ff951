package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrUnknownKind возвращается при выпуске токена вида без настроенного ключа.
	ErrUnknownKind = errors.New("no signing key for token kind")
	// ErrEmptySubject возвращается при попытке выпустить токен без subject.
	ErrEmptySubject = errors.New("empty token subject")
)

// Claims полезная нагрузка токена: sub, iat, exp.
type Claims struct {
	jwt.RegisteredClaims
}

// Issue создает JWT токен для subject и подписывает закрытым ключом вида kind.
//
// Время истечения равно текущему времени плюс ttl.
func (j *MakerImpl) Issue(subject string, kind Kind, ttl time.Duration) (string, error) {
	const op = "jwt.Issue"
	if subject == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptySubject)
	}
	pair, ok := j.keys[kind]
	if !ok || pair.Private == nil {
		return "", fmt.Errorf("%s: %w: %s", op, ErrUnknownKind, kind)
	}

	now := j.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(pair.Private)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// Verify парсит токен, проверяет подпись открытым ключом вида kind и срок действия.
func (j *MakerImpl) Verify(tokenStr string, kind Kind) (string, bool) {
	pair, ok := j.keys[kind]
	if !ok || pair.Public == nil || tokenStr == "" {
		return "", false
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{},
		func(_ *jwt.Token) (any, error) {
			return pair.Public, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return "", false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}

// ExpiresAt возвращает exp токена без проверки подписи.
// Вызывать только для токена, уже прошедшего Verify.
func ExpiresAt(tokenStr string) (time.Time, bool) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenStr, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
