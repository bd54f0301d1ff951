package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/user-auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/sl"
)

// TokenCache помнит subject уже проверенных access токенов, чтобы не проверять
// подпись RSA на каждый запрос. Запись живёт не дольше самого токена.
// Пользователь по subject всегда читается из хранилища.
type TokenCache struct {
	cache *Cache
	ttl   time.Duration
	log   *slog.Logger
	now   func() time.Time
}

// NewTokenCache создает кеш проверенных токенов. ttl верхняя граница жизни записи.
func NewTokenCache(c *Cache, ttl time.Duration, log *slog.Logger) *TokenCache {
	return &TokenCache{cache: c, ttl: ttl, log: log, now: time.Now}
}

// Сам токен в redis не хранится, только его хэш.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:" + hex.EncodeToString(sum[:])
}

// Subject возвращает subject токена, если он уже был проверен.
// Ошибка redis считается промахом.
func (t *TokenCache) Subject(ctx context.Context, token string) (string, bool) {
	const op = "cache.Subject"
	var subject string
	found, err := t.cache.Get(ctx, tokenKey(token), &subject)
	if err != nil {
		t.log.Warn("cache read failed", slog.String("op", op), sl.Err(err))
		return "", false
	}
	if !found || subject == "" {
		return "", false
	}
	return subject, true
}

// Remember сохраняет subject проверенного токена до min(ttl, exp токена).
func (t *TokenCache) Remember(ctx context.Context, token, subject string) {
	const op = "cache.Remember"
	exp, ok := jwt.ExpiresAt(token)
	if !ok {
		return
	}
	ttl := exp.Sub(t.now())
	if t.ttl < ttl {
		ttl = t.ttl
	}
	if ttl <= 0 {
		return
	}
	if err := t.cache.Set(ctx, tokenKey(token), subject, ttl); err != nil {
		t.log.Warn("cache write failed", slog.String("op", op), sl.Err(err))
	}
}
