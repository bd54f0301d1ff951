// Package middlewarectx содержит HTTP middleware: проверку access токена и сбор метрик.
//
// Authenticate достает токен из заголовка Authorization (Bearer) или из cookie
// access_token, проверяет его через сервис аутентификации и кладет найденного
// пользователя в контекст запроса. Ошибки отдаются в общем формате ответа.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/user-auth-service/internal/http/response"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/user-auth-service/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User ключ для аутентифицированного пользователя в контексте.
const User Key = "user"

// AccessTokenCookie имя cookie, из которой берется токен при отсутствии заголовка.
const AccessTokenCookie = "access_token"

// Authenticator описывает проверку токена и поиск его владельца.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Authenticate возвращает middleware, который пропускает дальше только запросы с валидным access токеном.
func Authenticate(auth Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, err := auth.Authenticate(r.Context(), TokenFromRequest(r))
			if err != nil {
				log.Info("request rejected", sl.Err(err))
				response.RenderError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// TokenFromRequest возвращает токен из заголовка "Authorization: Bearer <t>",
// а если заголовка нет, из cookie access_token. Пустая строка, если токена нет.
func TokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer") {
		parts := strings.Fields(header)
		if len(parts) == 2 {
			return parts[1]
		}
		return ""
	}
	if c, err := r.Cookie(AccessTokenCookie); err == nil {
		return c.Value
	}
	return ""
}

// WithUser кладет пользователя в контекст.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, User, user)
}

// UserFromContext достает пользователя, положенного Authenticate.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}
