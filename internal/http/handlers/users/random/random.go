// Package random проксирует запрос случайного пользователя во внешний API.
package random

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-auth-service/internal/http/response"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/apperr"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/sl"
)

// Provider источник случайных пользователей.
type Provider interface {
	Random(ctx context.Context) (json.RawMessage, error)
}

// Handler обрабатывает GET /api/users/random.
type Handler struct {
	log      *slog.Logger
	provider Provider
}

// New создает Handler.
func New(log *slog.Logger, provider Provider) *Handler {
	return &Handler{log: log, provider: provider}
}

// ServeHTTP godoc
// @Summary Случайный пользователь
// @Description Возвращает первого пользователя из ответа randomuser.me.
// @Tags Users
// @Produce  json
// @Success 200 {object} response.UserResponse
// @Failure 502 {object} response.ErrorResponse
// @Router /api/users/random [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.random"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, err := h.provider.Random(r.Context())
	if err != nil {
		log.Error("random user request failed", sl.Err(err))
		response.RenderError(w, r, apperr.Wrap(apperr.ExternalService, "Random user service is unavailable", err))
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.User(user))
}
