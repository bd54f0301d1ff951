// Package profile отдает данные аутентифицированного пользователя.
package profile

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/user-auth-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-auth-service/internal/http/response"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/apperr"
)

// Handler обрабатывает GET /api/auth/profile. Должен стоять за middlewarectx.Authenticate.
type Handler struct {
	log *slog.Logger
}

// New создает Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Description Возвращает публичные поля пользователя, которому выдан токен.
// @Tags Auth
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.UserResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /api/auth/profile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.profile"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user missing in context")
		response.RenderError(w, r, apperr.ErrNotAuthenticated)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.User(user))
}
