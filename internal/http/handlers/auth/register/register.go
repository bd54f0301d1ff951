// Package register реализует HTTP-обработчик регистрации пользователя.
package register

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/user-auth-service/internal/http/handlers/auth"
	"github.com/magabrotheeeer/user-auth-service/internal/http/response"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/sl"
)

// Service регистрирует пользователя и возвращает access токен.
type Service interface {
	Register(ctx context.Context, email, password string) (string, error)
}

// Handler обрабатывает POST /api/auth/register.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: auth.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает пользователя и возвращает access токен. Email приводится к нижнему регистру.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body auth.Credentials true "Email и пароль"
// @Success 201 {object} response.TokenResponse
// @Failure 400 {object} response.ValidationErrorResponse "Ошибка валидации или email занят"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req, ok := auth.DecodeCredentials(w, r, h.validate, log)
	if !ok {
		return
	}

	token, err := h.service.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("registration failed", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("user registered")
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.Token(token))
}
