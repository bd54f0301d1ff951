// Package login реализует HTTP-обработчик входа пользователя.
//
// Тело запроса декодируется и валидируется, затем учетные данные проверяются
// сервисом аутентификации. При успехе возвращается access токен.
package login

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

// Handler обрабатывает HTTP-запросы для входа.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис аутентификации
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает вход пользователя по email и паролю.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: auth.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль, возвращает access токен.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body auth.Credentials true "Учетные данные пользователя"
// @Success 200 {object} response.TokenResponse
// @Failure 400 {object} response.ErrorResponse "Неверный пароль или некорректное тело"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/auth/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	req, ok := auth.DecodeCredentials(w, r, h.validate, log)
	if !ok {
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error("login failed", sl.Err(err))
		response.RenderError(w, r, err)
		return
	}

	log.Info("login success")
	render.Status(r, http.StatusOK)
	render.JSON(w, r, response.Token(token))
}
