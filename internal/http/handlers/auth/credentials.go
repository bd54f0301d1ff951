// Package auth содержит общий для обработчиков регистрации и входа разбор тела запроса.
package auth

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/user-auth-service/internal/http/response"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/sl"
)

// MaxBodyBytes предел размера тела запроса.
const MaxBodyBytes = 10 << 10

// Credentials входные данные регистрации и входа.
type Credentials struct {
	Email    string `json:"email" validate:"required" example:"user@example.com"`
	Password string `json:"password" validate:"required" example:"secret"`
}

// NewValidator создает валидатор, который называет поля по json тегам.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// DecodeCredentials читает и валидирует тело запроса.
// Пустое тело разбирается как {} и не проходит валидацию по обоим полям.
// При ошибке сам пишет ответ 400 и возвращает false.
func DecodeCredentials(w http.ResponseWriter, r *http.Request, v *validator.Validate, log *slog.Logger) (Credentials, bool) {
	var req Credentials
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(http.StatusBadRequest, "invalid request body"))
		return Credentials{}, false
	}
	log.Info("request body decoded", slog.String("email", req.Email))

	if err := v.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		var verrs validator.ValidationErrors
		if ve, ok := err.(validator.ValidationErrors); ok {
			verrs = ve
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(verrs))
		return Credentials{}, false
	}

	return req, true
}
