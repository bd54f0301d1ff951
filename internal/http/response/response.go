// Package response содержит типы и функции для формирования унифицированных
// JSON‑ответов HTTP‑обработчиков. Каждый ответ несёт поле status:
// SUCCESS для 2xx, FAILED для 4xx и ERROR для 5xx.
package response

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/user-auth-service/internal/lib/apperr"
)

// TokenResponse успешный ответ с токеном доступа.
// Токен лежит в поле access_token, а не token.
type TokenResponse struct {
	Status string `json:"status" example:"SUCCESS"`
	// Access токен (RS256). Передается в Authorization: Bearer или в cookie access_token.
	AccessToken string `json:"access_token" example:"eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// UserResponse успешный ответ с данными пользователя.
type UserResponse struct {
	Status string `json:"status" example:"SUCCESS"`
	User   any    `json:"user"`
}

// ErrorResponse ответ с ошибкой и сообщением.
type ErrorResponse struct {
	Status  string `json:"status" example:"FAILED"`
	Message string `json:"message" example:"Wrong password"`
}

// ValidationErrorResponse ответ со списком ошибок валидации по полям.
type ValidationErrorResponse struct {
	Status string   `json:"status" example:"FAILED"`
	Errors []string `json:"errors"`
}

// Token возвращает успешный ответ с токеном.
func Token(token string) TokenResponse {
	return TokenResponse{
		Status:      apperr.StatusSuccess,
		AccessToken: token,
	}
}

// User возвращает успешный ответ с пользователем.
func User(user any) UserResponse {
	return UserResponse{
		Status: apperr.StatusSuccess,
		User:   user,
	}
}

// Error возвращает ответ с ошибкой; статус вычисляется по HTTP коду.
func Error(code int, msg string) ErrorResponse {
	return ErrorResponse{
		Status:  apperr.StatusFor(code),
		Message: msg,
	}
}

// ValidationError формирует ответ FAILED на основе ошибок валидации.
// Сообщения идут в порядке полей структуры запроса.
func ValidationError(errs validator.ValidationErrors) ValidationErrorResponse {
	errsMsgs := make([]string, 0, len(errs))

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return ValidationErrorResponse{
		Status: apperr.StatusFailed,
		Errors: errsMsgs,
	}
}

// RenderError классифицирует ошибку и пишет её JSON с нужным HTTP кодом.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := apperr.Classify(err)
	render.Status(r, code)
	render.JSON(w, r, Error(code, msg))
}
