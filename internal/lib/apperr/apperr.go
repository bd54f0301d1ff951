// Package apperr описывает классифицированные ошибки приложения.
//
// Каждая ошибка имеет вид (Kind), который однозначно отображается в HTTP
// статус; статус, в свою очередь, задаёт уровень ответа SUCCESS/FAILED/ERROR.
// Ожидаемые исходы сценариев (дубликат email, неверный пароль) возвращаются
// как обычные значения *Error, а не через панику.
package apperr

import (
	"errors"
	"net/http"
)

// Kind категория ошибки.
type Kind int

const (
	// Internal непредвиденная ошибка сервера.
	Internal Kind = iota
	// DuplicateEmail email уже зарегистрирован.
	DuplicateEmail
	// UserNotFound пользователь не найден.
	UserNotFound
	// WrongPassword пароль не совпал.
	WrongPassword
	// NotAuthenticated в запросе нет токена.
	NotAuthenticated
	// InvalidToken токен не прошёл проверку.
	InvalidToken
	// Validation тело запроса не прошло проверку.
	Validation
	// NotFound маршрут не найден.
	NotFound
	// ExternalService ошибка внешнего сервиса.
	ExternalService
)

// Статусы ответа API.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
	StatusError   = "ERROR"
)

// Error классифицированная ошибка.
type Error struct {
	Kind    Kind
	Message string // Сообщение для клиента
	Err     error  // Исходная ошибка, клиенту не показывается
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is сравнивает ошибки по виду, чтобы errors.Is(err, apperr.ErrWrongPassword)
// срабатывал и для обёрнутых копий.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// StatusCode возвращает HTTP статус для вида ошибки.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case DuplicateEmail, WrongPassword, Validation:
		return http.StatusBadRequest
	case UserNotFound, NotFound:
		return http.StatusNotFound
	case NotAuthenticated, InvalidToken:
		return http.StatusUnauthorized
	case ExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// New создаёт ошибку вида kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap создаёт ошибку вида kind поверх исходной ошибки.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Ошибки сценариев аутентификации.
var (
	ErrDuplicateEmail   = New(DuplicateEmail, "Email is already used")
	ErrUserNotFound     = New(UserNotFound, "User not found")
	ErrWrongPassword    = New(WrongPassword, "Wrong password")
	ErrNotAuthenticated = New(NotAuthenticated, "You are not logged in")
	ErrInvalidToken     = New(InvalidToken, "Invalid token or user doesn't exist")
)

// InternalMessage сообщение, которое получает клиент при ошибке сервера.
const InternalMessage = "Something went wrong"

// Classify возвращает HTTP статус и сообщение для клиента.
// Для неклассифицированных ошибок детали не раскрываются.
func Classify(err error) (int, string) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, InternalMessage
	}
	code := appErr.StatusCode()
	if code >= http.StatusInternalServerError && appErr.Kind == Internal {
		return code, InternalMessage
	}
	return code, appErr.Message
}

// StatusFor возвращает уровень ответа для HTTP статуса.
func StatusFor(code int) string {
	switch {
	case code >= 200 && code < 300:
		return StatusSuccess
	case code >= 400 && code < 500:
		return StatusFailed
	default:
		return StatusError
	}
}
