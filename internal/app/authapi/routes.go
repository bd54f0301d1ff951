// Package authapi собирает HTTP сервер сервиса аутентификации.
package authapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/user-auth-service/docs"
	"github.com/magabrotheeeer/user-auth-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/user-auth-service/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/user-auth-service/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/user-auth-service/internal/http/handlers/users/random"
	"github.com/magabrotheeeer/user-auth-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/user-auth-service/internal/http/response"
	"github.com/magabrotheeeer/user-auth-service/internal/models"
)

// AuthService все, что нужно маршрутам от сервиса аутентификации.
type AuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// Deps зависимости маршрутов.
type Deps struct {
	Logger     *slog.Logger
	Auth       AuthService
	RandomUser random.Provider
	Registry   *prometheus.Registry
	CORSOrigin string
}

// NewRouter регистрирует все маршруты приложения.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	metrics := middlewarectx.NewMetrics(d.Registry)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   []string{d.CORSOrigin},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}),
		metrics.Middleware,
	)

	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", register.New(d.Logger, d.Auth).ServeHTTP)
		r.Post("/login", login.New(d.Logger, d.Auth).ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Authenticate(d.Auth, d.Logger))
			r.Get("/profile", profile.New(d.Logger).ServeHTTP)
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/random", random.New(d.Logger, d.RandomUser).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}

// routeNotFound отвечает 404 для любого неизвестного маршрута или метода.
func routeNotFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, response.Error(http.StatusNotFound, fmt.Sprintf("Route %s not found", r.URL.RequestURI())))
}
