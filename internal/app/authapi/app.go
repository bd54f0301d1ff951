package authapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/user-auth-service/internal/cache"
	"github.com/magabrotheeeer/user-auth-service/internal/config"
	"github.com/magabrotheeeer/user-auth-service/internal/events"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/jwt"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/password"
	"github.com/magabrotheeeer/user-auth-service/internal/lib/sl"
	"github.com/magabrotheeeer/user-auth-service/internal/migrations"
	"github.com/magabrotheeeer/user-auth-service/internal/randomuser"
	services "github.com/magabrotheeeer/user-auth-service/internal/services/auth"
	"github.com/magabrotheeeer/user-auth-service/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

// App HTTP сервер со всеми подключенными ресурсами.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	cache    *cache.Cache
	amqpConn *amqp.Connection
}

// New подключается к базе, применяет миграции, поднимает опциональные redis и RabbitMQ
// и собирает сервер.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "authapi.New"
	app := &App{logger: logger}

	maker, err := newMaker(cfg.Tokens)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := repository.New(cfg.StorageConnectionString, repository.DefaultSchema)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	app.db = db
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		app.close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var publisher events.Publisher = events.Noop{}
	if cfg.RabbitMQ.URL != "" {
		conn, err := events.Connect(cfg.RabbitMQ.URL, 5, 2*time.Second)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.amqpConn = conn
		ch, err := events.SetupChannel(conn, cfg.Exchange)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = events.NewAMQPPublisher(ch, cfg.Exchange, logger)
		logger.Info("auth events enabled", slog.String("exchange", cfg.Exchange))
	}

	authService := services.NewAuthService(db, password.NewHasher(), maker, cfg.AccessTTL(), publisher)
	if cfg.AddressRedis != "" {
		c, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.cache = c
		authService.WithTokenCache(cache.NewTokenCache(c, cfg.CacheTTL, logger))
		logger.Info("token cache enabled", slog.String("address", cfg.AddressRedis))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := NewRouter(Deps{
		Logger:     logger,
		Auth:       authService,
		RandomUser: randomuser.NewClient(cfg.RandomUser.URL, cfg.RandomUser.Timeout),
		Registry:   reg,
		CORSOrigin: cfg.CORSOrigin,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// newMaker загружает ключи access и, если заданы, refresh.
func newMaker(cfg config.Tokens) (*jwt.MakerImpl, error) {
	access, err := jwt.LoadKeyPair(cfg.AccessPrivateKey, cfg.AccessPublicKey)
	if err != nil {
		return nil, fmt.Errorf("access keys: %w", err)
	}
	keys := map[jwt.Kind]jwt.KeyPair{jwt.Access: access}

	if cfg.RefreshPrivateKey != "" && cfg.RefreshPublicKey != "" {
		refresh, err := jwt.LoadKeyPair(cfg.RefreshPrivateKey, cfg.RefreshPublicKey)
		if err != nil {
			return nil, fmt.Errorf("refresh keys: %w", err)
		}
		keys[jwt.Refresh] = refresh
	}
	return jwt.NewJWTMaker(keys), nil
}

// Run запускает сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", sl.Err(err))
		}
	}
}
