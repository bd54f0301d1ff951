// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"APP_ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"DATABASE_URL" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	CORSOrigin              string `yaml:"cors_origin" env:"CORS_ORIGIN" env-default:"http://localhost:3000"`
	HTTPServer              `yaml:"http_server"`
	Tokens                  `yaml:"tokens"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	RandomUser              `yaml:"random_user"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8000"`
	TimeoutHTTP time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// Tokens ключи RS256 и время жизни токенов в минутах.
// Ключи задаются PEM или base64 от PEM.
type Tokens struct {
	AccessPrivateKey      string `yaml:"access_token_private_key" env:"JWT_ACCESS_TOKEN_PRIVATE_KEY"`
	AccessPublicKey       string `yaml:"access_token_public_key" env:"JWT_ACCESS_TOKEN_PUBLIC_KEY"`
	RefreshPrivateKey     string `yaml:"refresh_token_private_key" env:"JWT_REFRESH_TOKEN_PRIVATE_KEY"`
	RefreshPublicKey      string `yaml:"refresh_token_public_key" env:"JWT_REFRESH_TOKEN_PUBLIC_KEY"`
	AccessTokenExpiresIn  int    `yaml:"access_token_expires_in" env:"ACCESS_TOKEN_EXPIRES_IN" env-default:"15"`
	RefreshTokenExpiresIn int    `yaml:"refresh_token_expires_in" env:"REFRESH_TOKEN_EXPIRES_IN" env-default:"60"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш проверенных токенов. CacheTTL верхняя граница
// жизни записи, запись никогда не переживает сам токен.
type RedisConnection struct {
	AddressRedis string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user" env:"REDIS_USER"`
	DB           int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	MaxRetries   int           `yaml:"max_retries" env:"REDIS_MAX_RETRIES" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env:"REDIS_DIAL_TIMEOUT" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeout" env:"REDIS_TIMEOUT" env-default:"3s"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env:"REDIS_CACHE_TTL" env-default:"5m"`
}

// RabbitMQ настройки публикации событий аутентификации.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL      string `yaml:"url" env:"RABBITMQ_URL"`
	Exchange string `yaml:"exchange" env:"RABBITMQ_EXCHANGE" env-default:"auth.events"`
}

// RandomUser настройки внешнего API случайных пользователей.
type RandomUser struct {
	URL     string        `yaml:"url" env:"RANDOM_USER_URL" env-default:"https://randomuser.me/api/"`
	Timeout time.Duration `yaml:"timeout" env:"RANDOM_USER_TIMEOUT" env-default:"5s"`
}

// AccessTTL время жизни access токена.
func (t Tokens) AccessTTL() time.Duration {
	return time.Duration(t.AccessTokenExpiresIn) * time.Minute
}

// RefreshTTL время жизни refresh токена.
func (t Tokens) RefreshTTL() time.Duration {
	return time.Duration(t.RefreshTokenExpiresIn) * time.Minute
}

// Load читает конфиг из path, переменные окружения перекрывают значения файла.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if cfg.AccessPrivateKey == "" || cfg.AccessPublicKey == "" {
		return nil, fmt.Errorf("%s: access token keys are not set", op)
	}
	if cfg.AccessTokenExpiresIn <= 0 {
		return nil, fmt.Errorf("%s: access_token_expires_in must be positive", op)
	}
	return &cfg, nil
}

// MustLoad загружает .env при наличии и конфиг из CONFIG_PATH, завершает процесс при ошибке
func MustLoad() *Config {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// String печатает конфиг без секретов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"CORSOrigin: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Tokens:\n"+
			"  AccessTokenExpiresIn: %d\n"+
			"  RefreshTokenExpiresIn: %d\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  Exchange: %s\n"+
			"RandomUser:\n"+
			"  URL: %s\n"+
			"  Timeout: %s\n",
		c.Env,
		c.MigrationsPath,
		c.CORSOrigin,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AccessTokenExpiresIn,
		c.RefreshTokenExpiresIn,
		c.AddressRedis,
		c.DB,
		c.Exchange,
		c.RandomUser.URL,
		c.RandomUser.Timeout,
	)
}
