package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	TelegramBotToken  string        `env:"TELEGRAM_BOT_TOKEN,required"`
	DBHost            string        `env:"DB_HOST,required"`
	DBPort            int           `env:"DB_PORT,default=5432"`
	DBUser            string        `env:"DB_USER,required"`
	DBPassword        string        `env:"DB_PASSWORD,required"`
	DBName            string        `env:"DB_NAME,required"`
	DBSSLMode         string        `env:"DB_SSLMODE,default=disable"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,default=10"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,default=25"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME,default=30m"`

	MarketDataBaseURL string        `env:"MARKET_DATA_BASE_URL,required"`
	MarketDataTimeout time.Duration `env:"MARKET_DATA_TIMEOUT,default=10s"`

	// EvaluateCron uses the six-field cron format with a leading seconds
	// field; the default runs one evaluation pass per minute.
	EvaluateCron        string `env:"EVALUATE_CRON,default=0 * * * * *"`
	EvaluateConcurrency int    `env:"EVALUATE_CONCURRENCY,default=4"`

	TelegramPollTimeout int    `env:"TELEGRAM_POLL_TIMEOUT,default=60"`
	LogLevel            string `env:"LOG_LEVEL,default=info"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
