package config

import (
	"time"

	"go.uber.org/zap/zapcore"
)

type Option func(cfg *Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(cfg *Config) {
		cfg.Log.LogLevel = level
	}
}

func WithStorage(storage Storage) Option {
	return func(cfg *Config) {
		cfg.Rental.Storage = storage
	}
}

func WithTxTimeout(d time.Duration) Option {
	return func(cfg *Config) {
		cfg.Rental.TxTimeout = d
	}
}

func WithHTTPPort(port string) Option {
	return func(cfg *Config) {
		cfg.Server.Port = port
	}
}
