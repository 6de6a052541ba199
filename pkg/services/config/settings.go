package config

import (
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerSettings are process level knobs read from the environment.
type ServerSettings struct {
	Host            string        `env:"SERVER_HOST" envDefault:"127.0.0.1"`
	Port            string        `env:"SERVER_PORT" envDefault:"3000"`
	Environment     string        `env:"APP_ENV" envDefault:"production"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ReportMaxAge    time.Duration `env:"REPORT_MAX_AGE" envDefault:"1h"`
}

func ParseServerSettings() (ServerSettings, error) {
	var s ServerSettings
	if err := env.Parse(&s); err != nil {
		return ServerSettings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

func (s ServerSettings) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}
