package internal

import "time"

type Config struct {
	Host             string        `env:"HOST,required=true"`
	Port             int           `env:"PORT,required=true"`
	LogLevel         string        `env:"LOG_LEVEL,required=true"`
	StatsInterval    time.Duration `env:"STATS_INTERVAL,required=true"`
	ShutdownTimeout  time.Duration `env:"SHUTDOWN_TIMEOUT,required=true"`
	MaxContentLength int           `env:"MAX_CONTENT_LENGTH,required=true"`
}
