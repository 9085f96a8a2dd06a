package internal

import "time"

type Config struct {
	Host                 string        `env:"HOST,required=true"`
	Port                 int           `env:"PORT,required=true"`
	AllowedOrigin        string        `env:"ALLOWED_ORIGIN,required=true"`
	LogLevel             string        `env:"LOG_LEVEL,required=true"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true"`
	BufferSize           int           `env:"BUFFER_SIZE,required=true"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	StoreTimeout         time.Duration `env:"STORE_TIMEOUT,required=true"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,required=true"`
	// NotifySendErrors switches the push-channel error policy from
	// "silently log" to "log and emit an error event to the sender".
	NotifySendErrors bool `env:"NOTIFY_SEND_ERRORS"`
}
