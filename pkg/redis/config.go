package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                              // Empty disables Redis lookups. Format: "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // Connection attempts before giving up.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`   // Delay between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"` // Overall deadline for Connect.
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"fieldcheck:"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
