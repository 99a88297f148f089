package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option tunes how a configuration struct is loaded.
type Option func(*options)

type options struct {
	prefix   string
	envFiles []string
	environ  map[string]string
}

// WithPrefix reads every variable as prefix+name, so FIELDCHECK_ can namespace a
// shared environment.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles loads the given files before parsing. Unlike the default .env file,
// missing explicit files are an error.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = append(o.envFiles, files...) }
}

// WithEnviron parses from vars instead of the process environment. Used in tests.
func WithEnviron(vars map[string]string) Option {
	return func(o *options) { o.environ = vars }
}

// Load parses environment variables into a new T according to its env tags.
// The .env file in the working directory is loaded first when it exists; values
// already set in the environment win.
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
//	}
//
//	cfg, err := config.Load[RedisConfig]()
func Load[T any](opts ...Option) (T, error) {
	var cfg T
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.environ == nil {
		if len(o.envFiles) > 0 {
			if err := godotenv.Load(o.envFiles...); err != nil {
				return cfg, errors.Join(ErrLoadingEnvFile, err)
			}
		} else if _, err := os.Stat(".env"); err == nil {
			_ = godotenv.Load()
		}
	}

	envOpts := env.Options{Prefix: o.prefix}
	if o.environ != nil {
		envOpts.Environment = o.environ
	}
	if err := env.ParseWithOptions(&cfg, envOpts); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics on error. Use it for configuration the
// process cannot start without.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
