// Package config loads typed configuration from environment variables.
//
// Structs declare their variables with env tags (github.com/caarlos0/env) and
// a .env file in the working directory is loaded first when present
// (github.com/joho/godotenv):
//
//	type Config struct {
//		Addr     string `env:"HTTP_ADDR" envDefault:":8080"`
//		RedisURL string `env:"REDIS_URL"`
//	}
//
//	cfg, err := config.Load[Config](config.WithPrefix("FIELDCHECK_"))
package config
