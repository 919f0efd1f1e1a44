// Package config loads runtime settings from environment variables.
package config

import (
	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds everything the API server needs at boot. Values come from the
// environment (a .env file is loaded by main before this runs).
type Config struct {
	Addr        string `env:"ADDR" env-default:":8080"`
	DatabaseDSN string `env:"DATABASE_DSN" env-default:"host=localhost user=postgres password=password dbname=jobtrackr port=5432 sslmode=disable"`

	// JWTSecret signs access tokens (HS256). The default is for local dev only.
	JWTSecret      string `env:"JWT_SECRET" env-default:"dev-secret"`
	TokenTTLHours  int    `env:"TOKEN_TTL_HOURS" env-default:"72"`
	GeminiAPIKey   string `env:"GEMINI_API_KEY"`
	GeminiModel    string `env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
	S3AccessKey    string `env:"S3_ACCESS_KEY"`
	S3SecretKey    string `env:"S3_SECRET_KEY"`
	S3Bucket       string `env:"S3_BUCKET" env-default:"resumes"`
	S3Region       string `env:"S3_REGION" env-default:"us-east-1"`
	S3BaseEndpoint string `env:"S3_BASE_ENDPOINT"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
