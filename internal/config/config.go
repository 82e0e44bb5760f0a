package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// OpenRouter para los experimentos de eficacia de values.md.
	OpenRouterKey     string `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	SiteURL           string `env:"SITE_URL" envDefault:"http://localhost:3000"`

	JWTSecret            string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes  int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
	JWTRefreshTTLMinutes int    `env:"JWT_REFRESH_TTL_MINUTES" envDefault:"43200"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Parámetros del pipeline de agregación. Los defaults reproducen el
	// comportamiento histórico: umbral de 3 respuestas y normalización 5x5.
	MinProfileResponses int     `env:"MIN_PROFILE_RESPONSES" envDefault:"3"`
	WeightNormalization float64 `env:"WEIGHT_NORMALIZATION" envDefault:"25"`

	// TTL en horas del estado de experimentos en curso.
	ExperimentTTLHours int `env:"EXPERIMENT_TTL_HOURS" envDefault:"24"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
