package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string   `env:"HTTP_PORT" envDefault:"4000"`
	AppEnv      string   `env:"APP_ENV" envDefault:"development"`
	DatabaseURL string   `env:"DATABASE_URL,required"`
	BaseURL     string   `env:"BASE_URL" envDefault:"http://localhost:4000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	JWTSecret       string `env:"JWT_SECRET,required"`
	JWTExpiresHours int    `env:"JWT_EXPIRES_HOURS" envDefault:"24"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	VerificationTokenSize       int `env:"VERIFICATION_TOKEN_SIZE" envDefault:"32"`
	VerificationTokenTTLMinutes int `env:"VERIFICATION_TOKEN_TTL_MINUTES" envDefault:"15"`
	ResetTokenSize              int `env:"RESET_TOKEN_SIZE" envDefault:"32"`
	ResetTokenTTLMinutes        int `env:"RESET_TOKEN_TTL_MINUTES" envDefault:"15"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// IsProduction indica si el servicio corre en producción (cookie Secure).
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{cfg.BaseURL}
	}
	return &cfg, nil
}
