package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all process-wide settings, read once at startup and
// injected from main. Nothing in here is mutated after Load.
type Config struct {
	Port         string   `env:"PORT" envDefault:"8080"`
	GinMode      string   `env:"GIN_MODE"`
	DatabaseURL  string   `env:"DATABASE_URL" envDefault:"mongodb://127.0.0.1:27017"`
	DatabaseName string   `env:"DATABASE_NAME" envDefault:"beanbuzz"`
	JWTSecret    string   `env:"JWT_SECRET_KEY" envDefault:"beanbuzz_dev_secret"`
	CORSOrigins  []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	// Mail transport for password-reset emails
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"no-reply@beanbuzz.com"`
	// LogoPath points at the logo embedded inline in reset emails; empty skips it
	LogoPath string `env:"LOGO_PATH"`

	// FrontendURL is the base used to build password-reset links
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
