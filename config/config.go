package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Session  SessionConfig
	Mail     MailConfig
	CORS     CORSConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Port    string
	GinMode string
	Env     string
	// BaseURL is used when building absolute links in outgoing mail.
	BaseURL string
}

type AdminConfig struct {
	// SeedPassword is used only when no admin account exists yet.
	SeedPassword string
}

type DatabaseConfig struct {
	// Full DSN. A postgres:// URL selects the postgres driver,
	// anything else is treated as a SQLite path.
	URL string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type SessionConfig struct {
	Secret string
	Name   string
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	Enabled  bool
}

type CORSConfig struct {
	AllowedOrigin string
}

// Load reads config.yaml (if present) and environment variables into a
// Config. Defaults cover local development against SQLite.
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DB_URL", "service_app.db")
	viper.SetDefault("JWT_SECRET", "change-this-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("SESSION_SECRET", "change-this-in-production")
	viper.SetDefault("SESSION_NAME", "servicepro_session")
	viper.SetDefault("MAIL_HOST", "smtp.gmail.com")
	viper.SetDefault("MAIL_PORT", 587)
	viper.SetDefault("MAIL_USERNAME", "")
	viper.SetDefault("MAIL_PASSWORD", "")
	viper.SetDefault("MAIL_DEFAULT_SENDER", "noreply@servicepro.local")
	viper.SetDefault("MAIL_ENABLED", false)
	viper.SetDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	viper.SetDefault("APP_BASE_URL", "http://localhost:8080")
	viper.SetDefault("ADMIN_SEED_PASSWORD", "admin123")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	return &Config{
		Server: ServerConfig{
			Port:    viper.GetString("PORT"),
			GinMode: viper.GetString("GIN_MODE"),
			Env:     viper.GetString("ENV"),
			BaseURL: viper.GetString("APP_BASE_URL"),
		},
		Database: DatabaseConfig{
			URL: viper.GetString("DB_URL"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Session: SessionConfig{
			Secret: viper.GetString("SESSION_SECRET"),
			Name:   viper.GetString("SESSION_NAME"),
		},
		Mail: MailConfig{
			Host:     viper.GetString("MAIL_HOST"),
			Port:     viper.GetInt("MAIL_PORT"),
			Username: viper.GetString("MAIL_USERNAME"),
			Password: viper.GetString("MAIL_PASSWORD"),
			Sender:   viper.GetString("MAIL_DEFAULT_SENDER"),
			Enabled:  viper.GetBool("MAIL_ENABLED"),
		},
		CORS: CORSConfig{
			AllowedOrigin: viper.GetString("CORS_ALLOWED_ORIGIN"),
		},
		Admin: AdminConfig{
			SeedPassword: viper.GetString("ADMIN_SEED_PASSWORD"),
		},
	}
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}
