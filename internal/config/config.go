package config

import "os"

type Config struct {
	HTTP      HTTPConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Postgres  PostgresConfig
}

type HTTPConfig struct {
	Port        string
	CORSOrigins string
}

type AuthConfig struct {
	JWTSecret     string
	JWTTTLHours   string
	SweepInterval string
}

type RateLimitConfig struct {
	SignupPerHour string
	LoginPerHour  string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

func Load() Config {
	return Config{
		HTTP: HTTPConfig{
			Port:        getenv("PORT", "8080"),
			CORSOrigins: getenv("CORS_ORIGINS", "*"),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			JWTTTLHours:   getenv("JWT_TTL_HOURS", "24"),
			SweepInterval: getenv("REVOKED_SWEEP_INTERVAL", "1h"),
		},
		RateLimit: RateLimitConfig{
			SignupPerHour: getenv("SIGNUP_RATE_PER_HOUR", "10"),
			LoginPerHour:  getenv("LOGIN_RATE_PER_HOUR", "10"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
