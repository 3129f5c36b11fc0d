package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	JWTSecret     string
	TokenTTL      time.Duration
	EventCodeSalt string
	VoterKeySalt  string
	AdminUsername string
	AdminPassword string
	BcryptCost    int
}

// ParseFlags validates flags and sets port number
// Precedence: CLI flags, then environment, then an optional .env file
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Missing .env is fine; existing env vars are never overridden
	_ = godotenv.Load()

	fs := flag.NewFlagSet("request-queue", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 0, "DJ token lifetime (default 24h)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "DJ token signing secret (prefer env)")
	fs.StringVar(&cfg.EventCodeSalt, "code-salt", "", "Event code salt (prefer env)")
	fs.StringVar(&cfg.VoterKeySalt, "voter-salt", "", "Voter identity salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.TokenTTL == 0 {
		if ttlStr := os.Getenv("TOKEN_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid TOKEN_TTL env variable")
			}
			cfg.TokenTTL = ttl
		} else {
			cfg.TokenTTL = 24 * time.Hour
		}
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.EventCodeSalt == "" {
		cfg.EventCodeSalt = os.Getenv("EVENT_CODE_SALT")
	}
	if cfg.EventCodeSalt == "" {
		return Config{}, errors.New("EVENT_CODE_SALT required")
	}

	if cfg.VoterKeySalt == "" {
		cfg.VoterKeySalt = os.Getenv("VOTER_KEY_SALT")
	}
	if cfg.VoterKeySalt == "" {
		cfg.VoterKeySalt = cfg.EventCodeSalt
	}

	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		cost, err := strconv.Atoi(costStr)
		if err != nil || cost < 4 || cost > 31 {
			return Config{}, errors.New("BCRYPT_COST must be between 4 and 31")
		}
		cfg.BcryptCost = cost
	}

	// Optional superadmin seed; both or neither
	cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		return Config{}, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}
