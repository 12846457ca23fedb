package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Design payment defaults, used when a member has no rate override row.
	DefaultArtRate   decimal.Decimal
	DefaultVideoRate decimal.Decimal

	// Attachment uploads.
	UploadDir           string
	MaxUploadBytes      int64
	AllowedContentTypes []string

	FrontendBaseURL string `mapstructure:"FRONTEND_BASE_URL"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "agency-ops-backend")
	viper.SetDefault("DEFAULT_ART_RATE", "10.00")
	viper.SetDefault("DEFAULT_VIDEO_RATE", "20.00")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("MAX_UPLOAD_BYTES", int64(50*1024*1024))
	viper.SetDefault("ALLOWED_CONTENT_TYPES", "image/jpeg,image/png,image/gif,image/webp,video/mp4,video/quicktime,application/pdf")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 12
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "agency-ops-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", jwtIssuer)
	}

	artRate, err := decimal.NewFromString(viper.GetString("DEFAULT_ART_RATE"))
	if err != nil {
		artRate = decimal.RequireFromString("10.00")
		log.Printf("Warning: Invalid DEFAULT_ART_RATE. Defaulting to %s.\n", artRate.StringFixed(2))
	}
	videoRate, err := decimal.NewFromString(viper.GetString("DEFAULT_VIDEO_RATE"))
	if err != nil {
		videoRate = decimal.RequireFromString("20.00")
		log.Printf("Warning: Invalid DEFAULT_VIDEO_RATE. Defaulting to %s.\n", videoRate.StringFixed(2))
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.DefaultArtRate = artRate
	cfg.DefaultVideoRate = videoRate
	cfg.UploadDir = viper.GetString("UPLOAD_DIR")
	cfg.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")
	cfg.AllowedContentTypes = strings.Split(viper.GetString("ALLOWED_CONTENT_TYPES"), ",")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}
