package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Identity providers accepted by IDENTITY_PROVIDER.
const (
	IdentityProviderLocal    = "local"
	IdentityProviderFirebase = "firebase"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	MigrationsPath    string
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	FrontendBaseURL   string

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Identity
	IdentityProvider string
	StoreProjectID   string
	StoreAPIKey      string

	// Asset host (client side photo uploads)
	AssetHostPublicKey   string
	AssetHostURLEndpoint string
	AssetHostPrivateKey  string

	RedisURL      string
	PosthogAPIKey string

	// Issuing
	SequenceFloor        int64
	TicketQRFormat       string
	TicketPayeeName      string
	TicketPaymentAccount string
	DefaultCompany       string
	DefaultAmount        string
	Location             *time.Location
	PrintReturnURL       string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "kontrollavgift")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("IDENTITY_PROVIDER", IdentityProviderLocal)
	viper.SetDefault("STORE_PROJECT_ID", "")
	viper.SetDefault("STORE_API_KEY", "")
	viper.SetDefault("ASSET_HOST_PUBLIC_KEY", "")
	viper.SetDefault("ASSET_HOST_URL_ENDPOINT", "")
	viper.SetDefault("ASSET_HOST_PRIVATE_KEY", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("SEQUENCE_FLOOR", 10000)
	viper.SetDefault("TICKET_QR_FORMAT", "structured")
	viper.SetDefault("TICKET_PAYEE_NAME", "")
	viper.SetDefault("TICKET_PAYMENT_ACCOUNT", "")
	viper.SetDefault("DEFAULT_COMPANY", "Säby Kulle Backe ekonomisk förening")
	viper.SetDefault("DEFAULT_AMOUNT", "700")
	viper.SetDefault("TIMEZONE", "Europe/Stockholm")
	viper.SetDefault("PRINT_RETURN_URL", "")

	// Environment variables override defaults and .env values.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	// Load JWT Expiry Duration (e.g., "60m", "12h")
	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil || jwtExpiryDuration <= 0 {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
	}

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURL == "" {
		log.Println("Warning: Google OAuth settings incomplete. Google sign-in will not function.")
	}

	cfg.IdentityProvider = strings.ToLower(viper.GetString("IDENTITY_PROVIDER"))
	if cfg.IdentityProvider != IdentityProviderLocal && cfg.IdentityProvider != IdentityProviderFirebase {
		log.Printf("Warning: Unknown IDENTITY_PROVIDER ('%s'). Defaulting to %s.\n", cfg.IdentityProvider, IdentityProviderLocal)
		cfg.IdentityProvider = IdentityProviderLocal
	}
	cfg.StoreProjectID = viper.GetString("STORE_PROJECT_ID")
	cfg.StoreAPIKey = viper.GetString("STORE_API_KEY")
	if cfg.IdentityProvider == IdentityProviderFirebase && cfg.StoreAPIKey == "" {
		log.Println("Warning: STORE_API_KEY not set. Firebase password sign-in will fail.")
	}

	cfg.AssetHostPublicKey = viper.GetString("ASSET_HOST_PUBLIC_KEY")
	cfg.AssetHostURLEndpoint = viper.GetString("ASSET_HOST_URL_ENDPOINT")
	cfg.AssetHostPrivateKey = viper.GetString("ASSET_HOST_PRIVATE_KEY")
	if cfg.AssetHostPrivateKey == "" {
		log.Println("Warning: ASSET_HOST_PRIVATE_KEY not set. Photo uploads are disabled.")
	}

	cfg.SequenceFloor = viper.GetInt64("SEQUENCE_FLOOR")
	if cfg.SequenceFloor < 0 {
		log.Printf("Warning: SEQUENCE_FLOOR must not be negative. Defaulting to 10000.\n")
		cfg.SequenceFloor = 10000
	}

	tz := viper.GetString("TIMEZONE")
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Invalid TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		cfg.Location = time.UTC
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.TicketQRFormat = viper.GetString("TICKET_QR_FORMAT")
	cfg.TicketPayeeName = viper.GetString("TICKET_PAYEE_NAME")
	cfg.TicketPaymentAccount = viper.GetString("TICKET_PAYMENT_ACCOUNT")
	cfg.DefaultCompany = viper.GetString("DEFAULT_COMPANY")
	cfg.DefaultAmount = viper.GetString("DEFAULT_AMOUNT")
	cfg.PrintReturnURL = viper.GetString("PRINT_RETURN_URL")
	if cfg.PrintReturnURL == "" {
		cfg.PrintReturnURL = strings.TrimRight(cfg.FrontendBaseURL, "/") + "/"
	}

	return cfg, nil
}
