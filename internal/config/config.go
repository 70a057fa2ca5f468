package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

const AppName = "billtracker-api"

type Config struct {
	AppPort string

	// Database
	DBUrl string

	// Photo storage
	GCSBucket string

	// Auth
	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey

	// CORS
	AllowedOrigins []string

	SeedDefaultAdmin bool
}

// LoadConfig reads everything from the environment (a local .env is
// honored when present) and fails fast on anything missing.
func LoadConfig() *Config {
	if err := godotenv.Load(); err == nil {
		utils.Logger.Info("Loaded .env file")
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		utils.Logger.Fatal("DATABASE_URL env var is missing")
	}
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		utils.Logger.Fatal("GCS_BUCKET env var is missing")
	}

	privB64 := os.Getenv("RSA_PRIVATE_KEY_BASE64")
	if privB64 == "" {
		utils.Logger.Fatal("RSA_PRIVATE_KEY_BASE64 env var is missing")
	}
	privPEM, err := base64.StdEncoding.DecodeString(privB64)
	if err != nil {
		utils.Logger.Fatal("RSA_PRIVATE_KEY_BASE64 is not valid base64")
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	origins := []string{"*"}
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}

	return &Config{
		AppPort:          appPort,
		DBUrl:            dbURL,
		GCSBucket:        bucket,
		RSAPrivateKey:    privKey,
		RSAPublicKey:     &privKey.PublicKey,
		AllowedOrigins:   origins,
		SeedDefaultAdmin: os.Getenv("SEED_DEFAULT_ADMIN") == "true",
	}
}
