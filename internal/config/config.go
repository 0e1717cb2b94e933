// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Auth        AuthConfig
	Mongo       MongoConfig
	AWS         AWSConfig
	OpenAI      OpenAIConfig
	CORS        CORSConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

// AuthConfig points at the identity provider. Tokens are verified against
// the issuer's published keys; this service never mints tokens itself.
type AuthConfig struct {
	IssuerURL string
	Audience  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	AssetsBucket    string
	GeneratedBucket string
	TemplatesBucket string
	ReportsBucket   string
	CloudFrontURL   string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	MaxTokens      int
	Temperature    float64
	RequestTimeout int // in seconds
	MaxRetries     int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", ""),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Auth: AuthConfig{
			IssuerURL: getEnv("AUTH_ISSUER_URL", "https://securetoken.google.com/nexsy-authv1"),
			Audience:  getEnv("AUTH_AUDIENCE", "nexsy-authv1"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DATABASE", "nexsy"),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			AssetsBucket:    getEnv("AWS_ASSETS_BUCKET", "nexsy-assets"),
			GeneratedBucket: getEnv("AWS_GENERATED_BUCKET", "nexsy-generated"),
			TemplatesBucket: getEnv("AWS_TEMPLATES_BUCKET", "nexsy-templates"),
			ReportsBucket:   getEnv("AWS_REPORTS_BUCKET", "nexsy-reports"),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			MaxTokens:      getEnvAsInt("OPENAI_MAX_TOKENS", 2000),
			Temperature:    getEnvAsFloat("OPENAI_TEMPERATURE", 0.7),
			RequestTimeout: getEnvAsInt("OPENAI_REQUEST_TIMEOUT", 60),
			MaxRetries:     getEnvAsInt("OPENAI_MAX_RETRIES", 3),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.Auth.IssuerURL == "" {
			return fmt.Errorf("auth issuer URL is required in production")
		}
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo URI is required in production")
		}
	}

	if c.OpenAI.Temperature < 0 || c.OpenAI.Temperature > 2 {
		return fmt.Errorf("OpenAI temperature must be between 0 and 2")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
