package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Zoho     ZohoConfig
	Vision   VisionConfig
	Auth     AuthConfig
	Uploads  UploadsConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ZohoConfig holds the OAuth client registration and the Books data center.
// DC selects the accounts/API hosts: com, eu, in, com.au or jp.
type ZohoConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       string
	DC           string
}

// VisionConfig controls OCR engine selection. When Enabled is false the
// server uses the naive stub engine and never calls out.
type VisionConfig struct {
	Enabled         bool
	CredentialsFile string
	Timeout         time.Duration
}

type AuthConfig struct {
	JWTSecret            string
	Expiration           time.Duration
	OperatorUsername     string
	OperatorPasswordHash string
}

type UploadsConfig struct {
	Dir string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env is fine: environment variables are used directly (Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	visionTimeout, _ := strconv.Atoi(getEnv("VISION_TIMEOUT", "30"))

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ocr_journal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Zoho: ZohoConfig{
			ClientID:     getEnv("ZOHO_CLIENT_ID", ""),
			ClientSecret: getEnv("ZOHO_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("ZOHO_REDIRECT_URI", "http://localhost:8080/oauth/zoho/callback"),
			Scopes:       getEnv("ZOHO_SCOPES", "ZohoBooks.fullaccess.all"),
			DC:           getEnv("ZOHO_DC", "com"),
		},
		Vision: VisionConfig{
			Enabled:         getEnv("USE_GCVISION", "0") == "1",
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			Timeout:         time.Duration(visionTimeout) * time.Second,
		},
		Auth: AuthConfig{
			JWTSecret:            getEnv("JWT_SECRET_KEY", "change_me"),
			Expiration:           time.Duration(jwtExp) * time.Hour,
			OperatorUsername:     getEnv("OPERATOR_USERNAME", "operator"),
			OperatorPasswordHash: getEnv("OPERATOR_PASSWORD_HASH", ""),
		},
		Uploads: UploadsConfig{
			Dir: getEnv("UPLOADS_DIR", "uploads"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
