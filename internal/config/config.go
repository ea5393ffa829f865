package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends for claim records.
const (
	StoreDynamoDB = "dynamodb"
	StoreBolt     = "bolt"
	StorePostgres = "postgres"
)

// Blob backends for claim notes and generated documents.
const (
	BlobS3    = "s3"
	BlobMinIO = "minio"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AWSConfig holds region and endpoint settings shared by the DynamoDB, S3 and Lambda clients.
type AWSConfig struct {
	Region string
	// EndpointURL points every client at a single endpoint, e.g. http://localstack:4566.
	EndpointURL string
	S3Bucket    string
}

// StoreConfig selects and configures the key-value store holding claims.
type StoreConfig struct {
	Backend  string
	Table    string
	BoltPath string
}

// FunctionsConfig names the remote functions and how their failures are handled.
type FunctionsConfig struct {
	SummarizerName       string
	FileGeneratorName    string
	ModelID              string
	SummaryParsePolicy   string
	FileGenerationPolicy string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost           string
	Port              string
	Timezone          string
	LogLevel          string
	RequestTimeoutSec int
	PresignTTLSec     int
	BlobBackend       string
	Store             StoreConfig
	Database          DatabaseConfig
	MinIO             MinIOConfig
	AWS               AWSConfig
	Functions         FunctionsConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:           getEnv("APP_HOST", "localhost:8080"),
		Port:              getEnv("PORT", "8080"),
		Timezone:          getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		RequestTimeoutSec: getEnvInt("REQUEST_TIMEOUT_SEC", 30),
		PresignTTLSec:     getEnvInt("PRESIGN_TTL_SEC", 900),
		BlobBackend:       strings.ToLower(getEnv("BLOB_BACKEND", BlobS3)),
		Store: StoreConfig{
			Backend:  strings.ToLower(getEnv("STORE_BACKEND", StoreDynamoDB)),
			Table:    getEnv("CLAIMS_TABLE", "claims"),
			BoltPath: getEnv("BOLT_PATH", "claims.db"),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		AWS: AWSConfig{
			Region:      getEnv("AWS_REGION", "us-east-1"),
			EndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
			S3Bucket:    getEnv("S3_BUCKET", ""),
		},
		Functions: FunctionsConfig{
			SummarizerName:       getEnv("SUMMARIZER_FUNCTION_NAME", "claims-summarizer"),
			FileGeneratorName:    getEnv("FILE_GENERATOR_FUNCTION_NAME", "claim-data-notes-generator"),
			ModelID:              getEnv("MODEL_ID", "anthropic.claude-3-sonnet-20240229-v1:0"),
			SummaryParsePolicy:   strings.ToLower(getEnv("SUMMARY_PARSE_POLICY", "sentinel")),
			FileGenerationPolicy: strings.ToLower(getEnv("FILE_GENERATION_POLICY", "propagate")),
		},
	}
}

// Location resolves the configured timezone used for claim timestamps and log lines.
// Claim timestamps carry no offset, so zones that observe daylight saving
// time are rejected.
func (c *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	if observesDST(loc, time.Now().Year()) {
		return nil, fmt.Errorf("timezone %q observes daylight saving time; use UTC or a fixed-offset zone", c.Timezone)
	}
	return loc, nil
}

// observesDST reports whether loc changes its UTC offset within year.
func observesDST(loc *time.Location, year int) bool {
	_, jan := time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Zone()
	_, jul := time.Date(year, time.July, 1, 0, 0, 0, 0, loc).Zone()
	return jan != jul
}

// RequestTimeout bounds every store, blob and function call made for one request.
func (c *AppConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// PresignTTL is the lifetime of generated-file download links.
func (c *AppConfig) PresignTTL() time.Duration {
	return time.Duration(c.PresignTTLSec) * time.Second
}

// Validate checks that the selected backends have the settings they need.
func (c *AppConfig) Validate() error {
	switch c.Store.Backend {
	case StoreDynamoDB, StorePostgres:
	case StoreBolt:
		if c.Store.BoltPath == "" {
			return fmt.Errorf("BOLT_PATH is required for the bolt store")
		}
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Store.Backend)
	}

	switch c.BlobBackend {
	case BlobS3:
		if c.AWS.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the s3 blob backend")
		}
	case BlobMinIO:
	default:
		return fmt.Errorf("unsupported BLOB_BACKEND %q", c.BlobBackend)
	}

	if c.Functions.SummarizerName == "" || c.Functions.FileGeneratorName == "" {
		return fmt.Errorf("function names are required")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
