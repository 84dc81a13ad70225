// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Document      DocumentConfig          `mapstructure:"document"`
	Storage       StorageConfig           `mapstructure:"storage"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Cache         CacheConfig             `mapstructure:"cache"`
	Server        ServerConfig            `mapstructure:"server"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// RedisConfig is optional; an empty address disables the application cache.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// DocumentConfig drives the application document generator.
type DocumentConfig struct {
	BaseURI      string            `mapstructure:"base_uri"`
	TaxRate      string            `mapstructure:"tax_rate"`
	SupportEmail string            `mapstructure:"support_email"`
	Signature    SignatureConfig   `mapstructure:"signature"`
	Templates    map[string]string `mapstructure:"templates"`
	Header       string            `mapstructure:"header"`
	FetchTimeout int               `mapstructure:"fetch_timeout"` // milliseconds
	PDF          PDFConfig         `mapstructure:"pdf"`
}

// PDFConfig is the page layout of generated documents. Empty values keep the
// converter defaults (A4, Arial 11pt).
type PDFConfig struct {
	PageSize   string  `mapstructure:"page_size"`
	FontFamily string  `mapstructure:"font_family"`
	FontSize   float64 `mapstructure:"font_size"`
}

type SignatureConfig struct {
	Text  string `mapstructure:"text"`
	Image string `mapstructure:"image"`
}

// StorageConfig holds the archive settings for generated documents.
type StorageConfig struct {
	S3 struct {
		Enabled bool   `mapstructure:"enabled"`
		Bucket  string `mapstructure:"bucket"`
		Region  string `mapstructure:"region"`
		Prefix  string `mapstructure:"prefix"`
	} `mapstructure:"s3"`
}

// NotificationConfig holds settings for the document-generated event.
type NotificationConfig struct {
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		TopicARN string `mapstructure:"topic_arn"`
		Region   string `mapstructure:"region"`
	} `mapstructure:"sns"`
}

type CacheConfig struct {
	ApplicationTTL int `mapstructure:"application_ttl"` // seconds
}

// TTL returns the application cache lifetime.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.ApplicationTTL) * time.Second
}

// ServerConfig is the health and metrics listener of the worker manager.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}
