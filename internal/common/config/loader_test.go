package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
app:
  name: document-workers
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: applications
    user: docs
    password: ${DOCS_TEST_DB_PASSWORD}
document:
  base_uri: https://templates.example.com/
  tax_rate: "0.15"
  support_email: support@example.com
  signature:
    text: The Onboarding Team
  templates:
    PendingApplication: /pending.html
    ActivatedApplication: /activated.html
    InReviewApplication: /in_review.html
workers:
  generate-application-document:
    enabled: true
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Valid(t *testing.T) {
	t.Setenv("DOCS_TEST_DB_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "/activated.html", cfg.Document.Templates["activatedapplication"], "viper lower-cases map keys")
	assert.Empty(t, cfg.Document.Header)
	assert.Equal(t, "applications", cfg.Storage.S3.Prefix)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL())
	assert.Equal(t, 8080, cfg.Server.Port)

	worker := GetWorkerConfig(cfg, "generate-application-document")
	assert.True(t, worker.Enabled)
	assert.Equal(t, 5, worker.MaxJobsActive)
	assert.Equal(t, 3, worker.MaxRetries)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Camunda.BrokerAddress = "localhost:26500"
		cfg.Database.Postgres = PostgresConfig{Host: "db", Database: "apps", User: "docs"}
		cfg.Document = DocumentConfig{
			TaxRate:      "0.2",
			SupportEmail: "support@example.com",
			Templates:    map[string]string{"PendingApplication": "/p.html"},
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing broker", mutate: func(c *Config) { c.Camunda.BrokerAddress = "" }, wantErr: "camunda.broker_address"},
		{name: "missing postgres host", mutate: func(c *Config) { c.Database.Postgres.Host = "" }, wantErr: "database.postgres.host"},
		{name: "bad tax rate", mutate: func(c *Config) { c.Document.TaxRate = "fifteen" }, wantErr: "document.tax_rate"},
		{name: "negative tax rate", mutate: func(c *Config) { c.Document.TaxRate = "-0.1" }, wantErr: "must not be negative"},
		{name: "no support email", mutate: func(c *Config) { c.Document.SupportEmail = "" }, wantErr: "document.support_email"},
		{name: "no templates", mutate: func(c *Config) { c.Document.Templates = nil }, wantErr: "document.templates"},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Storage.S3.Enabled = true }, wantErr: "storage.s3.bucket"},
		{name: "sns without topic", mutate: func(c *Config) { c.Notifications.SNS.Enabled = true }, wantErr: "topic_arn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDocumentSettings(t *testing.T) {
	settings, err := DocumentConfig{
		TaxRate:      "0.15",
		SupportEmail: "help@example.com",
		Signature:    SignatureConfig{Text: "Regards", Image: "https://cdn.example.com/sig.png"},
	}.Settings()
	require.NoError(t, err)

	assert.Equal(t, "help@example.com", settings.SupportEmail())
	assert.Equal(t, "Regards", settings.Signature().Text)
	assert.Equal(t, "https://cdn.example.com/sig.png", settings.Signature().Image)
	assert.True(t, decimal.RequireFromString("0.15").Equal(settings.TaxRate()))

	_, err = DocumentConfig{TaxRate: "abc"}.Settings()
	assert.Error(t, err)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 60*time.Second, GetDuration(60000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}

func TestIsWorkerEnabled(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{"off": {Enabled: false}}}
	assert.False(t, IsWorkerEnabled(cfg, "off"))
	assert.True(t, IsWorkerEnabled(cfg, "unknown"))
}

func TestPostgresDSN(t *testing.T) {
	dsn := PostgresConfig{Host: "db", Port: 5433, User: "u", Password: "p", Database: "d", SSLMode: "require"}.GetDSN()
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=d sslmode=require", dsn)
}
