// internal/workers/document/generate-application-document/config.go
package generateapplicationdocument

import (
	"time"

	"document-workers/internal/common/config"
)

type Config struct {
	// BaseURI is used when the job carries no baseUri variable.
	BaseURI string
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	timeout := 30 * time.Second
	if wcfg, ok := cfg.Workers[TaskType]; ok && wcfg.Timeout > 0 {
		timeout = config.GetDuration(wcfg.Timeout)
	}
	return &Config{
		BaseURI: cfg.Document.BaseURI,
		Timeout: timeout,
	}
}
