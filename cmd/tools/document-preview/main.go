// cmd/tools/document-preview/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"document-workers/internal/bootstrap"
	"document-workers/internal/common/config"
	"document-workers/internal/common/logger"
	"document-workers/internal/document"
	"document-workers/internal/document/view"
	"document-workers/internal/models"
)

func main() {
	renderCmd := flag.NewFlagSet("render", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// Render command flags
	renderConfig := renderCmd.String("config", "", "Path to config file (defaults to configs/config.yaml lookup)")
	applicationID := renderCmd.String("id", "", "Application ID")
	baseURI := renderCmd.String("base-uri", "", "Template base URI (defaults to document.base_uri)")
	fixture := renderCmd.String("fixture", "", "Read the application from a JSON file instead of the database")
	out := renderCmd.String("out", "", "Output PDF path (defaults to <id>.pdf)")
	timeout := renderCmd.Duration("timeout", 60*time.Second, "Overall timeout")

	// Validate command flags
	validateConfig := validateCmd.String("config", "", "Path to config file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	log := logger.NewStructured("info", "console")

	switch os.Args[1] {
	case "render":
		renderCmd.Parse(os.Args[2:])
		if *applicationID == "" && *fixture == "" {
			fmt.Println("Error: id or fixture is required for render.")
			renderCmd.Usage()
			os.Exit(1)
		}
		cfg, err := loadConfig(*renderConfig)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		defer cancel()

		path, size, err := render(ctx, cfg, log, renderOptions{
			applicationID: *applicationID,
			baseURI:       *baseURI,
			fixture:       *fixture,
			out:           *out,
		})
		if err != nil {
			fmt.Printf("Error rendering document: %v\n", err)
			os.Exit(1)
		}
		if path == "" {
			fmt.Println("No document generated for this application; see the log for the reason.")
			os.Exit(2)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", path, size)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		cfg, err := loadConfig(*validateConfig)
		if err != nil {
			fmt.Printf("Config validation failed: %v\n", err)
			os.Exit(1)
		}
		if err := validateDocumentConfig(cfg.Document); err != nil {
			fmt.Printf("Config validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config validation passed. Found %d templates.\n", len(cfg.Document.Templates))

	case "help":
		fallthrough
	default:
		help()
	}
}

type renderOptions struct {
	applicationID string
	baseURI       string
	fixture       string
	out           string
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromFile(path)
}

// render returns the written path, or "" when the application has no document.
func render(ctx context.Context, cfg *config.Config, log logger.Logger, opts renderOptions) (string, int, error) {
	var (
		generator *document.Generator
		id        uuid.UUID
		err       error
	)

	if opts.fixture != "" {
		store, app, err := loadFixture(opts.fixture)
		if err != nil {
			return "", 0, err
		}
		id = app.ID
		if generator, err = bootstrap.NewGenerator(cfg.Document, store, log); err != nil {
			return "", 0, err
		}
	} else {
		if id, err = uuid.Parse(opts.applicationID); err != nil {
			return "", 0, fmt.Errorf("invalid application id: %w", err)
		}
		components, err := bootstrap.NewComponents(ctx, cfg, log)
		if err != nil {
			return "", 0, err
		}
		defer components.Close()
		generator = components.Generator
	}

	base := opts.baseURI
	if base == "" {
		base = cfg.Document.BaseURI
	}

	doc, err := generator.GenerateDocument(ctx, id, base)
	if err != nil {
		return "", 0, err
	}
	if doc == nil {
		return "", 0, nil
	}

	out := opts.out
	if out == "" {
		out = id.String() + ".pdf"
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(out, doc.Bytes, 0644); err != nil {
		return "", 0, fmt.Errorf("failed to write document: %w", err)
	}
	return out, len(doc.Bytes), nil
}

// fixtureStore serves a single application read from disk.
type fixtureStore struct {
	app *models.Application
}

func (s fixtureStore) FindApplicationByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	if s.app.ID != id {
		return nil, nil
	}
	return s.app, nil
}

func loadFixture(path string) (fixtureStore, *models.Application, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixtureStore{}, nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	var app models.Application
	if err := json.Unmarshal(data, &app); err != nil {
		return fixtureStore{}, nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	return fixtureStore{app: &app}, &app, nil
}

func validateDocumentConfig(cfg config.DocumentConfig) error {
	if _, err := cfg.Settings(); err != nil {
		return err
	}
	paths, err := view.NewPathProvider(cfg.Templates)
	if err != nil {
		return err
	}
	for _, name := range []string{
		document.PendingApplicationTemplate,
		document.ActivatedApplicationTemplate,
		document.InReviewApplicationTemplate,
	} {
		if _, err := paths.PathFor(name); err != nil {
			return fmt.Errorf("template %s: %w", name, err)
		}
	}
	return nil
}

func help() {
	fmt.Print(`
Usage: document-preview <command> [flags]

Commands:
  render   Generate the PDF for one application and write it to disk
  validate Check the document section of the configuration
  help     Show this help message

Examples:
  document-preview render -id 7f4c2d1e-8a3b-4c5d-9e6f-0a1b2c3d4e5f -out out/app.pdf
  document-preview render -fixture testdata/activated.json -base-uri ./templates
  document-preview validate -config configs/config.yaml

Use 'document-preview <command> -h' for more information about a command.
`)
}
