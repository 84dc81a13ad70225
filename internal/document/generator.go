// Package document builds the PDF status document for an application.
package document

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "document-workers/internal/common/errors"
	"document-workers/internal/common/logger"
	"document-workers/internal/document/pdf"
	"document-workers/internal/models"

	"github.com/google/uuid"
)

// DefaultHeaderHTML is printed on the first page of every document.
const DefaultHeaderHTML = `<center><b>Application Status Summary</b></center>`

var (
	// ErrMissingDependency is returned by NewGenerator for a nil collaborator.
	ErrMissingDependency = errors.New("document generator: missing dependency")
	// ErrEmptyBaseURI is wrapped in an INVALID_INPUT error when Generate is
	// called without a base URI.
	ErrEmptyBaseURI = errors.New("document generator: base uri is empty")
)

// Generator renders application documents. It holds no per-call state and is
// safe for concurrent use when its collaborators are.
type Generator struct {
	store     ApplicationStore
	paths     TemplatePathProvider
	renderer  ViewRenderer
	config    Configuration
	converter PDFConverter
	logger    logger.Logger

	headerHTML string
}

// Option customises a Generator at construction.
type Option func(*Generator)

// WithHeaderHTML replaces the first-page header fragment.
func WithHeaderHTML(html string) Option {
	return func(g *Generator) {
		if html != "" {
			g.headerHTML = html
		}
	}
}

// NewGenerator requires every collaborator to be non-nil.
func NewGenerator(
	store ApplicationStore,
	paths TemplatePathProvider,
	renderer ViewRenderer,
	config Configuration,
	converter PDFConverter,
	log logger.Logger,
	opts ...Option,
) (*Generator, error) {
	deps := []struct {
		name  string
		isNil bool
	}{
		{"application store", store == nil},
		{"template path provider", paths == nil},
		{"view renderer", renderer == nil},
		{"configuration", config == nil},
		{"pdf converter", converter == nil},
		{"logger", log == nil},
	}
	for _, d := range deps {
		if d.isNil {
			return nil, fmt.Errorf("%w: %s", ErrMissingDependency, d.name)
		}
	}

	g := &Generator{
		store:      store,
		paths:      paths,
		renderer:   renderer,
		config:     config,
		converter:  converter,
		logger:     log,
		headerHTML: DefaultHeaderHTML,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Document is a generated PDF together with the application facts the
// delivery side needs to name and announce it.
type Document struct {
	ApplicationID   uuid.UUID
	ReferenceNumber string
	State           models.ApplicationState
	Template        string
	Pages           int
	Bytes           []byte
}

// Generate returns the PDF for the application, or nil with a nil error when
// the application is absent or its state has no document. Store errors are
// returned unchanged.
func (g *Generator) Generate(ctx context.Context, applicationID uuid.UUID, baseURI string) ([]byte, error) {
	doc, err := g.GenerateDocument(ctx, applicationID, baseURI)
	if err != nil || doc == nil {
		return nil, err
	}
	return doc.Bytes, nil
}

// GenerateDocument is Generate with the document metadata attached. A nil
// Document with a nil error means nothing was generated.
func (g *Generator) GenerateDocument(ctx context.Context, applicationID uuid.UUID, baseURI string) (*Document, error) {
	if baseURI == "" {
		return nil, apperrors.NewInvalidInputError("baseUri is required").WithCause(ErrEmptyBaseURI)
	}

	app, err := g.store.FindApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		g.logger.Warn("no application found", map[string]interface{}{
			"applicationId": applicationID.String(),
		})
		return nil, nil
	}

	baseURI = strings.TrimSuffix(baseURI, "/")

	var (
		templateName string
		viewModel    any
	)
	switch app.State {
	case models.ApplicationStatePending:
		templateName = PendingApplicationTemplate
		viewModel = PendingApplicationViewModel{ApplicationViewModel: g.baseViewModel(app)}
	case models.ApplicationStateActivated:
		templateName = ActivatedApplicationTemplate
		viewModel = g.activatedViewModel(app)
	case models.ApplicationStateInReview:
		templateName = InReviewApplicationTemplate
		viewModel = g.inReviewViewModel(app)
	default:
		g.logger.Warn("no valid document can be generated for application state", map[string]interface{}{
			"applicationId": applicationID.String(),
			"state":         string(app.State),
		})
		return nil, nil
	}

	path, err := g.paths.PathFor(templateName)
	if err != nil {
		return nil, fmt.Errorf("resolve template %s: %w", templateName, err)
	}

	html, err := g.renderer.RenderFromPath(ctx, baseURI+path, viewModel)
	if err != nil {
		return nil, fmt.Errorf("render template %s: %w", templateName, err)
	}

	pdfDoc, err := g.converter.RenderHTMLToPDF(ctx, html, g.pdfOptions())
	if err != nil {
		return nil, fmt.Errorf("convert %s to pdf: %w", templateName, apperrors.NewPDFConversionFailedError(err))
	}

	data, err := pdfDoc.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("convert %s to pdf: %w", templateName, apperrors.NewPDFConversionFailedError(err))
	}

	return &Document{
		ApplicationID:   app.ID,
		ReferenceNumber: app.ReferenceNumber,
		State:           app.State,
		Template:        templateName,
		Pages:           pdfDoc.Pages(),
		Bytes:           data,
	}, nil
}

func (g *Generator) pdfOptions() pdf.Options {
	return pdf.Options{
		PageNumbers: pdf.PageNumbersNumeric,
		Header: pdf.HeaderOptions{
			Repeat: pdf.HeaderFirstPageOnly,
			HTML:   g.headerHTML,
		},
	}
}
