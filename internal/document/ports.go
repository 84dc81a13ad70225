package document

import (
	"context"

	"document-workers/internal/document/pdf"
	"document-workers/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ApplicationStore looks up a single application. Implementations either
// return the application, return nil with a nil error when it is absent, or
// fail when the lookup does not resolve to exactly one record.
type ApplicationStore interface {
	FindApplicationByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
}

// TemplatePathProvider resolves a logical template name to a path relative
// to the template base URI.
type TemplatePathProvider interface {
	PathFor(name string) (string, error)
}

// ViewRenderer renders the template found at url with the given view model.
type ViewRenderer interface {
	RenderFromPath(ctx context.Context, url string, viewModel any) (string, error)
}

// PDFConverter turns an HTML document into a PDF.
type PDFConverter interface {
	RenderHTMLToPDF(ctx context.Context, html string, opts pdf.Options) (pdf.Document, error)
}

// Configuration is the read-only settings the generator needs.
type Configuration interface {
	SupportEmail() string
	Signature() models.Signature
	TaxRate() decimal.Decimal
}
