package document

import (
	"time"

	"document-workers/internal/models"

	"github.com/shopspring/decimal"
)

// Template names understood by the TemplatePathProvider.
const (
	PendingApplicationTemplate   = "PendingApplication"
	ActivatedApplicationTemplate = "ActivatedApplication"
	InReviewApplicationTemplate  = "InReviewApplication"
)

// ApplicationViewModel holds the fields every document shows.
type ApplicationViewModel struct {
	ReferenceNumber string
	State           string
	FullName        string
	AppliedOn       time.Time
	SupportEmail    string
	Signature       models.Signature
}

type PendingApplicationViewModel struct {
	ApplicationViewModel
}

type ActivatedApplicationViewModel struct {
	ApplicationViewModel
	// LegalEntity is nil unless the applicant is a legal entity.
	LegalEntity          *models.LegalEntity
	PortfolioFunds       []models.Fund
	PortfolioTotalAmount decimal.Decimal
}

type InReviewApplicationViewModel struct {
	ActivatedApplicationViewModel
	InReviewMessage     string
	InReviewInformation *models.Review
}

func (g *Generator) baseViewModel(app *models.Application) ApplicationViewModel {
	return ApplicationViewModel{
		ReferenceNumber: app.ReferenceNumber,
		State:           app.State.Description(),
		FullName:        app.Person.FullName(),
		AppliedOn:       app.Date,
		SupportEmail:    g.config.SupportEmail(),
		Signature:       g.config.Signature(),
	}
}

func (g *Generator) activatedViewModel(app *models.Application) ActivatedApplicationViewModel {
	vm := ActivatedApplicationViewModel{
		ApplicationViewModel: g.baseViewModel(app),
		PortfolioFunds:       PortfolioFunds(app.Products),
	}
	if app.IsLegalEntity {
		vm.LegalEntity = app.LegalEntity
	}
	vm.PortfolioTotalAmount = PortfolioTotal(vm.PortfolioFunds, g.config.TaxRate())
	return vm
}

func (g *Generator) inReviewViewModel(app *models.Application) InReviewApplicationViewModel {
	reason := ""
	if app.CurrentReview != nil {
		reason = app.CurrentReview.Reason
	}
	return InReviewApplicationViewModel{
		ActivatedApplicationViewModel: g.activatedViewModel(app),
		InReviewMessage:               ReviewMessage(reason),
		InReviewInformation:           app.CurrentReview,
	}
}
