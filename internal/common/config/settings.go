package config

import (
	"fmt"

	"document-workers/internal/models"

	"github.com/shopspring/decimal"
)

// DocumentSettings exposes the document section to the generator.
type DocumentSettings struct {
	supportEmail string
	signature    models.Signature
	taxRate      decimal.Decimal
}

// Settings parses the document section. The tax rate is a fraction, so
// "0.15" means fifteen percent.
func (d DocumentConfig) Settings() (*DocumentSettings, error) {
	rate, err := decimal.NewFromString(d.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("invalid tax rate %q: %w", d.TaxRate, err)
	}
	return &DocumentSettings{
		supportEmail: d.SupportEmail,
		signature: models.Signature{
			Text:  d.Signature.Text,
			Image: d.Signature.Image,
		},
		taxRate: rate,
	}, nil
}

func (s *DocumentSettings) SupportEmail() string {
	return s.supportEmail
}

func (s *DocumentSettings) Signature() models.Signature {
	return s.signature
}

func (s *DocumentSettings) TaxRate() decimal.Decimal {
	return s.taxRate
}
