package document

import (
	"document-workers/internal/models"

	"github.com/shopspring/decimal"
)

// PortfolioFunds flattens the funds of every product, keeping product order
// and then fund order.
func PortfolioFunds(products []models.Product) []models.Fund {
	var funds []models.Fund
	for _, p := range products {
		funds = append(funds, p.Funds...)
	}
	return funds
}

// PortfolioTotal sums (amount - fees) * taxRate over funds.
func PortfolioTotal(funds []models.Fund, taxRate decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, f := range funds {
		total = total.Add(f.Amount.Sub(f.Fees).Mul(taxRate))
	}
	return total
}
