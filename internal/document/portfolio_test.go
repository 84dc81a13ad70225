package document

import (
	"testing"

	"document-workers/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestPortfolioTotal(t *testing.T) {
	tests := []struct {
		name  string
		funds []models.Fund
		rate  string
		want  string
	}{
		{
			name:  "two funds",
			funds: []models.Fund{{Amount: d("100"), Fees: d("10")}, {Amount: d("50"), Fees: d("5")}},
			rate:  "0.2",
			want:  "27",
		},
		{name: "no funds", rate: "0.2", want: "0"},
		{
			name:  "fees above amount",
			funds: []models.Fund{{Amount: d("10"), Fees: d("15")}},
			rate:  "0.5",
			want:  "-2.5",
		},
		{
			name:  "exact cents",
			funds: []models.Fund{{Amount: d("0.1"), Fees: d("0")}, {Amount: d("0.2"), Fees: d("0")}},
			rate:  "1",
			want:  "0.3",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PortfolioTotal(tt.funds, d(tt.rate))
			assert.True(t, d(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestPortfolioFunds_KeepsProductThenFundOrder(t *testing.T) {
	products := []models.Product{
		{Name: "A", Funds: []models.Fund{{Name: "a1"}, {Name: "a2"}}},
		{Name: "Empty"},
		{Name: "B", Funds: []models.Fund{{Name: "b1"}}},
	}

	funds := PortfolioFunds(products)

	names := make([]string, 0, len(funds))
	for _, f := range funds {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a1", "a2", "b1"}, names)
	assert.Empty(t, PortfolioFunds(nil))
}
