package synthesis

import (
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Loan principal range
const (
	minPrincipal = 10_000.0
	maxPrincipal = 500_000.0
)

// Loans generates bank loans with uniformly drawn status
func (g *Generator) Loans(seed uint64, size int) ([]ledger.Loan, error) {
	if err := g.checkRequest(ledger.DomainLoans, size); err != nil {
		return nil, err
	}

	src := NewSource(seed)
	minRate := ledger.MinAnnualRate.InexactFloat64()
	maxRate := ledger.MaxAnnualRate.InexactFloat64()

	loans := make([]ledger.Loan, size)
	for i := range loans {
		loans[i] = ledger.Loan{
			ID:              ledger.LoanID(i),
			OriginationDate: g.daysFromAsOf(-src.IntRange(0, g.window.LoanLookbackMax)),
			Principal:       src.Money(minPrincipal, maxPrincipal),
			AnnualRate:      decimal.NewFromFloat(src.Float64Range(minRate, maxRate)).Round(4),
			TermMonths:      src.IntRange(ledger.MinTermMonths, ledger.MaxTermMonths),
			Status:          ledger.LoanStatuses[src.Pick(len(ledger.LoanStatuses))],
		}
		if err := loans[i].Validate(g.asOf); err != nil {
			g.reportDefect(ledger.DomainLoans, loans[i].ID, err)
		}
	}

	g.logger.Debug("generated loans", zap.Uint64("seed", seed), zap.Int("size", size))
	return loans, nil
}
