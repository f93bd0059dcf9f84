package synthesis

import (
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"go.uber.org/zap"
)

// Tax obligation amount range
const (
	minTaxAmount = 50_000.0
	maxTaxAmount = 5_000_000.0
)

// Tax generates tax obligations due within the tax horizon around asOf
func (g *Generator) Tax(seed uint64, size int) ([]ledger.TaxObligation, error) {
	if err := g.checkRequest(ledger.DomainTax, size); err != nil {
		return nil, err
	}

	src := NewSource(seed)
	h := g.window.TaxHorizon
	taxes := make([]ledger.TaxObligation, size)
	for i := range taxes {
		taxes[i] = ledger.TaxObligation{
			ID:      ledger.TaxID(i),
			TaxType: ledger.TaxTypes[src.Pick(len(ledger.TaxTypes))],
			DueDate: g.daysFromAsOf(src.IntRange(-h, h)),
			Amount:  src.Money(minTaxAmount, maxTaxAmount),
			Status:  ledger.PaymentStatuses[src.Pick(len(ledger.PaymentStatuses))],
		}
		if err := taxes[i].Validate(); err != nil {
			g.reportDefect(ledger.DomainTax, taxes[i].ID, err)
		}
	}

	g.logger.Debug("generated tax obligations", zap.Uint64("seed", seed), zap.Int("size", size))
	return taxes, nil
}
