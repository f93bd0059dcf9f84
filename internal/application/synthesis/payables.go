package synthesis

import (
	"fmt"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"go.uber.org/zap"
)

// Invoice status weights, in ledger.PaymentStatuses order
var payableStatusWeights = []float64{0.65, 0.25, 0.10}

// Invoice currency weights, in ledger.Currencies order
var currencyWeights = []float64{0.5, 0.4, 0.1}

// Invoice amount range
const (
	minInvoiceAmount = 100.0
	maxInvoiceAmount = 75_000.0
)

type supplier struct {
	ref  string
	name string
}

// Payables generates supplier invoices. Due dates always agree with the
// status: overdue invoices fall due before asOf and pending ones on or after
// it, and the issue date is pulled earlier whenever the forced due date
// would not follow it.
func (g *Generator) Payables(seed uint64, size int) ([]ledger.Invoice, error) {
	if err := g.checkRequest(ledger.DomainPayables, size); err != nil {
		return nil, err
	}

	src := NewSource(seed)
	w := g.window

	suppliers := make([]supplier, g.supplierPool)
	for i := range suppliers {
		suppliers[i] = supplier{
			ref:  fmt.Sprintf("SUP-%02d", i+1),
			name: src.Company(),
		}
	}

	invoices := make([]ledger.Invoice, size)
	for i := range invoices {
		status := ledger.PaymentStatuses[src.Weighted(payableStatusWeights)]
		issue := g.daysFromAsOf(-src.IntRange(w.IssueLookbackMin, w.IssueLookbackMax))
		due := issue.AddDate(0, 0, src.IntRange(w.PaymentTermMin, w.PaymentTermMax))

		switch status {
		case ledger.PaymentStatusOverdue:
			due = g.daysFromAsOf(-src.IntRange(w.OverdueMin, w.OverdueMax))
		case ledger.PaymentStatusPending:
			due = g.daysFromAsOf(src.IntRange(w.PendingMin, w.PendingMax))
		}
		if !issue.Before(due) {
			issue = due.AddDate(0, 0, -src.IntRange(w.CorrectionMin, w.CorrectionMax))
		}

		sup := suppliers[src.Pick(len(suppliers))]
		invoices[i] = ledger.Invoice{
			ID:           ledger.InvoiceID(i),
			SupplierRef:  sup.ref,
			SupplierName: sup.name,
			IssueDate:    issue,
			DueDate:      due,
			Amount:       src.Money(minInvoiceAmount, maxInvoiceAmount),
			Currency:     ledger.Currencies[src.Weighted(currencyWeights)],
			Status:       status,
		}
		if err := invoices[i].Validate(g.asOf); err != nil {
			g.reportDefect(ledger.DomainPayables, invoices[i].ID, err)
		}
	}

	g.logger.Debug("generated payables",
		zap.Uint64("seed", seed),
		zap.Int("size", size),
		zap.Time("as_of", g.asOf),
	)
	return invoices, nil
}
