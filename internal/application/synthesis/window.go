package synthesis

import "github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"

// Window holds the day offsets that place generated dates around the
// reference date. Ranges are inclusive.
type Window struct {
	IssueLookbackMin int // issue date, days before asOf
	IssueLookbackMax int
	PaymentTermMin   int // days from issue to due for paid invoices
	PaymentTermMax   int
	OverdueMin       int // days past due for overdue invoices
	OverdueMax       int
	PendingMin       int // days until due for pending invoices
	PendingMax       int
	CorrectionMin    int // issue shift before a status-forced due date
	CorrectionMax    int
	LoanLookbackMax  int // loan origination, days before asOf
	TaxHorizon       int // tax due dates fall within asOf ± horizon
}

// DefaultWindow returns the historical window of the sample datasets
func DefaultWindow() Window {
	return Window{
		IssueLookbackMin: 10,
		IssueLookbackMax: 730,
		PaymentTermMin:   5,
		PaymentTermMax:   120,
		OverdueMin:       1,
		OverdueMax:       180,
		PendingMin:       1,
		PendingMax:       90,
		CorrectionMin:    5,
		CorrectionMax:    60,
		LoanLookbackMax:  730,
		TaxHorizon:       90,
	}
}

// Validate rejects windows that could break the invoice date invariants
func (w Window) Validate() error {
	ranges := []struct {
		name     string
		min, max int
		floor    int
	}{
		{"issue lookback", w.IssueLookbackMin, w.IssueLookbackMax, 0},
		{"payment term", w.PaymentTermMin, w.PaymentTermMax, 1},
		{"overdue", w.OverdueMin, w.OverdueMax, 1},
		{"pending", w.PendingMin, w.PendingMax, 0},
		{"issue correction", w.CorrectionMin, w.CorrectionMax, 1},
	}
	for _, r := range ranges {
		if r.min < r.floor {
			return shared.NewConfigurationError("window %s minimum must be at least %d, got %d", r.name, r.floor, r.min)
		}
		if r.max < r.min {
			return shared.NewConfigurationError("window %s maximum %d is below minimum %d", r.name, r.max, r.min)
		}
	}
	if w.LoanLookbackMax < 0 {
		return shared.NewConfigurationError("window loan lookback must not be negative, got %d", w.LoanLookbackMax)
	}
	if w.TaxHorizon < 0 {
		return shared.NewConfigurationError("window tax horizon must not be negative, got %d", w.TaxHorizon)
	}
	return nil
}
