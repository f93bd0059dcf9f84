package synthesis

import (
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"go.uber.org/zap"
)

// MaxSize bounds a single generated collection
const MaxSize = 100_000

// DefaultSupplierPool is the number of distinct suppliers invoices draw from
const DefaultSupplierPool = 20

// DefaultSeeds are the seeds of the sample datasets per ledger
var DefaultSeeds = map[ledger.Domain]uint64{
	ledger.DomainPayables: 42,
	ledger.DomainLoans:    42,
	ledger.DomainPayroll:  123,
	ledger.DomainTax:      42,
}

// DefaultSizes are the record counts of the sample datasets per ledger
var DefaultSizes = map[ledger.Domain]int{
	ledger.DomainPayables: 50,
	ledger.DomainLoans:    50,
	ledger.DomainPayroll:  100,
	ledger.DomainTax:      50,
}

// Generator produces ledgers relative to a fixed reference date. The same
// (asOf, window, domain, seed, size) always yields identical records.
type Generator struct {
	asOf         time.Time
	window       Window
	supplierPool int
	logger       *zap.Logger
}

// Option is a functional option for configuring the Generator
type Option func(*Generator)

// WithAsOf sets the reference date that plays the role of "now"
func WithAsOf(t time.Time) Option {
	return func(g *Generator) {
		g.asOf = t.UTC()
	}
}

// WithWindow overrides the historical window
func WithWindow(w Window) Option {
	return func(g *Generator) {
		g.window = w
	}
}

// WithSupplierPool sets how many suppliers invoices are spread across
func WithSupplierPool(n int) Option {
	return func(g *Generator) {
		g.supplierPool = n
	}
}

// WithLogger sets the logger for the generator
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a generator. Without WithAsOf the reference date is
// today at midnight UTC.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		asOf:         Today(),
		window:       DefaultWindow(),
		supplierPool: DefaultSupplierPool,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Today returns the current date at midnight UTC
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// AsOf returns the reference date
func (g *Generator) AsOf() time.Time {
	return g.asOf
}

// Window returns the historical window in use
func (g *Generator) Window() Window {
	return g.window
}

// Generate produces size records of the given ledger from seed
func (g *Generator) Generate(domain ledger.Domain, seed uint64, size int) (ledger.Collection, error) {
	if !domain.IsValid() {
		return ledger.Collection{}, shared.NewConfigurationError("unknown ledger domain %q", domain)
	}

	c := ledger.Collection{Domain: domain}
	var err error
	switch domain {
	case ledger.DomainPayables:
		c.Invoices, err = g.Payables(seed, size)
	case ledger.DomainLoans:
		c.Loans, err = g.Loans(seed, size)
	case ledger.DomainPayroll:
		c.Payroll, err = g.Payroll(seed, size)
	case ledger.DomainTax:
		c.Taxes, err = g.Tax(seed, size)
	}
	if err != nil {
		return ledger.Collection{}, err
	}
	return c, nil
}

// checkRequest fails fast before any record is produced
func (g *Generator) checkRequest(domain ledger.Domain, size int) error {
	if size <= 0 {
		return shared.NewConfigurationError("%s size must be positive, got %d", domain, size)
	}
	if size > MaxSize {
		return shared.NewConfigurationError("%s size %d exceeds maximum %d", domain, size, MaxSize)
	}
	if g.asOf.IsZero() {
		return shared.NewConfigurationError("reference date is required")
	}
	if g.supplierPool <= 0 {
		return shared.NewConfigurationError("supplier pool must be positive, got %d", g.supplierPool)
	}
	return g.window.Validate()
}

// reportDefect flags a record that broke its own invariants. Development
// loggers panic on DPanic, which is how tests surface generator defects.
func (g *Generator) reportDefect(domain ledger.Domain, id string, err error) {
	g.logger.DPanic("generated record violates invariants",
		zap.String("domain", domain.String()),
		zap.String("id", id),
		zap.Error(err),
	)
}

func (g *Generator) daysFromAsOf(days int) time.Time {
	return g.asOf.AddDate(0, 0, days)
}
