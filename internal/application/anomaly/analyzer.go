// Package anomaly augments payables with risk features and outlier flags.
package anomaly

import (
	"math"
	"sort"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/outlier"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

// Analyzer defaults
const (
	DefaultContamination = 0.10
	DefaultSeed          = 42
	MaxContamination     = 0.5
)

// Analyzer flags invoices whose amount and days-to-due combination is
// unusual for the batch.
type Analyzer struct {
	contamination float64
	seed          uint64
	trees         int
	asOf          time.Time
	logger        *zap.Logger
}

// Option is a functional option for configuring the Analyzer
type Option func(*Analyzer)

// WithContamination sets the fraction of invoices to flag
func WithContamination(f float64) Option {
	return func(a *Analyzer) {
		a.contamination = f
	}
}

// WithSeed sets the isolation forest seed
func WithSeed(seed uint64) Option {
	return func(a *Analyzer) {
		a.seed = seed
	}
}

// WithTrees sets the number of isolation trees
func WithTrees(n int) Option {
	return func(a *Analyzer) {
		a.trees = n
	}
}

// WithAsOf sets the reference date days-to-due is measured from
func WithAsOf(t time.Time) Option {
	return func(a *Analyzer) {
		a.asOf = t.UTC()
	}
}

// WithLogger sets the logger for the analyzer
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates an analyzer. Contamination must lie in (0, 0.5].
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	a := &Analyzer{
		contamination: DefaultContamination,
		seed:          DefaultSeed,
		trees:         outlier.DefaultTrees,
		asOf:          time.Now().UTC().Truncate(24 * time.Hour),
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if math.IsNaN(a.contamination) || a.contamination <= 0 || a.contamination > MaxContamination {
		return nil, shared.NewConfigurationError("contamination must be in (0, %.1f], got %v", MaxContamination, a.contamination)
	}
	if a.trees <= 0 {
		return nil, shared.NewConfigurationError("tree count must be positive, got %d", a.trees)
	}
	return a, nil
}

// Contamination returns the configured flag fraction
func (a *Analyzer) Contamination() float64 {
	return a.contamination
}

// FlagCount is the number of invoices flagged in a batch of n
func (a *Analyzer) FlagCount(n int) int {
	k := int(math.Round(a.contamination * float64(n)))
	return min(max(k, 0), n)
}

// Analyze returns one analyzed copy per invoice, in input order
func (a *Analyzer) Analyze(invoices []ledger.Invoice) []ledger.AnalyzedInvoice {
	out := make([]ledger.AnalyzedInvoice, len(invoices))
	if len(invoices) == 0 {
		return out
	}

	amounts := make([]float64, len(invoices))
	for i, inv := range invoices {
		out[i] = ledger.AnalyzedInvoice{
			Invoice:   inv,
			DaysToDue: DaysBetween(a.asOf, inv.DueDate),
		}
		amounts[i] = inv.Amount.InexactFloat64()
	}

	for i, z := range ZScores(amounts) {
		out[i].AmountZScore = z
	}

	points := make([][]float64, len(out))
	for i := range out {
		points[i] = []float64{finite(amounts[i]), finite(float64(out[i].DaysToDue))}
	}

	forest := outlier.NewIsolationForest(outlier.Config{Trees: a.trees, Seed: a.seed})
	if err := forest.Fit(points); err != nil {
		// Points are non-empty and two-dimensional here.
		a.logger.Error("isolation forest fit failed", zap.Error(err))
		return out
	}
	scores := forest.ScoreAll(points)
	for i, s := range scores {
		out[i].AnomalyScore = s
	}

	k := a.FlagCount(len(out))
	for _, i := range topK(scores, k) {
		out[i].IsAnomaly = true
	}

	a.logger.Debug("payables analyzed",
		zap.Int("invoices", len(out)),
		zap.Int("flagged", k),
		zap.Float64("contamination", a.contamination),
	)
	return out
}

// DaysBetween returns floor((to - from) / 24h)
func DaysBetween(from, to time.Time) int {
	return int(math.Floor(to.Sub(from).Hours() / 24))
}

// ZScores standardises x with population statistics. A batch without
// variance scores zero everywhere.
func ZScores(x []float64) []float64 {
	z := make([]float64, len(x))
	clean := make([]float64, len(x))
	for i, v := range x {
		clean[i] = finite(v)
	}
	mean, std := stat.PopMeanStdDev(clean, nil)
	if std == 0 || math.IsNaN(std) {
		return z
	}
	for i, v := range clean {
		z[i] = stat.StdScore(v, mean, std)
	}
	return z
}

// finite maps NaN and infinities to zero before scoring
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// topK returns the indices of the k highest scores. Equal scores keep input
// order.
func topK(scores []float64, k int) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})
	return idx[:k]
}
