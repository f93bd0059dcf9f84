package audit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/application/anomaly"
	"github.com/Viny2030/Pasivos-corrientes/internal/application/synthesis"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/ledger"
	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// snapshotNamespace scopes the name-based snapshot IDs
var snapshotNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:pasivos-corrientes:snapshot"))

var validate = validator.New(validator.WithRequiredStructEnabled())

// Options is the full input configuration of one pipeline run. Equal
// options always produce the same snapshot.
type Options struct {
	AsOf          time.Time `json:"as_of" validate:"required"`
	PayablesSeed  uint64    `json:"payables_seed"`
	LoansSeed     uint64    `json:"loans_seed"`
	PayrollSeed   uint64    `json:"payroll_seed"`
	TaxSeed       uint64    `json:"tax_seed"`
	PayablesSize  int       `json:"payables_size" validate:"gt=0,lte=100000"`
	LoansSize     int       `json:"loans_size" validate:"gt=0,lte=100000"`
	PayrollSize   int       `json:"payroll_size" validate:"gt=0,lte=100000"`
	TaxSize       int       `json:"tax_size" validate:"gt=0,lte=100000"`
	Contamination float64   `json:"contamination" validate:"gt=0,lte=0.5"`
	Trees         int       `json:"trees" validate:"gt=0,lte=1000"`
	DetectorSeed  uint64    `json:"detector_seed"`
}

// DefaultOptions returns the sample configuration for the given date
func DefaultOptions(asOf time.Time) Options {
	return Options{
		AsOf:          midnight(asOf),
		PayablesSeed:  synthesis.DefaultSeeds[ledger.DomainPayables],
		LoansSeed:     synthesis.DefaultSeeds[ledger.DomainLoans],
		PayrollSeed:   synthesis.DefaultSeeds[ledger.DomainPayroll],
		TaxSeed:       synthesis.DefaultSeeds[ledger.DomainTax],
		PayablesSize:  synthesis.DefaultSizes[ledger.DomainPayables],
		LoansSize:     synthesis.DefaultSizes[ledger.DomainLoans],
		PayrollSize:   synthesis.DefaultSizes[ledger.DomainPayroll],
		TaxSize:       synthesis.DefaultSizes[ledger.DomainTax],
		Contamination: anomaly.DefaultContamination,
		Trees:         100,
		DetectorSeed:  anomaly.DefaultSeed,
	}
}

func midnight(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// Seed returns the seed configured for a ledger
func (o Options) Seed(d ledger.Domain) uint64 {
	switch d {
	case ledger.DomainPayables:
		return o.PayablesSeed
	case ledger.DomainLoans:
		return o.LoansSeed
	case ledger.DomainPayroll:
		return o.PayrollSeed
	case ledger.DomainTax:
		return o.TaxSeed
	}
	return 0
}

// Size returns the record count configured for a ledger
func (o Options) Size(d ledger.Domain) int {
	switch d {
	case ledger.DomainPayables:
		return o.PayablesSize
	case ledger.DomainLoans:
		return o.LoansSize
	case ledger.DomainPayroll:
		return o.PayrollSize
	case ledger.DomainTax:
		return o.TaxSize
	}
	return 0
}

// Validate reports every invalid field in a single ConfigurationError
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return shared.NewConfigurationError("invalid options: %v", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return shared.NewConfigurationError("invalid options: %s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
}

// Key is the canonical text form of the options. It is stable across
// releases and is the memoization key of the snapshot.
func (o Options) Key() string {
	return fmt.Sprintf("asof=%s;payables=%d/%d;loans=%d/%d;payroll=%d/%d;tax=%d/%d;contamination=%g;trees=%d;detector=%d",
		o.AsOf.UTC().Format("2006-01-02"),
		o.PayablesSeed, o.PayablesSize,
		o.LoansSeed, o.LoansSize,
		o.PayrollSeed, o.PayrollSize,
		o.TaxSeed, o.TaxSize,
		o.Contamination, o.Trees, o.DetectorSeed,
	)
}

// SnapshotID is a name-based UUID derived from Key
func (o Options) SnapshotID() uuid.UUID {
	return uuid.NewSHA1(snapshotNamespace, []byte(o.Key()))
}
