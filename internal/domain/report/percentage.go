package report

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// UndefinedMarker is printed in place of a share when the grand total is zero
const UndefinedMarker = "N/A"

var hundred = decimal.NewFromInt(100)

// Percentage is a category share of the grand total. Value keeps full
// precision; rounding happens only for display.
type Percentage struct {
	Value   decimal.Decimal
	Defined bool
}

// NewPercentage computes part / whole * 100, or an undefined share when
// whole is zero.
func NewPercentage(part, whole decimal.Decimal) Percentage {
	if whole.IsZero() {
		return Percentage{}
	}
	return Percentage{Value: part.Mul(hundred).Div(whole), Defined: true}
}

// Rounded returns the share rounded to one decimal place
func (p Percentage) Rounded() decimal.Decimal {
	return p.Value.Round(1)
}

// String renders the share as "12.3%" or the undefined marker
func (p Percentage) String() string {
	if !p.Defined {
		return UndefinedMarker
	}
	return fmt.Sprintf("%s%%", p.Value.StringFixed(1))
}

// MarshalJSON encodes the share as a number, or null when undefined
func (p Percentage) MarshalJSON() ([]byte, error) {
	if !p.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(p.Rounded().InexactFloat64())
}

// UnmarshalJSON accepts the number or null written by MarshalJSON
func (p *Percentage) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Percentage{}
		return nil
	}
	var v decimal.Decimal
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*p = Percentage{Value: v, Defined: true}
	return nil
}
