package report

import (
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dateLayout      = "02/01/2006"
	longDateLayout  = "2 January 2006"
	periodLayout    = "01/2006"
	timestampLayout = "02/01/2006 15:04"
)

var printer = message.NewPrinter(language.English)

// formatAmount renders a monetary value with thousands separators and two
// decimals, e.g. 1,234,567.89.
func formatAmount(d decimal.Decimal) string {
	return printer.Sprintf("%.2f", d.Round(2).InexactFloat64())
}

// formatMoney prefixes formatAmount with the currency sign used in prose
func formatMoney(d decimal.Decimal) string {
	return "$" + formatAmount(d)
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}
