package sales

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// formatAmount renders a total with no decimals and comma thousands
// separators, rounding half to even: 2000 -> "2,000".
func formatAmount(amount decimal.Decimal) string {
	return amountPrinter.Sprintf("%d", amount.RoundBank(0).IntPart())
}
