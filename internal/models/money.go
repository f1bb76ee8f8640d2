package models

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatCurrency renders amount with thousands grouping and two decimals,
// prefixed by symbol: FormatCurrency("₹", 25000) == "₹25,000.00".
func FormatCurrency(symbol string, amount float64) string {
	if amount < 0 {
		return "-" + symbol + amountPrinter.Sprintf("%.2f", -amount)
	}
	return symbol + amountPrinter.Sprintf("%.2f", amount)
}
