package templates

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// MoneyFormatter formats amounts for one locale and currency.
type MoneyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewMoneyFormatter creates a formatter for a BCP 47 locale such as "fr-FR"
// and an ISO 4217 currency code such as "EUR".
func NewMoneyFormatter(locale, currencyCode string) (*MoneyFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return nil, fmt.Errorf("invalid currency %q: %w", currencyCode, err)
	}

	return &MoneyFormatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// Format renders an amount with two decimals and the currency symbol.
func (f *MoneyFormatter) Format(amount decimal.Decimal) string {
	value := f.printer.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
	symbol := f.printer.Sprint(currency.Symbol(f.unit))
	return value + " " + symbol
}

// Currency returns the ISO code of the formatter's currency.
func (f *MoneyFormatter) Currency() string {
	return f.unit.String()
}
