package dto

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount is a money value as a JSON number plus its display string.
type Amount struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// MoneyFormatter renders decimals in a fixed ISO 4217 currency.
type MoneyFormatter struct {
	currency money.Currency
}

// NewMoneyFormatter creates a formatter for the currency code. Unknown codes fall back to USD.
func NewMoneyFormatter(code string) *MoneyFormatter {
	if money.GetCurrency(code) == nil {
		code = money.USD
	}
	return &MoneyFormatter{currency: *money.New(0, code).Currency()}
}

// Code returns the ISO code of the formatter's currency.
func (f *MoneyFormatter) Code() string {
	return f.currency.Code
}

// Amount converts a decimal into an Amount rounded to the currency's minor unit.
func (f *MoneyFormatter) Amount(d decimal.Decimal) Amount {
	fraction := int32(f.currency.Fraction)
	minor := d.Round(fraction).Shift(fraction).IntPart()
	value, _ := d.Round(fraction).Float64()
	return Amount{
		Value:     value,
		Formatted: f.currency.Formatter().Format(minor),
	}
}
