package model

import "fmt"

// Currency is a display currency, identified by its ISO 4217 code. It only
// affects formatting; amounts are never converted.
type Currency string

// Supported display currencies.
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	INR Currency = "INR"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
	CHF Currency = "CHF"
	CNY Currency = "CNY"
	BRL Currency = "BRL"
	KRW Currency = "KRW"
	MXN Currency = "MXN"
	SEK Currency = "SEK"
	NOK Currency = "NOK"
	DKK Currency = "DKK"
	PLN Currency = "PLN"
	TRY Currency = "TRY"
	THB Currency = "THB"
	IDR Currency = "IDR"
	PHP Currency = "PHP"
)

var currencySymbols = map[Currency]string{
	USD: "$",
	EUR: "€",
	GBP: "£",
	JPY: "¥",
	INR: "₹",
	CAD: "C$",
	AUD: "A$",
	CHF: "CHF ",
	CNY: "¥",
	BRL: "R$",
	KRW: "₩",
	MXN: "MX$",
	SEK: "kr ",
	NOK: "kr ",
	DKK: "kr ",
	PLN: "zł ",
	TRY: "₺",
	THB: "฿",
	IDR: "Rp ",
	PHP: "₱",
}

// Currencies returns all supported currencies in selection order.
func Currencies() []Currency {
	return []Currency{
		USD, EUR, GBP, JPY, INR, CAD, AUD, CHF, CNY, BRL,
		KRW, MXN, SEK, NOK, DKK, PLN, TRY, THB, IDR, PHP,
	}
}

// ParseCurrency resolves a currency code, defaulting to USD when the code
// is unknown.
func ParseCurrency(code string) Currency {
	c := Currency(code)
	if _, ok := currencySymbols[c]; ok {
		return c
	}
	return USD
}

// Symbol returns the display symbol for the currency.
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return currencySymbols[USD]
}

// Decimals returns how many fractional digits the currency displays.
func (c Currency) Decimals() int {
	switch c {
	case JPY, KRW:
		return 0
	default:
		return 2
	}
}

// Format renders an amount with symbol and the currency's decimal places.
func (c Currency) Format(amount float64) string {
	return fmt.Sprintf("%s%.*f", c.Symbol(), c.Decimals(), amount)
}

// FormatCompact renders an amount with no fractional digits, for tight
// chart and table columns.
func (c Currency) FormatCompact(amount float64) string {
	return fmt.Sprintf("%s%.0f", c.Symbol(), amount)
}
