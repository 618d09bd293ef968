package models

type CurrencyCode string

const (
	CurrencyUSD CurrencyCode = "USD"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyGBP CurrencyCode = "GBP"
)

// CurrencyConfig converts USD amounts for display. Rate must be positive.
type CurrencyConfig struct {
	Symbol string  `json:"symbol"`
	Rate   float64 `json:"rate"`
}

type SetCurrencyRequest struct {
	Code CurrencyCode `json:"code" validate:"required,oneof=USD EUR GBP"`
}
