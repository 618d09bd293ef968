// Package currency renders USD catalog prices in the shopper's chosen currency.
package currency

import (
	"fmt"
	"math"
	"strings"

	"github.com/lumiere-stone/atelier/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currencies is the static conversion table. Not user editable.
var Currencies = map[models.CurrencyCode]models.CurrencyConfig{
	models.CurrencyUSD: {Symbol: "$", Rate: 1},
	models.CurrencyEUR: {Symbol: "€", Rate: 0.92},
	models.CurrencyGBP: {Symbol: "£", Rate: 0.79},
}

const DefaultCode = models.CurrencyUSD

var printer = message.NewPrinter(language.AmericanEnglish)

func Lookup(code models.CurrencyCode) (models.CurrencyConfig, bool) {
	cfg, ok := Currencies[code]
	return cfg, ok
}

// DisplayPrice converts priceUSD with cfg.Rate, rounds to whole units and
// formats it with thousands grouping behind cfg.Symbol. It panics when the
// rate is not positive.
func DisplayPrice(priceUSD float64, cfg models.CurrencyConfig) string {
	if !(cfg.Rate > 0) {
		panic(fmt.Sprintf("currency: rate must be positive, got %v", cfg.Rate))
	}

	amount := math.Round(priceUSD * cfg.Rate)

	var b strings.Builder
	if amount < 0 {
		b.WriteString("-")
	}
	b.WriteString(cfg.Symbol)
	b.WriteString(printer.Sprintf("%.0f", math.Abs(amount)))

	return b.String()
}
