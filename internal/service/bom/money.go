package bom

import (
	"fmt"
	"github.com/shopspring/decimal"
	"math"
)

var hundred = decimal.NewFromInt(100)

// ClampPercent скидка всегда в пределах [0, 100].
func ClampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// discounted цена со скидкой, округлённая до копеек.
func discounted(price, percent float64) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percent).Div(hundred))
	return decimal.NewFromFloat(price).Mul(factor).Round(2)
}

func lineTotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
}

// FormatPower до 1000 пишет Вт с двумя знаками, дальше кВт и МВт с тремя.
func FormatPower(watts float64) string {
	switch {
	case watts >= 1_000_000:
		return fmt.Sprintf("%.3f МВт", watts/1_000_000)
	case watts >= 1000:
		return fmt.Sprintf("%.3f кВт", watts/1000)
	}
	return fmt.Sprintf("%.2f Вт", watts)
}

// FormatWeight от 1000 кг пишет тонны с тремя знаками, иначе кг с decimals знаками.
func FormatWeight(kg float64, decimals int) string {
	if kg >= 1000 {
		return fmt.Sprintf("%.3f т", kg/1000)
	}
	if decimals < 0 {
		decimals = 0
	}
	return fmt.Sprintf("%.*f кг", decimals, kg)
}
