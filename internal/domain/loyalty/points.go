// Package loyalty contiene las reglas puras del programa de puntos.
// Regla única y documentada: se gana un punto por cada 20 unidades monetarias del
// total pagado (floor), y cada punto vale exactamente 1 unidad monetaria al redimir.
package loyalty

import "github.com/shopspring/decimal"

// EarnDivisor unidades monetarias necesarias para ganar un punto.
var EarnDivisor = decimal.NewFromInt(20)

// PointsEarned calcula los puntos ganados por una venta: floor(total / 20).
// Totales negativos o cero no generan puntos.
func PointsEarned(total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	return int(total.Div(EarnDivisor).Floor().IntPart())
}

// RedemptionValue devuelve el valor monetario de una cantidad de puntos (1 punto = 1 unidad).
func RedemptionValue(points int) decimal.Decimal {
	return decimal.NewFromInt(int64(points))
}
