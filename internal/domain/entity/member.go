package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member representa una membresía del programa de lealtad.
// Phone es la clave natural única. Points nunca baja de cero y TotalSpent
// es monótonamente no decreciente; solo el motor de ventas acredita/debita puntos.
type Member struct {
	ID         string
	Phone      string
	Name       string
	Points     int
	TotalSpent decimal.Decimal
	CreatedAt  time.Time
	LastVisit  time.Time
}
