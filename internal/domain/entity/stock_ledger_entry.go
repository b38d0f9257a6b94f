package entity

import "time"

// Tipos de movimiento del libro de stock.
const (
	LedgerTypeSale       = "sale"       // salida por venta (cantidad negativa)
	LedgerTypePurchase   = "purchase"   // entrada por documento de compra completado
	LedgerTypeAdjustment = "adjustment" // ajuste manual (signo libre)
	LedgerTypeReturn     = "return"     // devolución de cliente (cantidad positiva)
	LedgerTypeDamage     = "damage"     // merma/daño (cantidad negativa)
)

// ValidLedgerType indica si el tipo de movimiento es uno de los conocidos.
func ValidLedgerType(t string) bool {
	switch t {
	case LedgerTypeSale, LedgerTypePurchase, LedgerTypeAdjustment, LedgerTypeReturn, LedgerTypeDamage:
		return true
	}
	return false
}

// StockLedgerEntry es una entrada append-only del libro de movimientos de stock.
// Balance es el snapshot del stock del producto inmediatamente después de aplicar
// esta entrada: reproducir todas las entradas de un producto en orden de creación
// y sumar Quantity debe dar exactamente el stock actual (invariante de conciliación).
type StockLedgerEntry struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int    // con signo; negativo = disminución
	Balance   int    // stock resultante al momento de crear la entrada
	Reference string // id de la venta, número del documento de compra, id de ajuste
	CreatedBy string // actor
	CreatedAt time.Time
}
