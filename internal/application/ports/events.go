package ports

import "time"

// Nombres de eventos publicados tras un commit u operación de membresía.
// Entrega best-effort, a lo sumo una vez, sin replay. Publish jamás bloquea
// ni falla la operación que lo origina.
const (
	EventNewSale             = "new-sale"
	EventHighValueSale       = "high-value-sale"
	EventLowStockAlert       = "low-stock-alert"
	EventMemberPointsChanged = "member-points-changed"
	EventMemberJoined        = "member-joined"
)

// Event sobre con identidad, nombre y payload pequeño.
type Event struct {
	ID        string    `json:"event_id"`
	Type      string    `json:"event_type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// NewSalePayload payload de new-sale y high-value-sale.
type NewSalePayload struct {
	SaleID        string `json:"sale_id"`
	Total         string `json:"total"`
	PaymentMethod string `json:"payment_method"`
	CashierID     string `json:"cashier_id"`
}

// LowStockPayload payload de low-stock-alert (disparo por flanco: solo al cruzar el umbral).
type LowStockPayload struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Stock       int    `json:"stock"`
	Threshold   int    `json:"threshold"`
}

// MemberPointsPayload payload de member-points-changed.
type MemberPointsPayload struct {
	MemberID     string `json:"member_id"`
	PointsUsed   int    `json:"points_used"`
	PointsEarned int    `json:"points_earned"`
	Points       int    `json:"points"` // saldo resultante
}

// MemberJoinedPayload payload de member-joined.
type MemberJoinedPayload struct {
	MemberID string `json:"member_id"`
	Phone    string `json:"phone"`
}

// EventPublisher puerto del sink de notificaciones.
// Las implementaciones deben descartar antes que bloquear al emisor.
type EventPublisher interface {
	Publish(eventType string, payload any)
}

// NopPublisher descarta todos los eventos (tests y wiring mínimo).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(string, any) {}
