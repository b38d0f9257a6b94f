package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/retail-pos/internal/application/ports"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher sink de notificaciones en proceso: fan-out a suscriptores por canal
// con buffer. Entrega a lo sumo una vez; un suscriptor con el buffer lleno
// pierde el evento (se descarta antes que bloquear al emisor). No hay replay:
// los eventos no son el registro de auditoría, el libro y las ventas sí.
type Publisher struct {
	mu     sync.RWMutex
	subs   []subscriber
	closed bool
	log    *logger.Logger
}

type subscriber struct {
	types map[string]bool // nil = todos
	ch    chan ports.Event
}

// NewPublisher crea el publisher.
func NewPublisher(log *logger.Logger) *Publisher {
	return &Publisher{log: log.WithComponent("events")}
}

// Subscribe registra un suscriptor para los tipos dados (ninguno = todos) y
// devuelve su canal. El buffer amortigua ráfagas; si se llena, se pierden eventos.
func (p *Publisher) Subscribe(buffer int, eventTypes ...string) <-chan ports.Event {
	if buffer <= 0 {
		buffer = 64
	}
	var types map[string]bool
	if len(eventTypes) > 0 {
		types = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			types[t] = true
		}
	}
	ch := make(chan ports.Event, buffer)
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		close(ch)
		return ch
	}
	p.subs = append(p.subs, subscriber{types: types, ch: ch})
	return ch
}

// Publish emite el evento a todos los suscriptores interesados. Jamás bloquea:
// el envío es no bloqueante y el descarte se registra en el log.
func (p *Publisher) Publish(eventType string, payload any) {
	ev := ports.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	for _, sub := range p.subs {
		if sub.types != nil && !sub.types[eventType] {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			p.log.Warn().Str("event_type", eventType).Msg("suscriptor lento: evento descartado")
		}
	}
}

// Close cierra todos los canales de suscriptores. Publicar después es un no-op.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for _, sub := range p.subs {
		close(sub.ch)
	}
	p.subs = nil
}
