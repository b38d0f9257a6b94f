package events

import (
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// RunLogSubscriber consume todos los eventos y los escribe en el log estructurado.
// Es el suscriptor por defecto del arranque (sustituye al panel websocket del
// frontend): termina cuando el publisher se cierra.
func RunLogSubscriber(p *Publisher, log *logger.Logger) {
	l := log.WithComponent("event-log")
	ch := p.Subscribe(128)
	go func() {
		for ev := range ch {
			l.Info().
				Str("event_id", ev.ID).
				Str("event_type", ev.Type).
				Time("timestamp", ev.Timestamp).
				Interface("payload", ev.Payload).
				Msg("evento")
		}
	}()
}
