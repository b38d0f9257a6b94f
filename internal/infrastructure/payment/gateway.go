package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/tu-usuario/retail-pos/internal/application/sale"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/pkg/config"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

var _ sale.PaymentGateway = (*Gateway)(nil)

// Gateway cliente HTTP del colaborador externo de pagos (tarjeta, transferencia,
// PromptPay). Con GatewayURL vacío opera en modo simulado y autoriza todo.
//
// Los reintentos con backoff viven aquí, en la frontera, y solo ante fallos de
// red o 5xx: un rechazo explícito (4xx) jamás se reintenta; el motor de ventas
// tampoco reintenta por su cuenta (riesgo de doble cobro).
type Gateway struct {
	url     string
	client  *http.Client
	retries int
	log     *logger.Logger
}

// NewGateway construye el cliente con la configuración de pagos.
func NewGateway(cfg config.PaymentConfig, log *logger.Logger) *Gateway {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Gateway{
		url:     cfg.GatewayURL,
		client:  &http.Client{Timeout: timeout},
		retries: retries,
		log:     log,
	}
}

type authorizeBody struct {
	Reference string `json:"reference"`
	Method    string `json:"method"`
	Amount    string `json:"amount"`
}

// Authorize solicita la autorización del pago. Devuelve ErrPaymentDeclined en
// rechazo explícito y un error envuelto en fallos de red tras agotar reintentos.
func (g *Gateway) Authorize(ctx context.Context, req sale.PaymentRequest) error {
	if g.url == "" {
		// Modo simulado: sin gateway configurado todo pago delegado se autoriza.
		g.log.Debug().Str("reference", req.Reference).Str("method", req.Method).
			Msg("pago autorizado en modo simulado")
		return nil
	}

	body, err := json.Marshal(authorizeBody{
		Reference: req.Reference,
		Method:    req.Method,
		Amount:    req.Amount.StringFixed(2),
	})
	if err != nil {
		return fmt.Errorf("payment: marshal: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= g.retries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * 500 * time.Millisecond
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/authorize", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("payment: request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		// La clave de idempotencia del gateway es la referencia de la venta:
		// un reintento de red no puede producir un segundo cobro.
		httpReq.Header.Set("Idempotency-Key", req.Reference)

		resp, err := g.client.Do(httpReq)
		if err != nil {
			lastErr = err
			g.log.Warn().Err(err).Int("attempt", attempt+1).Msg("fallo de red contra el gateway de pagos")
			continue
		}
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			// Rechazo explícito: no se reintenta.
			return domain.ErrPaymentDeclined
		default:
			lastErr = fmt.Errorf("gateway status %d", resp.StatusCode)
			g.log.Warn().Int("status", resp.StatusCode).Int("attempt", attempt+1).
				Msg("gateway de pagos respondió 5xx")
		}
	}
	return fmt.Errorf("payment: autorización fallida tras %d intentos: %w", g.retries+1, lastErr)
}
