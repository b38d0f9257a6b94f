package sale_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/sale"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// capturePublisher registra los tipos de evento emitidos (thread-safe).
type capturePublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *capturePublisher) Publish(eventType string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, eventType)
}

func (p *capturePublisher) seen(eventType string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, t := range p.types {
		if t == eventType {
			return true
		}
	}
	return false
}

// approveGateway autoriza todo pago delegado.
type approveGateway struct{}

func (approveGateway) Authorize(context.Context, sale.PaymentRequest) error { return nil }

// declineGateway rechaza todo pago delegado.
type declineGateway struct{}

func (declineGateway) Authorize(context.Context, sale.PaymentRequest) error {
	return domain.ErrPaymentDeclined
}

func newEngine(t *testing.T, gw sale.PaymentGateway) (*sale.CommitSaleUseCase, *memory.Store, *capturePublisher) {
	t.Helper()
	store := memory.NewStore()
	events := &capturePublisher{}
	uc := sale.NewCommitSaleUseCase(
		store, store.Products(), store.Members(), store.Sales(), gw, events,
		sale.Thresholds{LowStock: 5, HighValue: decimal.NewFromInt(50000)},
	)
	return uc, store, events
}

func seedProduct(t *testing.T, store *memory.Store, id, name string, price int64, stock int) {
	t.Helper()
	now := time.Now()
	err := store.Products().Create(&entity.Product{
		ID:        id,
		Name:      name,
		Price:     decimal.NewFromInt(price),
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
}

func seedMember(t *testing.T, store *memory.Store, id, phone string, points int) {
	t.Helper()
	now := time.Now()
	err := store.Members().Create(&entity.Member{
		ID:         id,
		Phone:      phone,
		Name:       "Cliente " + id,
		Points:     points,
		TotalSpent: decimal.Zero,
		CreatedAt:  now,
		LastVisit:  now,
	})
	require.NoError(t, err)
}

func cash(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func stockOf(t *testing.T, store *memory.Store, productID string) int {
	t.Helper()
	p, err := store.Products().GetByID(productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func ledgerOf(t *testing.T, store *memory.Store, productID string) []*entity.StockLedgerEntry {
	t.Helper()
	entries, err := store.Ledger().List(repository.LedgerQuery{ProductID: productID, Ascending: true})
	require.NoError(t, err)
	return entries
}

// ──────────────────────────────────────────────────────────────────────────────
// Venta en efectivo: flujo feliz
// ──────────────────────────────────────────────────────────────────────────────

func TestCommitSale_DescuentaStockYEscribeLibro(t *testing.T) {
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Coffee Beans", 100, 5)

	resp, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 3}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(1000),
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(resp.Total), "total = precio x cantidad")

	// Stock vivo y libro se movieron juntos
	assert.Equal(t, 2, stockOf(t, store, "p1"))
	entries := ledgerOf(t, store, "p1")
	require.Len(t, entries, 1)
	assert.Equal(t, entity.LedgerTypeSale, entries[0].Type)
	assert.Equal(t, -3, entries[0].Quantity)
	assert.Equal(t, 2, entries[0].Balance)
	assert.Equal(t, resp.ID, entries[0].Reference)

	// La venta quedó persistida con snapshot de nombre y precio
	persisted, err := store.Sales().GetByID(resp.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	require.Len(t, persisted.Items, 1)
	assert.Equal(t, "Coffee Beans", persisted.Items[0].Name)
}

func TestCommitSale_EfectivoCalculaCambio(t *testing.T) {
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 433, 10)

	resp, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(500),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Change)
	assert.True(t, decimal.NewFromInt(67).Equal(*resp.Change), "cambio = 500 - 433")
}

func TestCommitSale_EfectivoInsuficiente(t *testing.T) {
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 433, 10)

	_, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(400),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientCash)
	assert.Equal(t, 10, stockOf(t, store, "p1"), "un rechazo no muta stock")
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones: stock, puntos, descuento
// ──────────────────────────────────────────────────────────────────────────────

func TestCommitSale_StockInsuficienteNoDejaEfectos(t *testing.T) {
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 100, 2)

	_, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 3}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(1000),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 2, stockOf(t, store, "p1"))
	assert.Empty(t, ledgerOf(t, store, "p1"))
	sales, err := store.Sales().List(nil, nil, -1, 0)
	require.NoError(t, err)
	assert.Empty(t, sales, "un commit fallido no persiste venta")
}

func TestCommitSale_CarritoMixtoFallaCompleto(t *testing.T) {
	// Si una línea no tiene stock, ninguna línea se aplica.
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Con stock", 100, 10)
	seedProduct(t, store, "p2", "Sin stock", 100, 1)

	_, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items: []dto.SaleLineRequest{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 5},
		},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(10000),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 10, stockOf(t, store, "p1"))
	assert.Equal(t, 1, stockOf(t, store, "p2"))
	assert.Empty(t, ledgerOf(t, store, "p1"))
}

func TestCommitSale_PuntosInsuficientes(t *testing.T) {
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 1000, 10)
	seedMember(t, store, "m1", "0810000001", 100)

	_, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(1000),
		MemberID:      "m1",
		PointsToUse:   150,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints)

	m, err := store.Members().GetByID("m1")
	require.NoError(t, err)
	assert.Equal(t, 100, m.Points, "los puntos no se tocan en un commit fallido")
	assert.Equal(t, 10, stockOf(t, store, "p1"))
}

func TestCommitSale_RedimirMasQueElMontoPagable(t *testing.T) {
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 100, 10)
	seedMember(t, store, "m1", "0810000001", 500)

	_, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(1000),
		MemberID:      "m1",
		PointsToUse:   200,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientPoints, "el total jamás se recorta a cero en silencio")
}

func TestCommitSale_DescuentoInvalido(t *testing.T) {
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 100, 10)

	neg := decimal.NewFromInt(-10)
	_, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		Discount:      neg,
		CashReceived:  cash(1000),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount)

	_, err = uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		Discount:      decimal.NewFromInt(500),
		CashReceived:  cash(1000),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDiscount, "descuento mayor al subtotal")
}

func TestCommitSale_ProductoYMiembroInexistentes(t *testing.T) {
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 100, 10)

	_, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "fantasma", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(1000),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(1000),
		MemberPhone:   "0899999999",
	})
	assert.ErrorIs(t, err, domain.ErrMemberNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Programa de puntos
// ──────────────────────────────────────────────────────────────────────────────

func TestCommitSale_AcreditaYDebitaPuntos(t *testing.T) {
	uc, store, events := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 433, 10)
	seedMember(t, store, "m1", "0810000001", 100)

	resp, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(500),
		MemberPhone:   "0810000001",
		PointsToUse:   33,
	})
	require.NoError(t, err)

	// total = 433 - 33 = 400; ganados = floor(400/20) = 20
	assert.True(t, decimal.NewFromInt(400).Equal(resp.Total))
	assert.Equal(t, 33, resp.PointsUsed)
	assert.Equal(t, 20, resp.PointsEarned)

	m, err := store.Members().GetByID("m1")
	require.NoError(t, err)
	assert.Equal(t, 100-33+20, m.Points)
	assert.True(t, decimal.NewFromInt(400).Equal(m.TotalSpent))
	assert.True(t, events.seen("member-points-changed"))
}

func TestCommitSale_VentaSinMiembroNoGanaPuntos(t *testing.T) {
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 400, 10)

	resp, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(400),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.PointsEarned)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pago delegado
// ──────────────────────────────────────────────────────────────────────────────

func TestCommitSale_PagoRechazadoNoDejaEfectos(t *testing.T) {
	uc, store, _ := newEngine(t, declineGateway{})
	seedProduct(t, store, "p1", "Producto", 100, 10)

	_, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: entity.PaymentMethodCard,
	})
	assert.ErrorIs(t, err, domain.ErrPaymentDeclined)
	assert.Equal(t, 10, stockOf(t, store, "p1"))
	assert.Empty(t, ledgerOf(t, store, "p1"))
}

func TestCommitSale_PagoDelegadoAutorizado(t *testing.T) {
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 100, 10)

	resp, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: entity.PaymentMethodPromptPay,
	})
	require.NoError(t, err)
	assert.Nil(t, resp.CashReceived, "pago delegado no maneja efectivo")
	assert.Equal(t, 8, stockOf(t, store, "p1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Eventos
// ──────────────────────────────────────────────────────────────────────────────

func TestCommitSale_EventosPorFlanco(t *testing.T) {
	uc, store, events := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 100, 6)

	// 6 -> 4 cruza el umbral (5): alerta
	_, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 2}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(1000),
	})
	require.NoError(t, err)
	assert.True(t, events.seen("new-sale"))
	assert.True(t, events.seen("low-stock-alert"))

	// 4 -> 3 ya estaba bajo el umbral: sin nueva alerta
	before := len(events.types)
	_, err = uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(1000),
	})
	require.NoError(t, err)
	for _, typ := range events.types[before:] {
		assert.NotEqual(t, "low-stock-alert", typ, "la alerta es por flanco, no por nivel")
	}
}

func TestCommitSale_VentaDeAltoValor(t *testing.T) {
	uc, store, events := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "MacBook", 89900, 5)

	_, err := uc.CommitSale(context.Background(), "u1", "cajero", dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(100000),
	})
	require.NoError(t, err)
	assert.True(t, events.seen("high-value-sale"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Idempotencia y concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCommitSale_ReenvioIdempotente(t *testing.T) {
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Producto", 100, 10)

	req := dto.CommitSaleRequest{
		Items:          []dto.SaleLineRequest{{ProductID: "p1", Quantity: 3}},
		PaymentMethod:  entity.PaymentMethodCash,
		CashReceived:   cash(1000),
		IdempotencyKey: "clave-unica-1",
	}
	first, err := uc.CommitSale(context.Background(), "u1", "cajero", req)
	require.NoError(t, err)
	second, err := uc.CommitSale(context.Background(), "u1", "cajero", req)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "misma clave = misma venta")
	assert.Equal(t, 7, stockOf(t, store, "p1"), "el stock se descuenta una sola vez")
	require.Len(t, ledgerOf(t, store, "p1"), 1)
}

func TestCommitSale_ConcurrenciaUltimaUnidad(t *testing.T) {
	// Dos commits simultáneos por la última unidad: exactamente uno gana.
	uc, store, _ := newEngine(t, approveGateway{})
	seedProduct(t, store, "p1", "Última unidad", 100, 1)

	req := dto.CommitSaleRequest{
		Items:         []dto.SaleLineRequest{{ProductID: "p1", Quantity: 1}},
		PaymentMethod: entity.PaymentMethodCash,
		CashReceived:  cash(1000),
	}
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CommitSale(context.Background(), "u1", "cajero", req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, outOfStock int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			outOfStock++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactamente un commit gana")
	assert.Equal(t, 1, outOfStock, "el otro recibe stock insuficiente")

	assert.Equal(t, 0, stockOf(t, store, "p1"))
	require.Len(t, ledgerOf(t, store, "p1"), 1, "una sola entrada de libro")
	sales, err := store.Sales().List(nil, nil, -1, 0)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}
