package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
)

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

func (p *capturePublisher) count(eventType string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, t := range p.types {
		if t == eventType {
			n++
		}
	}
	return n
}

func newLedgerUC(t *testing.T, lowStock int) (*inventory.LedgerUseCase, *memory.Store, *capturePublisher) {
	t.Helper()
	store := memory.NewStore()
	pub := &capturePublisher{}
	uc := inventory.NewLedgerUseCase(store, store.Products(), store.Ledger(), pub, lowStock)
	return uc, store, pub
}

func seedProduct(t *testing.T, store *memory.Store, id string, stock int) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, store.Products().Create(&entity.Product{
		ID:        id,
		Name:      "Producto " + id,
		Price:     decimal.NewFromInt(100),
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func stockOf(t *testing.T, store *memory.Store, id string) int {
	t.Helper()
	p, err := store.Products().GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func ledgerOf(t *testing.T, store *memory.Store, id string) []*entity.StockLedgerEntry {
	t.Helper()
	entries, err := store.Ledger().List(repository.LedgerQuery{ProductID: id, Ascending: true, Limit: -1})
	require.NoError(t, err)
	return entries
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes manuales
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordAdjustment_AplicaYEscribeLibro(t *testing.T) {
	uc, store, _ := newLedgerUC(t, 0)
	seedProduct(t, store, "p1", 10)

	resp, err := uc.RecordAdjustment(context.Background(), "user-1", dto.AdjustStockRequest{
		ProductID: "p1",
		Type:      entity.LedgerTypeAdjustment,
		Quantity:  5,
		Reference: "conteo físico",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, resp.Balance)
	assert.Equal(t, 15, stockOf(t, store, "p1"))

	entries := ledgerOf(t, store, "p1")
	require.Len(t, entries, 1)
	assert.Equal(t, entity.LedgerTypeAdjustment, entries[0].Type)
	assert.Equal(t, 5, entries[0].Quantity)
	assert.Equal(t, 15, entries[0].Balance)
	assert.Equal(t, "conteo físico", entries[0].Reference)
	assert.Equal(t, "user-1", entries[0].CreatedBy)
}

func TestRecordAdjustment_ValidaTipoYSigno(t *testing.T) {
	uc, store, _ := newLedgerUC(t, 0)
	seedProduct(t, store, "p1", 10)

	casos := []dto.AdjustStockRequest{
		{ProductID: "p1", Type: entity.LedgerTypeSale, Quantity: -1},     // sale no es manual
		{ProductID: "p1", Type: entity.LedgerTypePurchase, Quantity: 1},  // purchase tampoco
		{ProductID: "p1", Type: "inventado", Quantity: 1},                // tipo desconocido
		{ProductID: "p1", Type: entity.LedgerTypeReturn, Quantity: -2},   // devolución negativa
		{ProductID: "p1", Type: entity.LedgerTypeDamage, Quantity: 3},    // merma positiva
		{ProductID: "p1", Type: entity.LedgerTypeAdjustment, Quantity: 0},
		{ProductID: "", Type: entity.LedgerTypeAdjustment, Quantity: 1},
	}
	for _, c := range casos {
		_, err := uc.RecordAdjustment(context.Background(), "user-1", c)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %+v", c)
	}

	// Nada de eso debió tocar stock ni libro.
	assert.Equal(t, 10, stockOf(t, store, "p1"))
	assert.Empty(t, ledgerOf(t, store, "p1"))
}

func TestRecordAdjustment_NoDejaStockNegativo(t *testing.T) {
	uc, store, _ := newLedgerUC(t, 0)
	seedProduct(t, store, "p1", 3)

	_, err := uc.RecordAdjustment(context.Background(), "user-1", dto.AdjustStockRequest{
		ProductID: "p1",
		Type:      entity.LedgerTypeDamage,
		Quantity:  -5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 3, stockOf(t, store, "p1"))
	assert.Empty(t, ledgerOf(t, store, "p1"))
}

func TestRecordAdjustment_ProductoInexistente(t *testing.T) {
	uc, _, _ := newLedgerUC(t, 0)

	_, err := uc.RecordAdjustment(context.Background(), "user-1", dto.AdjustStockRequest{
		ProductID: "fantasma",
		Type:      entity.LedgerTypeAdjustment,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordAdjustment_AlertaDeStockBajoPorFlanco(t *testing.T) {
	uc, store, pub := newLedgerUC(t, 5)
	seedProduct(t, store, "p1", 7)

	// 7 -> 4 cruza el umbral: una alerta.
	_, err := uc.RecordAdjustment(context.Background(), "user-1", dto.AdjustStockRequest{
		ProductID: "p1", Type: entity.LedgerTypeDamage, Quantity: -3,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pub.count("low-stock-alert"))

	// 4 -> 2 ya estaba bajo el umbral: sin nueva alerta.
	_, err = uc.RecordAdjustment(context.Background(), "user-1", dto.AdjustStockRequest{
		ProductID: "p1", Type: entity.LedgerTypeDamage, Quantity: -2,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, pub.count("low-stock-alert"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Saldo y verificación de conciliación
// ──────────────────────────────────────────────────────────────────────────────

func TestBalanceOf_SumaDelLibro(t *testing.T) {
	uc, store, _ := newLedgerUC(t, 0)
	seedProduct(t, store, "p1", 10)

	_, err := uc.RecordAdjustment(context.Background(), "u", dto.AdjustStockRequest{
		ProductID: "p1", Type: entity.LedgerTypeReturn, Quantity: 4,
	})
	require.NoError(t, err)
	_, err = uc.RecordAdjustment(context.Background(), "u", dto.AdjustStockRequest{
		ProductID: "p1", Type: entity.LedgerTypeDamage, Quantity: -1,
	})
	require.NoError(t, err)

	sum, err := uc.BalanceOf("p1")
	require.NoError(t, err)
	assert.Equal(t, 3, sum)
}

func TestVerifyProduct_Consistente(t *testing.T) {
	uc, store, _ := newLedgerUC(t, 0)
	seedProduct(t, store, "p1", 10)

	for _, q := range []int{5, -3, 2} {
		tipo := entity.LedgerTypeReturn
		if q < 0 {
			tipo = entity.LedgerTypeDamage
		}
		_, err := uc.RecordAdjustment(context.Background(), "u", dto.AdjustStockRequest{
			ProductID: "p1", Type: tipo, Quantity: q,
		})
		require.NoError(t, err)
	}

	assert.NoError(t, uc.VerifyProduct("p1"))
}

func TestVerifyProduct_LibroVacio(t *testing.T) {
	uc, store, _ := newLedgerUC(t, 0)
	seedProduct(t, store, "p1", 10)

	// El stock de alta sin movimientos es consistente por definición.
	assert.NoError(t, uc.VerifyProduct("p1"))
	assert.ErrorIs(t, uc.VerifyProduct("fantasma"), domain.ErrNotFound)
}

func TestVerifyProduct_DetectaStockManipulado(t *testing.T) {
	uc, store, _ := newLedgerUC(t, 0)
	seedProduct(t, store, "p1", 10)

	_, err := uc.RecordAdjustment(context.Background(), "u", dto.AdjustStockRequest{
		ProductID: "p1", Type: entity.LedgerTypeReturn, Quantity: 2,
	})
	require.NoError(t, err)
	require.NoError(t, uc.VerifyProduct("p1"))

	// Mutación directa del stock sin entrada de libro: el replay debe delatarla.
	require.NoError(t, store.Products().UpdateStock("p1", 99, time.Now().UTC()))
	assert.ErrorIs(t, uc.VerifyProduct("p1"), domain.ErrInconsistency)
}

func TestVerifyProduct_DetectaBalanceCorrupto(t *testing.T) {
	uc, store, _ := newLedgerUC(t, 0)
	seedProduct(t, store, "p1", 10)

	// Entrada escrita a mano con un Balance que no cuadra con la cadena.
	require.NoError(t, store.Ledger().Create(&entity.StockLedgerEntry{
		ID:        "e1",
		ProductID: "p1",
		Type:      entity.LedgerTypeAdjustment,
		Quantity:  2,
		Balance:   12,
		CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, store.Ledger().Create(&entity.StockLedgerEntry{
		ID:        "e2",
		ProductID: "p1",
		Type:      entity.LedgerTypeAdjustment,
		Quantity:  1,
		Balance:   20, // debería ser 13
		CreatedAt: time.Now().UTC().Add(time.Second),
	}))

	assert.ErrorIs(t, uc.VerifyProduct("p1"), domain.ErrInconsistency)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos de entrada de mercancía
// ──────────────────────────────────────────────────────────────────────────────

func newStockInUC(t *testing.T) (*inventory.StockInUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := inventory.NewStockInUseCase(store, store.StockIns(), store.Products())
	return uc, store
}

func TestStockIn_DraftNoTocaStock(t *testing.T) {
	uc, store := newStockInUC(t)
	seedProduct(t, store, "p1", 5)

	doc, err := uc.CreateDocument(context.Background(), "user-1", dto.CreateStockInRequest{
		SupplierID: "sup-1",
		Items: []dto.StockInItemRequest{
			{ProductID: "p1", Quantity: 10, UnitCost: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StockInStatusDraft, doc.Status)
	assert.NotEmpty(t, doc.DocumentNumber)
	assert.Nil(t, doc.CompletedAt)

	// Un draft es solo papel.
	assert.Equal(t, 5, stockOf(t, store, "p1"))
	assert.Empty(t, ledgerOf(t, store, "p1"))
}

func TestStockIn_CompletarAplicaUnaSolaVez(t *testing.T) {
	uc, store := newStockInUC(t)
	seedProduct(t, store, "p1", 5)
	seedProduct(t, store, "p2", 0)

	doc, err := uc.CreateDocument(context.Background(), "user-1", dto.CreateStockInRequest{
		Items: []dto.StockInItemRequest{
			{ProductID: "p2", Quantity: 3, UnitCost: decimal.NewFromInt(10)},
			{ProductID: "p1", Quantity: 10, UnitCost: decimal.NewFromInt(40)},
		},
	})
	require.NoError(t, err)

	completed, err := uc.CompleteDocument(context.Background(), "user-1", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StockInStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)

	assert.Equal(t, 15, stockOf(t, store, "p1"))
	assert.Equal(t, 3, stockOf(t, store, "p2"))

	entries := ledgerOf(t, store, "p1")
	require.Len(t, entries, 1)
	assert.Equal(t, entity.LedgerTypePurchase, entries[0].Type)
	assert.Equal(t, 10, entries[0].Quantity)
	assert.Equal(t, 15, entries[0].Balance)
	assert.Equal(t, doc.ID, entries[0].Reference)

	// Completar dos veces no re-aplica: la transición es de una sola vía.
	_, err = uc.CompleteDocument(context.Background(), "user-1", doc.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 15, stockOf(t, store, "p1"))
	assert.Len(t, ledgerOf(t, store, "p1"), 1)
}

func TestStockIn_CrearYCompletarEnUnaLlamada(t *testing.T) {
	uc, store := newStockInUC(t)
	seedProduct(t, store, "p1", 1)

	doc, err := uc.CreateDocument(context.Background(), "user-1", dto.CreateStockInRequest{
		Items: []dto.StockInItemRequest{
			{ProductID: "p1", Quantity: 4, UnitCost: decimal.NewFromInt(25)},
		},
		Complete: true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StockInStatusCompleted, doc.Status)
	assert.Equal(t, 5, stockOf(t, store, "p1"))
}

func TestStockIn_ValidaEntradas(t *testing.T) {
	uc, store := newStockInUC(t)
	seedProduct(t, store, "p1", 5)

	casos := []dto.CreateStockInRequest{
		{Items: nil}, // sin líneas
		{Items: []dto.StockInItemRequest{{ProductID: "", Quantity: 1}}},
		{Items: []dto.StockInItemRequest{{ProductID: "p1", Quantity: 0}}},
		{Items: []dto.StockInItemRequest{{ProductID: "p1", Quantity: -2}}},
		{Items: []dto.StockInItemRequest{{ProductID: "p1", Quantity: 1, UnitCost: decimal.NewFromInt(-1)}}},
	}
	for _, c := range casos {
		_, err := uc.CreateDocument(context.Background(), "user-1", c)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %+v", c)
	}

	// Producto fantasma: rechazado antes de persistir el draft.
	_, err := uc.CreateDocument(context.Background(), "user-1", dto.CreateStockInRequest{
		Items: []dto.StockInItemRequest{{ProductID: "nope", Quantity: 1, UnitCost: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	docs, err := uc.ListDocuments(dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestStockIn_CompletarDocumentoInexistente(t *testing.T) {
	uc, _ := newStockInUC(t)

	_, err := uc.CompleteDocument(context.Background(), "user-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
