package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

func newProduct(id, name string, stock int) *entity.Product {
	now := time.Now().UTC()
	return &entity.Product{
		ID:        id,
		Name:      name,
		Price:     decimal.NewFromInt(100),
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRun_ErrorRestauraElEstado(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Products().Create(newProduct("p1", "Café", 10)))

	boom := errors.New("boom")
	err := store.Run(context.Background(), func(
		products repository.ProductRepository,
		ledger repository.StockLedgerRepository,
	) error {
		require.NoError(t, products.UpdateStock("p1", 3, time.Now().UTC()))
		require.NoError(t, ledger.Create(&entity.StockLedgerEntry{
			ID:        "e1",
			ProductID: "p1",
			Type:      entity.LedgerTypeAdjustment,
			Quantity:  -7,
			Balance:   3,
			CreatedAt: time.Now().UTC(),
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	// Tras el rollback no queda rastro del intento.
	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)

	entries, err := store.Ledger().List(repository.LedgerQuery{ProductID: "p1", Limit: -1})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_ExitoPersisteLosCambios(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Products().Create(newProduct("p1", "Café", 10)))

	err := store.Run(context.Background(), func(
		products repository.ProductRepository,
		ledger repository.StockLedgerRepository,
	) error {
		return products.UpdateStock("p1", 8, time.Now().UTC())
	})
	require.NoError(t, err)

	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 8, p.Stock)
}

func TestRun_ContextoCanceladoNoEntra(t *testing.T) {
	store := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Run(ctx, func(repository.ProductRepository, repository.StockLedgerRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestGetByID_DevuelveCopia(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Products().Create(newProduct("p1", "Café", 10)))

	p, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	p.Stock = 999
	p.Name = "mutado"

	again, err := store.Products().GetByID("p1")
	require.NoError(t, err)
	assert.Equal(t, 10, again.Stock)
	assert.Equal(t, "Café", again.Name)
}

func TestList_BusquedaIgnoraAcentos(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Products().Create(newProduct("p1", "Café en grano", 10)))
	require.NoError(t, store.Products().Create(newProduct("p2", "Té verde", 5)))
	require.NoError(t, store.Products().Create(newProduct("p3", "Azúcar", 0)))

	// "cafe" sin tilde encuentra "Café".
	got, total, err := store.Products().List(repository.ProductQuery{Search: "cafe"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)

	// Y al revés: la aguja con tilde también casa.
	got, _, err = store.Products().List(repository.ProductQuery{Search: "azúcar"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p3", got[0].ID)
}

func TestList_FiltrosYPaginado(t *testing.T) {
	store := NewStore()
	for _, p := range []*entity.Product{
		newProduct("p1", "A", 0),
		newProduct("p2", "B", 3),
		newProduct("p3", "C", 7),
	} {
		require.NoError(t, store.Products().Create(p))
	}

	// Solo con stock.
	got, total, err := store.Products().List(repository.ProductQuery{InStock: true})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, got, 2)

	// Paginado: total cuenta todo lo que casa, la página recorta.
	got, total, err = store.Products().List(repository.ProductQuery{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, got, 1)
	assert.Equal(t, "C", got[0].Name)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "cafe", fold("Café"))
	assert.Equal(t, "azucar", fold("AZÚCAR"))
	assert.Equal(t, "", fold(""))
}
