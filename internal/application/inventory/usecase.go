package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/ports"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// LedgerUseCase expone el libro de movimientos: registrar ajustes manuales,
// saldo por producto, historial y verificación de conciliación.
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	ledgerRepo  repository.StockLedgerRepository
	events      ports.EventPublisher
	lowStock    int
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
	events ports.EventPublisher,
	lowStockThreshold int,
) *LedgerUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		ledgerRepo:  ledgerRepo,
		events:      events,
		lowStock:    lowStockThreshold,
	}
}

// RecordAdjustment registra un movimiento manual (adjustment, return o damage)
// con bloqueo de fila: actualiza stock y escribe la entrada en la misma transacción.
// Un movimiento que dejaría el stock negativo se rechaza sin efecto alguno.
func (uc *LedgerUseCase) RecordAdjustment(ctx context.Context, actorID string, in dto.AdjustStockRequest) (*dto.LedgerEntryResponse, error) {
	switch in.Type {
	case entity.LedgerTypeAdjustment, entity.LedgerTypeReturn, entity.LedgerTypeDamage:
	default:
		return nil, domain.ErrInvalidInput
	}
	if in.ProductID == "" || in.Quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.LedgerTypeReturn && in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type == entity.LedgerTypeDamage && in.Quantity > 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	reference := in.Reference
	if reference == "" {
		reference = "ADJ-" + uuid.New().String()
	}

	var entry *entity.StockLedgerEntry
	var hit *ports.LowStockPayload
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		newStock := product.Stock + in.Quantity
		if newStock < 0 {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(in.ProductID, newStock, now); err != nil {
			return err
		}
		entry = &entity.StockLedgerEntry{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			Type:      in.Type,
			Quantity:  in.Quantity,
			Balance:   newStock,
			Reference: reference,
			CreatedBy: actorID,
			CreatedAt: now,
		}
		if product.Stock > uc.lowStock && newStock <= uc.lowStock {
			hit = &ports.LowStockPayload{
				ProductID:   product.ID,
				ProductName: product.Name,
				Stock:       newStock,
				Threshold:   uc.lowStock,
			}
		}
		return ledgerRepo.Create(entry)
	})
	if err != nil {
		return nil, err
	}
	if hit != nil {
		uc.events.Publish(ports.EventLowStockAlert, *hit)
	}
	return dto.LedgerEntryToResponse(entry), nil
}

// BalanceOf devuelve el saldo del libro para un producto (suma de sus entradas).
func (uc *LedgerUseCase) BalanceOf(productID string) (int, error) {
	return uc.ledgerRepo.SumQuantity(productID)
}

// History devuelve el historial de movimientos según filtros, paginado.
func (uc *LedgerUseCase) History(q repository.LedgerQuery) ([]*dto.LedgerEntryResponse, error) {
	entries, err := uc.ledgerRepo.List(q)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryToResponse(e))
	}
	return out, nil
}

// VerifyProduct comprueba el invariante de conciliación de un producto:
// reproducir el libro completo en orden de creación debe reconstruir cada
// Balance intermedio y terminar exactamente en el stock vivo. El libro es la
// auditoría; el campo Stock es el caché. Cualquier divergencia es
// ErrInconsistency y jamás se corrige en silencio.
func (uc *LedgerUseCase) VerifyProduct(productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	entries, err := uc.ledgerRepo.List(repository.LedgerQuery{
		ProductID: productID,
		Ascending: true,
		Limit:     -1, // sin paginar: el replay necesita el libro completo
	})
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		// Sin movimientos el stock de alta del catálogo es el único estado.
		return nil
	}
	// El stock previo al primer movimiento se reconstruye desde su snapshot.
	running := entries[0].Balance - entries[0].Quantity
	for _, e := range entries {
		running += e.Quantity
		if running != e.Balance {
			return domain.ErrInconsistency
		}
	}
	if running != product.Stock {
		return domain.ErrInconsistency
	}
	return nil
}
