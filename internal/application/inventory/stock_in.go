package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// StockInUseCase maneja los documentos de entrada de mercancía.
// Un documento en draft es solo papel: no toca stock ni libro. Completarlo
// aplica exactamente una entrada purchase por línea, una sola vez.
type StockInUseCase struct {
	txRunner    TxRunner
	stockInRepo repository.StockInRepository
	productRepo repository.ProductRepository
}

// NewStockInUseCase construye el caso de uso.
func NewStockInUseCase(
	txRunner TxRunner,
	stockInRepo repository.StockInRepository,
	productRepo repository.ProductRepository,
) *StockInUseCase {
	return &StockInUseCase{
		txRunner:    txRunner,
		stockInRepo: stockInRepo,
		productRepo: productRepo,
	}
}

// CreateDocument crea un documento de entrada en draft. Si in.Complete es true
// lo completa en la misma llamada, ya con el documento persistido.
func (uc *StockInUseCase) CreateDocument(ctx context.Context, actorID string, in dto.CreateStockInRequest) (*dto.StockInResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.UnitCost.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	// Validación temprana de catálogo: un draft con productos fantasma no sirve de nada.
	for _, it := range in.Items {
		p, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrNotFound
		}
	}

	doc := &entity.StockInDocument{
		ID:             uuid.New().String(),
		DocumentNumber: in.DocumentNumber,
		SupplierID:     in.SupplierID,
		Items:          make([]entity.StockInItem, 0, len(in.Items)),
		Status:         entity.StockInStatusDraft,
		CreatedBy:      actorID,
		CreatedAt:      time.Now().UTC(),
	}
	if doc.DocumentNumber == "" {
		doc.DocumentNumber = "SI-" + doc.CreatedAt.Format("20060102-150405")
	}
	for _, it := range in.Items {
		doc.Items = append(doc.Items, entity.StockInItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}

	if err := uc.stockInRepo.Create(doc); err != nil {
		return nil, err
	}
	if in.Complete {
		return uc.CompleteDocument(ctx, actorID, doc.ID)
	}
	return dto.StockInToResponse(doc), nil
}

// CompleteDocument ejecuta la transición draft -> completed dentro de una
// transacción: bloquea el documento, incrementa stock y escribe una entrada
// purchase por línea. Un documento ya completado devuelve ErrConflict; la
// transición inversa no existe.
func (uc *StockInUseCase) CompleteDocument(ctx context.Context, actorID string, docID string) (*dto.StockInResponse, error) {
	var completed *entity.StockInDocument
	err := uc.txRunner.RunStockIn(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
		stockInRepo repository.StockInRepository,
	) error {
		doc, err := stockInRepo.GetForUpdate(docID)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Status == entity.StockInStatusCompleted {
			return domain.ErrConflict
		}

		// Orden estable de bloqueo de productos, el mismo que usa la venta.
		items := make([]entity.StockInItem, len(doc.Items))
		copy(items, doc.Items)
		sort.SliceStable(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

		now := time.Now().UTC()
		for _, it := range items {
			p, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			newStock := p.Stock + it.Quantity
			if err := productRepo.UpdateStock(p.ID, newStock, now); err != nil {
				return err
			}
			if err := ledgerRepo.Create(&entity.StockLedgerEntry{
				ID:        uuid.New().String(),
				ProductID: p.ID,
				Type:      entity.LedgerTypePurchase,
				Quantity:  it.Quantity,
				Balance:   newStock,
				Reference: doc.ID,
				CreatedBy: actorID,
				CreatedAt: now,
			}); err != nil {
				return err
			}
		}

		doc.Status = entity.StockInStatusCompleted
		doc.CompletedAt = &now
		if err := stockInRepo.MarkCompleted(doc); err != nil {
			return err
		}
		completed = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.StockInToResponse(completed), nil
}

// GetDocument devuelve un documento por id.
func (uc *StockInUseCase) GetDocument(docID string) (*dto.StockInResponse, error) {
	doc, err := uc.stockInRepo.GetByID(docID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return dto.StockInToResponse(doc), nil
}

// ListDocuments lista documentos, más recientes primero.
func (uc *StockInUseCase) ListDocuments(page dto.PageRequest) ([]*dto.StockInResponse, error) {
	limit, offset := page.LimitOffset()
	docs, err := uc.stockInRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.StockInResponse, 0, len(docs))
	for _, d := range docs {
		out = append(out, dto.StockInToResponse(d))
	}
	return out, nil
}
