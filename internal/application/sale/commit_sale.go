package sale

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/ports"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/loyalty"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Thresholds umbrales de negocio del motor (entrada de configuración, no constantes).
type Thresholds struct {
	LowStock  int             // low-stock-alert al cruzar este umbral hacia abajo
	HighValue decimal.Decimal // high-value-sale cuando total >= umbral
}

// CommitSaleUseCase confirma una venta: valida todo antes de mutar, espera la
// autorización del pago delegado y aplica stock + libro + puntos + venta en una
// sola transacción. Tras el commit emite eventos fire-and-forget.
type CommitSaleUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	memberRepo  repository.MemberRepository
	saleRepo    repository.SaleRepository
	gateway     PaymentGateway
	events      ports.EventPublisher
	thresholds  Thresholds
}

// NewCommitSaleUseCase construye el caso de uso.
func NewCommitSaleUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	memberRepo repository.MemberRepository,
	saleRepo repository.SaleRepository,
	gateway PaymentGateway,
	events ports.EventPublisher,
	thresholds Thresholds,
) *CommitSaleUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &CommitSaleUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		memberRepo:  memberRepo,
		saleRepo:    saleRepo,
		gateway:     gateway,
		events:      events,
		thresholds:  thresholds,
	}
}

// lowStockHit producto que cruzó el umbral durante el apply (para alerta por flanco).
type lowStockHit struct {
	productID string
	name      string
	stock     int
}

// CommitSale valida el carrito, cobra y aplica la venta de forma atómica.
// Toda precondición se verifica antes de cualquier mutación; el stock y los puntos
// se releen bajo bloqueo de fila dentro de la transacción (nunca desde el snapshot
// del carrito) para impedir sobreventa bajo concurrencia.
func (uc *CommitSaleUseCase) CommitSale(ctx context.Context, cashierID, cashierName string, in dto.CommitSaleRequest) (*dto.SaleResponse, error) {
	// Reenvío idempotente: misma clave = misma venta, sin aplicar dos veces.
	if in.IdempotencyKey != "" {
		if existing, err := uc.saleRepo.GetByIdempotencyKey(in.IdempotencyKey); err != nil {
			return nil, err
		} else if existing != nil {
			return dto.SaleToResponse(existing), nil
		}
	}

	// Validaciones de forma (carrito, método, signos)
	if len(in.Items) == 0 || !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	if in.PointsToUse < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() {
		return nil, domain.ErrInvalidDiscount
	}

	// Snapshot de catálogo (solo lectura, fuera de la tx): nombre y precio se
	// capturan aquí para que cambios posteriores no alteren la venta histórica.
	productsByID := make(map[string]*entity.Product, len(in.Items))
	subtotal := decimal.Zero
	for _, line := range in.Items {
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		// Rechazo temprano con lectura fresca; la verificación definitiva es bajo lock.
		if line.Quantity > product.Stock {
			return nil, domain.ErrInsufficientStock
		}
		productsByID[line.ProductID] = product
		subtotal = subtotal.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if in.Discount.GreaterThan(subtotal) {
		return nil, domain.ErrInvalidDiscount
	}

	// Miembro (opcional); obligatorio si se quieren redimir puntos.
	var member *entity.Member
	if in.MemberID != "" || in.MemberPhone != "" {
		var err error
		if in.MemberID != "" {
			member, err = uc.memberRepo.GetByID(in.MemberID)
		} else {
			member, err = uc.memberRepo.GetByPhone(in.MemberPhone)
		}
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, domain.ErrMemberNotFound
		}
	}
	if in.PointsToUse > 0 {
		if member == nil {
			return nil, domain.ErrMemberNotFound
		}
		if in.PointsToUse > member.Points {
			return nil, domain.ErrInsufficientPoints
		}
	}

	// total = subtotal - descuento - puntos; nunca se recorta a cero en silencio:
	// redimir más puntos que el monto pagable es violación de precondición.
	payable := subtotal.Sub(in.Discount)
	pointsValue := loyalty.RedemptionValue(in.PointsToUse)
	if pointsValue.GreaterThan(payable) {
		return nil, domain.ErrInsufficientPoints
	}
	total := payable.Sub(pointsValue)
	pointsEarned := 0
	if member != nil {
		pointsEarned = loyalty.PointsEarned(total)
	}

	// Liquidación del pago antes del apply.
	var cashReceived, change *decimal.Decimal
	if in.PaymentMethod == entity.PaymentMethodCash {
		if in.CashReceived == nil || in.CashReceived.LessThan(total) {
			return nil, domain.ErrInsufficientCash
		}
		c := in.CashReceived.Sub(total)
		cashReceived, change = in.CashReceived, &c
	}

	now := time.Now()
	saleID := uuid.New().String()

	if entity.DelegatedPaymentMethod(in.PaymentMethod) {
		// El colaborador externo debe autorizar antes de mutar nada; el ctx del
		// caller acota la espera y un timeout aborta sin estado parcial.
		if err := uc.gateway.Authorize(ctx, PaymentRequest{
			Reference: saleID,
			Method:    in.PaymentMethod,
			Amount:    total,
		}); err != nil {
			return nil, err
		}
	}

	newSale := &entity.Sale{
		ID:             saleID,
		Subtotal:       subtotal,
		Discount:       in.Discount,
		Total:          total,
		PaymentMethod:  in.PaymentMethod,
		CashierID:      cashierID,
		CashierName:    cashierName,
		PointsUsed:     in.PointsToUse,
		PointsEarned:   pointsEarned,
		CashReceived:   cashReceived,
		Change:         change,
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      now,
	}
	if member != nil {
		newSale.MemberID = member.ID
		newSale.MemberPhone = member.Phone
	}
	for _, line := range in.Items {
		p := productsByID[line.ProductID]
		newSale.Items = append(newSale.Items, entity.SaleItem{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
		})
	}

	// Orden estable de bloqueo por producto para evitar interbloqueos entre commits.
	lines := make([]entity.SaleItem, len(newSale.Items))
	copy(lines, newSale.Items)
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	var lowStockHits []lowStockHit
	var memberAfter *entity.Member

	// Fase de apply: una sola transacción; cualquier error hace rollback completo.
	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		ledgerRepo repository.StockLedgerRepository,
		memberRepo repository.MemberRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, line := range lines {
			product, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			// Verificación definitiva con la fila bloqueada: el stock jamás baja de cero.
			if line.Quantity > product.Stock {
				return domain.ErrInsufficientStock
			}
			prevStock := product.Stock
			newStock := prevStock - line.Quantity
			if err := productRepo.UpdateStock(line.ProductID, newStock, now); err != nil {
				return err
			}
			if err := ledgerRepo.Create(&entity.StockLedgerEntry{
				ID:        uuid.New().String(),
				ProductID: line.ProductID,
				Type:      entity.LedgerTypeSale,
				Quantity:  -line.Quantity,
				Balance:   newStock,
				Reference: saleID,
				CreatedBy: cashierID,
				CreatedAt: now,
			}); err != nil {
				return err
			}
			if prevStock > uc.thresholds.LowStock && newStock <= uc.thresholds.LowStock {
				lowStockHits = append(lowStockHits, lowStockHit{
					productID: product.ID,
					name:      product.Name,
					stock:     newStock,
				})
			}
		}

		if member != nil {
			locked, err := memberRepo.GetForUpdate(member.ID)
			if err != nil {
				return err
			}
			if locked == nil {
				return domain.ErrMemberNotFound
			}
			// Re-chequeo bajo lock: un commit concurrente pudo gastar los puntos.
			if in.PointsToUse > locked.Points {
				return domain.ErrInsufficientPoints
			}
			locked.Points = locked.Points - in.PointsToUse + pointsEarned
			locked.TotalSpent = locked.TotalSpent.Add(total)
			locked.LastVisit = now
			if err := memberRepo.Update(locked); err != nil {
				return err
			}
			memberAfter = locked
		}

		return saleRepo.Create(newSale)
	})
	if err != nil {
		return nil, err
	}

	uc.publishPostCommit(newSale, memberAfter, lowStockHits)

	return dto.SaleToResponse(newSale), nil
}

// publishPostCommit emite los eventos de la venta ya confirmada. Nunca bloquea
// ni falla el commit: el publisher descarta si ningún consumidor alcanza.
func (uc *CommitSaleUseCase) publishPostCommit(s *entity.Sale, member *entity.Member, hits []lowStockHit) {
	payload := ports.NewSalePayload{
		SaleID:        s.ID,
		Total:         s.Total.StringFixed(2),
		PaymentMethod: s.PaymentMethod,
		CashierID:     s.CashierID,
	}
	uc.events.Publish(ports.EventNewSale, payload)
	if !uc.thresholds.HighValue.IsZero() && s.Total.GreaterThanOrEqual(uc.thresholds.HighValue) {
		uc.events.Publish(ports.EventHighValueSale, payload)
	}
	for _, hit := range hits {
		uc.events.Publish(ports.EventLowStockAlert, ports.LowStockPayload{
			ProductID:   hit.productID,
			ProductName: hit.name,
			Stock:       hit.stock,
			Threshold:   uc.thresholds.LowStock,
		})
	}
	if member != nil {
		uc.events.Publish(ports.EventMemberPointsChanged, ports.MemberPointsPayload{
			MemberID:     member.ID,
			PointsUsed:   s.PointsUsed,
			PointsEarned: s.PointsEarned,
			Points:       member.Points,
		})
	}
}

// ListSales lista ventas por rango de fechas (límites inclusivos), más reciente primero.
func (uc *CommitSaleUseCase) ListSales(from, to *time.Time, limit, offset int) ([]*dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.SaleToResponse(s))
	}
	return out, nil
}

// GetSale obtiene una venta por id.
func (uc *CommitSaleUseCase) GetSale(id string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return dto.SaleToResponse(s), nil
}
