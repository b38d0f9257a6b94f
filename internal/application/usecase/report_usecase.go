package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// ReportUseCase arma el dashboard y los reportes de ventas e inventario.
// Todo es lectura: los reportes jamás mutan estado.
type ReportUseCase struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	lowStock    int
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, lowStockThreshold int) *ReportUseCase {
	return &ReportUseCase{saleRepo: saleRepo, productRepo: productRepo, lowStock: lowStockThreshold}
}

// DashboardStats métricas del día en curso (medianoche local a ahora).
func (uc *ReportUseCase) DashboardStats() (*dto.DashboardStatsResponse, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sales, err := uc.saleRepo.List(&from, &now, -1, 0)
	if err != nil {
		return nil, err
	}
	revenue := decimal.Zero
	for _, s := range sales {
		revenue = revenue.Add(s.Total)
	}

	products, total, err := uc.productRepo.List(repository.ProductQuery{Limit: -1})
	if err != nil {
		return nil, err
	}
	outOfStock := 0
	for _, p := range products {
		if p.Stock == 0 {
			outOfStock++
		}
	}
	return &dto.DashboardStatsResponse{
		TodayRevenue:    revenue,
		TodaySalesCount: len(sales),
		OutOfStockCount: outOfStock,
		TotalProducts:   total,
	}, nil
}

// SalesReport ventas en el rango [from, to] con agregados.
func (uc *ReportUseCase) SalesReport(from, to *time.Time) (*dto.SalesReportResponse, error) {
	sales, err := uc.saleRepo.List(from, to, -1, 0)
	if err != nil {
		return nil, err
	}
	resp := &dto.SalesReportResponse{
		Sales: make([]*dto.SaleResponse, 0, len(sales)),
	}
	revenue := decimal.Zero
	for _, s := range sales {
		resp.Sales = append(resp.Sales, dto.SaleToResponse(s))
		revenue = revenue.Add(s.Total)
	}
	resp.Summary = dto.SalesReportSummary{
		TotalRevenue: revenue,
		TotalSales:   len(sales),
	}
	if len(sales) > 0 {
		resp.Summary.AverageOrderValue = revenue.DivRound(decimal.NewFromInt(int64(len(sales))), 2)
	} else {
		resp.Summary.AverageOrderValue = decimal.Zero
	}
	return resp, nil
}

// InventoryReport estado del inventario: valor total y productos bajos o sin stock.
func (uc *ReportUseCase) InventoryReport() (*dto.InventoryReportResponse, error) {
	products, total, err := uc.productRepo.List(repository.ProductQuery{Limit: -1})
	if err != nil {
		return nil, err
	}
	resp := &dto.InventoryReportResponse{
		TotalProducts:      total,
		TotalValue:         decimal.Zero,
		LowStockProducts:   []*dto.ProductResponse{},
		OutOfStockProducts: []*dto.ProductResponse{},
	}
	for _, p := range products {
		resp.TotalValue = resp.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
		switch {
		case p.Stock == 0:
			resp.OutOfStockProducts = append(resp.OutOfStockProducts, dto.ProductToResponse(p))
		case p.Stock <= uc.lowStock:
			resp.LowStockProducts = append(resp.LowStockProducts, dto.ProductToResponse(p))
		}
	}
	return resp, nil
}
