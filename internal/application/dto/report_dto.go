package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse métricas del día para el dashboard.
type DashboardStatsResponse struct {
	TodayRevenue    decimal.Decimal `json:"today_revenue"`
	TodaySalesCount int             `json:"today_sales_count"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	TotalProducts   int             `json:"total_products"`
}

// SalesReportResponse resumen de ventas en un rango de fechas.
type SalesReportResponse struct {
	Sales   []*SaleResponse    `json:"sales"`
	Summary SalesReportSummary `json:"summary"`
}

// SalesReportSummary agregados del reporte de ventas.
type SalesReportSummary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalSales        int             `json:"total_sales"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// InventoryReportResponse estado del inventario.
type InventoryReportResponse struct {
	TotalProducts      int                `json:"total_products"`
	TotalValue         decimal.Decimal    `json:"total_value"` // Σ precio × stock
	LowStockProducts   []*ProductResponse `json:"low_stock_products"`
	OutOfStockProducts []*ProductResponse `json:"out_of_stock_products"`
}
