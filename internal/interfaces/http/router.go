package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/retail-pos/internal/application/auth"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/application/member"
	"github.com/tu-usuario/retail-pos/internal/application/sale"
	"github.com/tu-usuario/retail-pos/internal/application/usecase"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	ReportUC   *usecase.ReportUseCase
	CommitSale *sale.CommitSaleUseCase
	LedgerUC   *inventory.LedgerUseCase
	StockInUC  *inventory.StockInUseCase
	MemberUC   *member.UseCase
	Receipts   ReceiptGenerator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	manager := RequireRole(entity.RoleOwner, entity.RoleAdmin)

	// Catálogo de productos: lectura para todos, escritura para owner/admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/barcode/:code", productHandler.GetByBarcode)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", manager, productHandler.Create)
	products.Put("/:id", manager, productHandler.Update)
	products.Delete("/:id", manager, productHandler.Delete)

	// Categorías y proveedores
	catalogHandler := NewCatalogHandler(deps.CategoryUC, deps.SupplierUC)
	protected.Get("/categories", catalogHandler.ListCategories)
	protected.Post("/categories", manager, catalogHandler.CreateCategory)
	protected.Get("/suppliers", catalogHandler.ListSuppliers)
	protected.Post("/suppliers", manager, catalogHandler.CreateSupplier)

	// Punto de venta
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CommitSale, deps.Receipts)
	sales.Post("/", saleHandler.Commit)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id/receipt", saleHandler.Receipt)
	sales.Get("/:id", saleHandler.GetByID)

	// Membresías
	members := protected.Group("/members")
	memberHandler := NewMemberHandler(deps.MemberUC)
	members.Post("/", memberHandler.Register)
	members.Get("/", memberHandler.List)
	members.Get("/phone/:phone", memberHandler.FindByPhone)
	members.Get("/:id", memberHandler.GetByID)

	// Inventario: libro de movimientos y entradas de mercancía (owner/admin)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.StockInUC)
	ledger := protected.Group("/stock-ledger")
	ledger.Post("/adjustments", manager, inventoryHandler.Adjust)
	ledger.Get("/:productId", inventoryHandler.History)
	ledger.Get("/:productId/verify", inventoryHandler.Verify)

	stockIn := protected.Group("/stock-in", manager)
	stockIn.Post("/", inventoryHandler.CreateStockIn)
	stockIn.Get("/", inventoryHandler.ListStockIn)
	stockIn.Get("/:id", inventoryHandler.GetStockIn)
	stockIn.Post("/:id/complete", inventoryHandler.CompleteStockIn)

	// Dashboard y reportes (owner/admin)
	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/dashboard/stats", manager, reportHandler.Dashboard)
	protected.Get("/reports/sales", manager, reportHandler.Sales)
	protected.Get("/reports/inventory", manager, reportHandler.Inventory)
}
