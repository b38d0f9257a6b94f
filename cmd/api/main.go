package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/retail-pos/internal/application/auth"
	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/application/member"
	"github.com/tu-usuario/retail-pos/internal/application/sale"
	"github.com/tu-usuario/retail-pos/internal/application/usecase"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/events"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/payment"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/pdf"
	"github.com/tu-usuario/retail-pos/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/retail-pos/internal/interfaces/http"
	"github.com/tu-usuario/retail-pos/pkg/config"
	"github.com/tu-usuario/retail-pos/pkg/logger"
)

// stores agrupa los puertos de persistencia más los runners de transacción,
// sea cual sea el backend (PostgreSQL o memoria).
type stores struct {
	products   repository.ProductRepository
	members    repository.MemberRepository
	ledger     repository.StockLedgerRepository
	sales      repository.SaleRepository
	stockIns   repository.StockInRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	users      repository.UserRepository
	saleTx     sale.TxRunner
	invTx      inventory.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var st stores
	if cfg.DB.DatabaseURL == "" {
		// Sin base de datos configurada: tienda de demostración en memoria.
		log.Info().Msg("sin DATABASE_URL: usando store en memoria con datos demo")
		mem := memory.NewStore()
		if err := mem.SeedDemo(); err != nil {
			log.Fatal().Err(err).Msg("seed del store en memoria")
		}
		st = stores{
			products:   mem.Products(),
			members:    mem.Members(),
			ledger:     mem.Ledger(),
			sales:      mem.Sales(),
			stockIns:   mem.StockIns(),
			categories: mem.Categories(),
			suppliers:  mem.Suppliers(),
			users:      mem.Users(),
			saleTx:     mem,
			invTx:      mem,
		}
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("inicializar esquema")
		}
		txRunner := postgres.NewTxRunner(pool)
		st = stores{
			products:   postgres.NewProductRepository(pool),
			members:    postgres.NewMemberRepository(pool),
			ledger:     postgres.NewStockLedgerRepository(pool),
			sales:      postgres.NewSaleRepository(pool),
			stockIns:   postgres.NewStockInRepository(pool),
			categories: postgres.NewCategoryRepository(pool),
			suppliers:  postgres.NewSupplierRepository(pool),
			users:      postgres.NewUserRepository(pool),
			saleTx:     txRunner,
			invTx:      txRunner,
		}
	}

	publisher := events.NewPublisher(log)
	defer publisher.Close()
	events.RunLogSubscriber(publisher, log)

	gateway := payment.NewGateway(cfg.Payment, log.WithComponent("payment"))

	commitSaleUC := sale.NewCommitSaleUseCase(
		st.saleTx, st.products, st.members, st.sales, gateway, publisher,
		sale.Thresholds{
			LowStock:  cfg.POS.LowStockThreshold,
			HighValue: decimal.NewFromInt(cfg.POS.HighValueThreshold),
		},
	)
	ledgerUC := inventory.NewLedgerUseCase(st.invTx, st.products, st.ledger, publisher, cfg.POS.LowStockThreshold)
	stockInUC := inventory.NewStockInUseCase(st.invTx, st.stockIns, st.products)
	memberUC := member.NewUseCase(st.members, publisher)
	productUC := usecase.NewProductUseCase(st.products)
	categoryUC := usecase.NewCategoryUseCase(st.categories)
	supplierUC := usecase.NewSupplierUseCase(st.suppliers)
	reportUC := usecase.NewReportUseCase(st.sales, st.products, cfg.POS.LowStockThreshold)
	authUC := auth.NewUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		CategoryUC: categoryUC,
		SupplierUC: supplierUC,
		ReportUC:   reportUC,
		CommitSale: commitSaleUC,
		LedgerUC:   ledgerUC,
		StockInUC:  stockInUC,
		MemberUC:   memberUC,
		Receipts: pdf.NewReceiptGenerator(pdf.StoreInfo{
			Name:    cfg.POS.StoreName,
			Address: cfg.POS.StoreAddress,
			Phone:   cfg.POS.StorePhone,
		}),
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
