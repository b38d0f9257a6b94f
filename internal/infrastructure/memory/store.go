package memory

import (
	"context"

	"sync"

	"github.com/tu-usuario/retail-pos/internal/application/inventory"
	"github.com/tu-usuario/retail-pos/internal/application/sale"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ sale.TxRunner = (*Store)(nil)

// Store es el almacén en memoria: implementa los mismos puertos que el adaptador
// PostgreSQL y se usa cuando DATABASE_URL está vacío (demo y tests).
//
// La atomicidad se consigue con el lock de escritura más snapshot/restore: el
// callback de una transacción corre con el lock tomado y, si falla, el estado
// completo vuelve al snapshot previo. Las entidades almacenadas se tratan como
// inmutables: los getters devuelven copias y las escrituras reemplazan el puntero,
// de modo que el snapshot superficial de los mapas es suficiente.
type Store struct {
	mu sync.RWMutex

	products       map[string]*entity.Product
	members        map[string]*entity.Member
	memberByPhone  map[string]string
	ledger         []*entity.StockLedgerEntry
	sales          map[string]*entity.Sale
	saleByIdemKey  map[string]string
	saleOrder      []string
	stockIns       map[string]*entity.StockInDocument
	stockInOrder   []string
	categories     map[string]*entity.Category
	suppliers      map[string]*entity.Supplier
	users          map[string]*entity.User
	userByUsername map[string]string
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products:       make(map[string]*entity.Product),
		members:        make(map[string]*entity.Member),
		memberByPhone:  make(map[string]string),
		sales:          make(map[string]*entity.Sale),
		saleByIdemKey:  make(map[string]string),
		stockIns:       make(map[string]*entity.StockInDocument),
		categories:     make(map[string]*entity.Category),
		suppliers:      make(map[string]*entity.Supplier),
		users:          make(map[string]*entity.User),
		userByUsername: make(map[string]string),
	}
}

// Puertos sobre el pool (fuera de transacción): cada método toma su propio lock.

// Products devuelve el puerto de productos.
func (s *Store) Products() repository.ProductRepository { return &productRepo{s: s} }

// Members devuelve el puerto de membresías.
func (s *Store) Members() repository.MemberRepository { return &memberRepo{s: s} }

// Ledger devuelve el puerto del libro de movimientos.
func (s *Store) Ledger() repository.StockLedgerRepository { return &ledgerRepo{s: s} }

// Sales devuelve el puerto del almacén de ventas.
func (s *Store) Sales() repository.SaleRepository { return &saleRepo{s: s} }

// StockIns devuelve el puerto de documentos de entrada.
func (s *Store) StockIns() repository.StockInRepository { return &stockInRepo{s: s} }

// Categories devuelve el puerto de categorías.
func (s *Store) Categories() repository.CategoryRepository { return &categoryRepo{s: s} }

// Suppliers devuelve el puerto de proveedores.
func (s *Store) Suppliers() repository.SupplierRepository { return &supplierRepo{s: s} }

// Users devuelve el puerto de usuarios.
func (s *Store) Users() repository.UserRepository { return &userRepo{s: s} }

// snapshot copia los mapas y slices mutables (no las entidades: son inmutables).
type snapshot struct {
	products      map[string]*entity.Product
	members       map[string]*entity.Member
	memberByPhone map[string]string
	ledger        []*entity.StockLedgerEntry
	sales         map[string]*entity.Sale
	saleByIdemKey map[string]string
	saleOrder     []string
	stockIns      map[string]*entity.StockInDocument
	stockInOrder  []string
}

func (s *Store) takeSnapshot() snapshot {
	return snapshot{
		products:      copyMap(s.products),
		members:       copyMap(s.members),
		memberByPhone: copyMap(s.memberByPhone),
		ledger:        append([]*entity.StockLedgerEntry(nil), s.ledger...),
		sales:         copyMap(s.sales),
		saleByIdemKey: copyMap(s.saleByIdemKey),
		saleOrder:     append([]string(nil), s.saleOrder...),
		stockIns:      copyMap(s.stockIns),
		stockInOrder:  append([]string(nil), s.stockInOrder...),
	}
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.members = snap.members
	s.memberByPhone = snap.memberByPhone
	s.ledger = snap.ledger
	s.sales = snap.sales
	s.saleByIdemKey = snap.saleByIdemKey
	s.saleOrder = snap.saleOrder
	s.stockIns = snap.stockIns
	s.stockInOrder = snap.stockInOrder
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// inTx ejecuta fn con el lock de escritura tomado y revierte al snapshot si falla.
// Reemplaza BEGIN/COMMIT/ROLLBACK: dentro del callback los repositorios se
// construyen con locked=true para no re-tomar el lock.
func (s *Store) inTx(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.takeSnapshot()
	if err := fn(); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
) error) error {
	return s.inTx(ctx, func() error {
		return fn(&productRepo{s: s, locked: true}, &ledgerRepo{s: s, locked: true})
	})
}

// RunSale implementa sale.TxRunner.
func (s *Store) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
	memberRepo repository.MemberRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return s.inTx(ctx, func() error {
		return fn(
			&productRepo{s: s, locked: true},
			&ledgerRepo{s: s, locked: true},
			&memberRepo{s: s, locked: true},
			&saleRepo{s: s, locked: true},
		)
	})
}

// RunStockIn implementa inventory.TxRunner para la transición draft -> completed.
func (s *Store) RunStockIn(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	ledgerRepo repository.StockLedgerRepository,
	stockInRepo repository.StockInRepository,
) error) error {
	return s.inTx(ctx, func() error {
		return fn(&productRepo{s: s, locked: true}, &ledgerRepo{s: s, locked: true}, &stockInRepo{s: s, locked: true})
	})
}

// rlock toma el lock de lectura salvo que el repo esté dentro de una transacción
// (el lock de escritura ya está tomado y RWMutex no es reentrante).
func (s *Store) rlock(locked bool) func() {
	if locked {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// wlock ídem para escrituras sueltas fuera de transacción.
func (s *Store) wlock(locked bool) func() {
	if locked {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}
