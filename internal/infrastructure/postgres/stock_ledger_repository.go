package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.StockLedgerRepository = (*StockLedgerRepo)(nil)

const ledgerColumns = `id, product_id, type, quantity, balance, reference, created_by, created_at`

// StockLedgerRepo implementación del libro de movimientos sobre PostgreSQL.
// Append-only: solo INSERT y SELECT; jamás UPDATE ni DELETE.
type StockLedgerRepo struct {
	q Querier
}

// NewStockLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLedgerRepository(q Querier) *StockLedgerRepo {
	return &StockLedgerRepo{q: q}
}

// Create añade una entrada al libro.
func (r *StockLedgerRepo) Create(entry *entity.StockLedgerEntry) error {
	query := `INSERT INTO stock_ledger (` + ledgerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.Type, entry.Quantity, entry.Balance,
		entry.Reference, entry.CreatedBy, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// List consulta el libro con filtros. Limit <= 0 significa sin límite.
func (r *StockLedgerRepo) List(q repository.LedgerQuery) ([]*entity.StockLedgerEntry, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if q.ProductID != "" {
		where = append(where, "product_id = "+arg(q.ProductID))
	}
	if q.From != nil {
		where = append(where, "created_at >= "+arg(*q.From))
	}
	if q.To != nil {
		where = append(where, "created_at <= "+arg(*q.To))
	}
	query := `SELECT ` + ledgerColumns + ` FROM stock_ledger`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if q.Ascending {
		query += " ORDER BY created_at, id"
	} else {
		query += " ORDER BY created_at DESC, id DESC"
	}
	if q.Limit > 0 {
		query += " LIMIT " + arg(q.Limit) + " OFFSET " + arg(q.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	var entries []*entity.StockLedgerEntry
	for rows.Next() {
		var e entity.StockLedgerEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Type, &e.Quantity, &e.Balance, &e.Reference, &e.CreatedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// SumQuantity reproduce el libro: suma de Quantity de todas las entradas del producto.
func (r *StockLedgerRepo) SumQuantity(productID string) (int, error) {
	var sum int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM stock_ledger WHERE product_id = $1`,
		productID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum ledger: %w", err)
	}
	return sum, nil
}

// LastEntry devuelve la entrada más reciente del producto (nil si no hay).
func (r *StockLedgerRepo) LastEntry(productID string) (*entity.StockLedgerEntry, error) {
	var e entity.StockLedgerEntry
	err := r.q.QueryRow(context.Background(),
		`SELECT `+ledgerColumns+` FROM stock_ledger WHERE product_id = $1 ORDER BY created_at DESC, id DESC LIMIT 1`,
		productID,
	).Scan(&e.ID, &e.ProductID, &e.Type, &e.Quantity, &e.Balance, &e.Reference, &e.CreatedBy, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last ledger entry: %w", err)
	}
	return &e, nil
}
