package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, subtotal, discount, total, payment_method, cashier_id, cashier_name,
	member_id, member_phone, points_used, points_earned, cash_received, change, idempotency_key, created_at`

// SaleRepo implementación del almacén de ventas sobre PostgreSQL.
// Append-only: las ventas se insertan una vez y no se editan.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta y sus líneas. Una clave de idempotencia repetida
// devuelve ErrDuplicate (la constraint única es la última línea de defensa
// frente a dos commits concurrentes con la misma clave).
func (r *SaleRepo) Create(sale *entity.Sale) error {
	ctx := context.Background()
	var idemKey any
	if sale.IdempotencyKey != "" {
		idemKey = sale.IdempotencyKey
	}
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.Subtotal, sale.Discount, sale.Total, sale.PaymentMethod,
		sale.CashierID, sale.CashierName, sale.MemberID, sale.MemberPhone,
		sale.PointsUsed, sale.PointsEarned, sale.CashReceived, sale.Change,
		idemKey, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	for i, it := range sale.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO sale_items (sale_id, position, product_id, name, quantity, unit_price)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			sale.ID, i, it.ProductID, it.Name, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus líneas. Devuelve nil sin error si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	return r.getOne(`SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetByIdempotencyKey devuelve la venta asociada a la clave (nil si no existe).
func (r *SaleRepo) GetByIdempotencyKey(key string) (*entity.Sale, error) {
	return r.getOne(`SELECT `+saleColumns+` FROM sales WHERE idempotency_key = $1`, key)
}

func (r *SaleRepo) getOne(query string, args ...any) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if err := r.loadItems(s); err != nil {
		return nil, err
	}
	return s, nil
}

// List filtra por CreatedAt con límites inclusivos, más reciente primero.
// Limit <= 0 significa sin límite.
func (r *SaleRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Sale, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if from != nil {
		where = append(where, "created_at >= "+arg(*from))
	}
	if to != nil {
		where = append(where, "created_at <= "+arg(*to))
	}
	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT " + arg(limit) + " OFFSET " + arg(offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, s := range sales {
		if err := r.loadItems(s); err != nil {
			return nil, err
		}
	}
	return sales, nil
}

func (r *SaleRepo) loadItems(s *entity.Sale) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, name, quantity, unit_price FROM sale_items WHERE sale_id = $1 ORDER BY position`,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	return rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s       entity.Sale
		idemKey *string
	)
	err := row.Scan(
		&s.ID, &s.Subtotal, &s.Discount, &s.Total, &s.PaymentMethod, &s.CashierID,
		&s.CashierName, &s.MemberID, &s.MemberPhone, &s.PointsUsed, &s.PointsEarned,
		&s.CashReceived, &s.Change, &idemKey, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if idemKey != nil {
		s.IdempotencyKey = *idemKey
	}
	return &s, nil
}
