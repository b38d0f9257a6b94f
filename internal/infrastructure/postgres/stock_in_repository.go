package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.StockInRepository = (*StockInRepo)(nil)

const stockInColumns = `id, document_number, supplier_id, status, created_by, created_at, completed_at`

// StockInRepo implementación de documentos de entrada sobre PostgreSQL.
type StockInRepo struct {
	q Querier
}

// NewStockInRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockInRepository(q Querier) *StockInRepo {
	return &StockInRepo{q: q}
}

// Create persiste el documento y sus líneas (nace en draft).
func (r *StockInRepo) Create(doc *entity.StockInDocument) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx,
		`INSERT INTO stock_in_documents (`+stockInColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		doc.ID, doc.DocumentNumber, doc.SupplierID, doc.Status, doc.CreatedBy,
		doc.CreatedAt, doc.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock-in document: %w", err)
	}
	for i, it := range doc.Items {
		_, err := r.q.Exec(ctx,
			`INSERT INTO stock_in_items (document_id, position, product_id, quantity, unit_cost)
			 VALUES ($1, $2, $3, $4, $5)`,
			doc.ID, i, it.ProductID, it.Quantity, it.UnitCost,
		)
		if err != nil {
			return fmt.Errorf("insert stock-in item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un documento con sus líneas. Devuelve nil sin error si no existe.
func (r *StockInRepo) GetByID(id string) (*entity.StockInDocument, error) {
	return r.getOne(`SELECT `+stockInColumns+` FROM stock_in_documents WHERE id = $1`, id)
}

// GetForUpdate obtiene el documento bloqueando la fila para la transición de estado.
func (r *StockInRepo) GetForUpdate(id string) (*entity.StockInDocument, error) {
	return r.getOne(`SELECT `+stockInColumns+` FROM stock_in_documents WHERE id = $1 FOR UPDATE`, id)
}

func (r *StockInRepo) getOne(query string, args ...any) (*entity.StockInDocument, error) {
	var d entity.StockInDocument
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&d.ID, &d.DocumentNumber, &d.SupplierID, &d.Status, &d.CreatedBy, &d.CreatedAt, &d.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock-in document: %w", err)
	}
	if err := r.loadItems(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// MarkCompleted fija status=completed y completed_at. La transición es de una sola
// vía: un documento ya completado no vuelve a draft, y aquí se exige que la fila
// siga en draft al momento del UPDATE.
func (r *StockInRepo) MarkCompleted(doc *entity.StockInDocument) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE stock_in_documents SET status = $2, completed_at = $3 WHERE id = $1 AND status = $4`,
		doc.ID, entity.StockInStatusCompleted, doc.CompletedAt, entity.StockInStatusDraft,
	)
	if err != nil {
		return fmt.Errorf("mark stock-in completed: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// List lista documentos paginados, más recientes primero. Limit <= 0 = sin límite.
func (r *StockInRepo) List(limit, offset int) ([]*entity.StockInDocument, error) {
	query := `SELECT ` + stockInColumns + ` FROM stock_in_documents ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock-in documents: %w", err)
	}
	defer rows.Close()

	var docs []*entity.StockInDocument
	for rows.Next() {
		var d entity.StockInDocument
		if err := rows.Scan(&d.ID, &d.DocumentNumber, &d.SupplierID, &d.Status, &d.CreatedBy, &d.CreatedAt, &d.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan stock-in document: %w", err)
		}
		docs = append(docs, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, d := range docs {
		if err := r.loadItems(d); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (r *StockInRepo) loadItems(d *entity.StockInDocument) error {
	rows, err := r.q.Query(context.Background(),
		`SELECT product_id, quantity, unit_cost FROM stock_in_items WHERE document_id = $1 ORDER BY position`,
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("load stock-in items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.StockInItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitCost); err != nil {
			return fmt.Errorf("scan stock-in item: %w", err)
		}
		d.Items = append(d.Items, it)
	}
	return rows.Err()
}
