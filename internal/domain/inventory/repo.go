package inventory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Items */

func (r *Repo) Create(ctx context.Context, name, category string, qty int64, unitCost float64, supplierID int64) (*Item, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO inventory_items (name, category, quantity_in_stock, unit_cost, is_active, supplier_id)
		VALUES ($1,$2,$3,$4,TRUE,NULLIF($5,0))
		RETURNING id, name, category, quantity_in_stock, unit_cost, is_active, COALESCE(supplier_id,0), created_at
	`, name, category, qty, unitCost, supplierID)

	var it Item
	if err := row.Scan(
		&it.ID,
		&it.Name,
		&it.Category,
		&it.QuantityInStock,
		&it.UnitCost,
		&it.Active,
		&it.SupplierID,
		&it.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Item, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT i.id, i.name, i.category, i.quantity_in_stock, i.unit_cost, i.is_active,
		       COALESCE(i.supplier_id,0), COALESCE(s.name,''), i.created_at
		FROM inventory_items i
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		WHERE i.id = $1
	`, id)
	var it Item
	if err := row.Scan(
		&it.ID,
		&it.Name,
		&it.Category,
		&it.QuantityInStock,
		&it.UnitCost,
		&it.Active,
		&it.SupplierID,
		&it.Supplier,
		&it.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

// Save persists the mutable item fields (stock level included).
func (r *Repo) Save(ctx context.Context, it *Item) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE inventory_items
		SET name=$2, category=$3, quantity_in_stock=$4, unit_cost=$5, is_active=$6, supplier_id=NULLIF($7,0)
		WHERE id=$1
	`, it.ID, it.Name, it.Category, it.QuantityInStock, it.UnitCost, it.Active, it.SupplierID)
	return err
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.pool.Exec(ctx, `UPDATE inventory_items SET is_active=$2 WHERE id=$1`, id, active)
	return err
}

func (r *Repo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT i.id, i.name, i.category, i.quantity_in_stock, i.unit_cost, i.is_active,
		       COALESCE(i.supplier_id,0), COALESCE(s.name,''), i.created_at
		FROM inventory_items i
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		ORDER BY i.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID,
			&it.Name,
			&it.Category,
			&it.QuantityInStock,
			&it.UnitCost,
			&it.Active,
			&it.SupplierID,
			&it.Supplier,
			&it.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

/* History ledger */

// CreateHistory appends one ledger record. Records are never updated.
func (r *Repo) CreateHistory(ctx context.Context, h *History) (*History, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO inventory_history
			(item_id, type, quantity, previous_stock, new_stock, reference, reference_id, reference_type, notes, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at
	`, h.ItemID, string(h.Type), h.Quantity, h.PreviousStock, h.NewStock,
		h.Reference, h.ReferenceID, string(h.ReferenceType), h.Notes, h.CreatedBy)

	rec := *h
	if err := row.Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *Repo) ListHistoryByItem(ctx context.Context, itemID int64) ([]History, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, item_id, type, quantity, previous_stock, new_stock,
		       reference, reference_id, reference_type, notes, created_by, created_at
		FROM inventory_history
		WHERE item_id = $1
		ORDER BY created_at, id
	`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []History
	for rows.Next() {
		var h History
		if err := rows.Scan(
			&h.ID,
			&h.ItemID,
			&h.Type,
			&h.Quantity,
			&h.PreviousStock,
			&h.NewStock,
			&h.Reference,
			&h.ReferenceID,
			&h.ReferenceType,
			&h.Notes,
			&h.CreatedBy,
			&h.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
