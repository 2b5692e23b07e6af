package tickets

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/hms-inventory/internal/domain/inventory"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, number, title string) (*Ticket, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO service_tickets (number, title) VALUES ($1,$2)
		RETURNING id, number, title, created_at
	`, number, title)
	var t Ticket
	if err := row.Scan(&t.ID, &t.Number, &t.Title, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID loads the ticket together with its inventory lines.
func (r *Repo) GetByID(ctx context.Context, id int64) (*Ticket, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, number, title, created_at FROM service_tickets WHERE id = $1
	`, id)
	var t Ticket
	if err := row.Scan(&t.ID, &t.Number, &t.Title, &t.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, item_id, quantity, unit_cost, total_cost, status, notes, used_date, returned_date, created_at
		FROM inventory_lines
		WHERE reference_type = 'service_ticket' AND reference_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var l inventory.Line
		if err := rows.Scan(
			&l.ID,
			&l.ItemID,
			&l.Quantity,
			&l.UnitCost,
			&l.TotalCost,
			&l.Status,
			&l.Notes,
			&l.UsedDate,
			&l.ReturnedDate,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		t.Items = append(t.Items, l)
	}
	return &t, rows.Err()
}

// Save persists the ticket's inventory lines, same contract as projects.Repo.Save.
func (r *Repo) Save(ctx context.Context, t *Ticket) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `UPDATE service_tickets SET number=$2, title=$3 WHERE id=$1`, t.ID, t.Number, t.Title); err != nil {
		return err
	}

	for i := range t.Items {
		l := &t.Items[i]
		if l.ID == 0 {
			row := tx.QueryRow(ctx, `
				INSERT INTO inventory_lines
					(reference_type, reference_id, item_id, quantity, unit_cost, total_cost, status, notes, used_date, returned_date)
				VALUES ('service_ticket',$1,$2,$3,$4,$5,$6,$7,$8,$9)
				RETURNING id, created_at
			`, t.ID, l.ItemID, l.Quantity, l.UnitCost, l.TotalCost, string(l.Status), l.Notes, l.UsedDate, l.ReturnedDate)
			if err := row.Scan(&l.ID, &l.CreatedAt); err != nil {
				return err
			}
			continue
		}
		if _, err := tx.Exec(ctx, `
			UPDATE inventory_lines
			SET status=$2, notes=$3, used_date=$4, returned_date=$5
			WHERE id=$1
		`, l.ID, string(l.Status), l.Notes, l.UsedDate, l.ReturnedDate); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
