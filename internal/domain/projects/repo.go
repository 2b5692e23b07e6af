package projects

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medtrack/hms-inventory/internal/domain/inventory"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, title string) (*Project, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO projects (title) VALUES ($1)
		RETURNING id, title, created_at
	`, title)
	var p Project
	if err := row.Scan(&p.ID, &p.Title, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByID loads the project together with its inventory lines.
func (r *Repo) GetByID(ctx context.Context, id int64) (*Project, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, created_at FROM projects WHERE id = $1
	`, id)
	var p Project
	if err := row.Scan(&p.ID, &p.Title, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, item_id, quantity, unit_cost, total_cost, status, notes, used_date, returned_date, created_at
		FROM inventory_lines
		WHERE reference_type = 'project' AND reference_id = $1
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
		p.Items = append(p.Items, l)
	}
	return &p, rows.Err()
}

// Save persists the project's inventory lines: new lines (id=0) are inserted
// and get their id written back, existing lines get status/notes/dates updated.
func (r *Repo) Save(ctx context.Context, p *Project) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `UPDATE projects SET title=$2 WHERE id=$1`, p.ID, p.Title); err != nil {
		return err
	}

	for i := range p.Items {
		l := &p.Items[i]
		if l.ID == 0 {
			row := tx.QueryRow(ctx, `
				INSERT INTO inventory_lines
					(reference_type, reference_id, item_id, quantity, unit_cost, total_cost, status, notes, used_date, returned_date)
				VALUES ('project',$1,$2,$3,$4,$5,$6,$7,$8,$9)
				RETURNING id, created_at
			`, p.ID, l.ItemID, l.Quantity, l.UnitCost, l.TotalCost, string(l.Status), l.Notes, l.UsedDate, l.ReturnedDate)
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
