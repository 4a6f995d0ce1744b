package postgres

import (
	"context"
	"database/sql"

	"doccenter/internal/model"
	"doccenter/internal/repository"
)

// ClientPostgres stores clients and the client_links edge table.
type ClientPostgres struct {
	db *sql.DB
}

func NewClientPostgres(db *sql.DB) *ClientPostgres {
	return &ClientPostgres{db: db}
}

var _ repository.ClientRepository = (*ClientPostgres)(nil)

const clientColumns = `id, name, type, email, is_firm, created_at`

func scanClient(s rowScanner) (model.Client, error) {
	var (
		c   model.Client
		typ string
	)
	err := s.Scan(&c.ID, &c.Name, &typ, &c.Email, &c.IsFirm, &c.CreatedAt)
	c.Type = model.ClientType(typ)
	return c, err
}

func (r *ClientPostgres) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + clientColumns
	out, err := scanClient(r.db.QueryRowContext(ctx, q, c.ID, c.Name, string(c.Type), c.Email, c.IsFirm, c.CreatedAt))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ClientPostgres) FindByID(ctx context.Context, id string) (*model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *ClientPostgres) List(ctx context.Context) ([]model.Client, error) {
	const q = `SELECT ` + clientColumns + ` FROM clients ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r *ClientPostgres) Update(ctx context.Context, c *model.Client) error {
	const q = `UPDATE clients SET name = $2, type = $3, email = $4, is_firm = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, c.ID, c.Name, string(c.Type), c.Email, c.IsFirm)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// Link inserts the normalized edge. Both clients must exist.
func (r *ClientPostgres) Link(ctx context.Context, link model.ClientLink) error {
	link = model.NewClientLink(link.A, link.B)
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var n int
		const qCount = `SELECT COUNT(*) FROM clients WHERE id IN ($1, $2)`
		if err := tx.QueryRowContext(ctx, qCount, link.A, link.B).Scan(&n); err != nil {
			return err
		}
		if n != 2 {
			return repository.ErrNotFound
		}
		const q = `INSERT INTO client_links (a, b) VALUES ($1, $2) ON CONFLICT DO NOTHING`
		_, err := tx.ExecContext(ctx, q, link.A, link.B)
		return err
	})
}

func (r *ClientPostgres) Unlink(ctx context.Context, link model.ClientLink) error {
	link = model.NewClientLink(link.A, link.B)
	const q = `DELETE FROM client_links WHERE a = $1 AND b = $2`
	_, err := r.db.ExecContext(ctx, q, link.A, link.B)
	return err
}

func (r *ClientPostgres) Links(ctx context.Context) ([]model.ClientLink, error) {
	const q = `SELECT a, b FROM client_links ORDER BY a, b`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.ClientLink, 0)
	for rows.Next() {
		var l model.ClientLink
		if err := rows.Scan(&l.A, &l.B); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
