package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"doccenter/internal/model"
	"doccenter/internal/repository"
)

// ActivityPostgres is the append-only activity_log table. Metadata is JSONB.
type ActivityPostgres struct {
	db *sql.DB
}

func NewActivityPostgres(db *sql.DB) *ActivityPostgres {
	return &ActivityPostgres{db: db}
}

var _ repository.ActivityRepository = (*ActivityPostgres)(nil)

func (r *ActivityPostgres) Append(ctx context.Context, entries ...model.ActivityLogEntry) error {
	const q = `
		INSERT INTO activity_log (id, ts, activity_type, performed_by, client_id, client_name,
			document_id, document_name, document_type, details, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		for _, e := range entries {
			meta, err := json.Marshal(e.Metadata)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, q,
				e.ID,
				e.Timestamp,
				e.ActivityType.String(),
				e.PerformedBy,
				e.ClientID,
				e.ClientName,
				e.DocumentID,
				e.DocumentName,
				e.DocumentType,
				e.Details,
				meta,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ActivityPostgres) List(ctx context.Context) ([]model.ActivityLogEntry, error) {
	const q = `
		SELECT id, ts, activity_type, performed_by, client_id, client_name,
			document_id, document_name, document_type, details, metadata
		FROM activity_log
		ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ActivityLogEntry, 0)
	for rows.Next() {
		var (
			e    model.ActivityLogEntry
			typ  string
			meta []byte
		)
		if err := rows.Scan(
			&e.ID,
			&e.Timestamp,
			&typ,
			&e.PerformedBy,
			&e.ClientID,
			&e.ClientName,
			&e.DocumentID,
			&e.DocumentName,
			&e.DocumentType,
			&e.Details,
			&meta,
		); err != nil {
			return nil, err
		}
		if e.ActivityType, err = model.ParseActivityType(typ); err != nil {
			return nil, err
		}
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &e.Metadata); err != nil {
				return nil, err
			}
		}
		items = append(items, e)
	}
	return items, rows.Err()
}
