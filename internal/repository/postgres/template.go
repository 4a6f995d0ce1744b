package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"doccenter/internal/model"
	"doccenter/internal/repository"
)

// TemplatePostgres stores signature templates with roles and fields as JSONB.
type TemplatePostgres struct {
	db *sql.DB
}

func NewTemplatePostgres(db *sql.DB) *TemplatePostgres {
	return &TemplatePostgres{db: db}
}

var _ repository.TemplateRepository = (*TemplatePostgres)(nil)

const templateColumns = `id, category, name, description, year, signing_order, roles, fields,
		file_name, storage_path, created_by, created_at`

func scanTemplate(s rowScanner) (model.SignatureTemplate, error) {
	var (
		t             model.SignatureTemplate
		category      string
		order         string
		roles, fields []byte
	)
	if err := s.Scan(
		&t.ID,
		&category,
		&t.Name,
		&t.Description,
		&t.Year,
		&order,
		&roles,
		&fields,
		&t.FileName,
		&t.StoragePath,
		&t.CreatedBy,
		&t.CreatedAt,
	); err != nil {
		return t, err
	}
	t.Category = model.TemplateCategory(category)
	t.SigningOrder = model.SigningOrder(order)
	if err := json.Unmarshal(roles, &t.Roles); err != nil {
		return t, err
	}
	if err := json.Unmarshal(fields, &t.Fields); err != nil {
		return t, err
	}
	return t, nil
}

func (r *TemplatePostgres) Create(ctx context.Context, t *model.SignatureTemplate) (*model.SignatureTemplate, error) {
	roles, err := json.Marshal(t.Roles)
	if err != nil {
		return nil, err
	}
	fields, err := json.Marshal(t.Fields)
	if err != nil {
		return nil, err
	}
	const q = `
		INSERT INTO signature_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + templateColumns
	out, err := scanTemplate(r.db.QueryRowContext(ctx, q,
		t.ID,
		string(t.Category),
		t.Name,
		t.Description,
		t.Year,
		string(t.SigningOrder),
		roles,
		fields,
		t.FileName,
		t.StoragePath,
		t.CreatedBy,
		t.CreatedAt,
	))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *TemplatePostgres) FindByID(ctx context.Context, id string) (*model.SignatureTemplate, error) {
	const q = `SELECT ` + templateColumns + ` FROM signature_templates WHERE id = $1`
	t, err := scanTemplate(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *TemplatePostgres) List(ctx context.Context) ([]model.SignatureTemplate, error) {
	const q = `SELECT ` + templateColumns + ` FROM signature_templates ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.SignatureTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, rows.Err()
}
