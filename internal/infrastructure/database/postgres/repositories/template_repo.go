package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/template"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

const templateColumns = `id, scope_id, target_model, component, action, description,
	estimated_minutes, frequency, active, created_at, updated_at`

// TemplateRepository is the PostgreSQL template.Repository.
type TemplateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository builds a repository over the given pool.
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

func scanTemplate(row pgx.Row) (*template.PMTemplate, error) {
	var t template.PMTemplate
	err := row.Scan(
		&t.ID, &t.ScopeID, &t.TargetModel, &t.Component, &t.Action, &t.Description,
		&t.EstimatedMinutes, &t.Frequency, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id common.ID) (*template.PMTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM pm_templates WHERE id = $1`
	t, err := scanTemplate(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, errors.New(errors.ErrCodeTemplateNotFound, "template not found").
				WithDetail(id.String())
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query template")
	}
	return t, nil
}

func (r *TemplateRepository) ListActiveByScope(ctx context.Context, scopeID common.ScopeID) ([]*template.PMTemplate, error) {
	query := `SELECT ` + templateColumns + `
		FROM pm_templates
		WHERE scope_id = $1 AND active
		ORDER BY created_at, id`
	return r.list(ctx, query, scopeID)
}

func (r *TemplateRepository) ListByScope(ctx context.Context, scopeID common.ScopeID, page common.Pagination) ([]*template.PMTemplate, int64, error) {
	page.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM pm_templates WHERE scope_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, scopeID).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "count templates")
	}

	query := `SELECT ` + templateColumns + `
		FROM pm_templates
		WHERE scope_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`
	out, err := r.list(ctx, query, scopeID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *TemplateRepository) ListByTargetModel(ctx context.Context, scopeID common.ScopeID, model string) ([]*template.PMTemplate, error) {
	query := `SELECT ` + templateColumns + `
		FROM pm_templates
		WHERE scope_id = $1 AND target_model = $2 AND active
		ORDER BY created_at, id`
	return r.list(ctx, query, scopeID, model)
}

func (r *TemplateRepository) list(ctx context.Context, query string, args ...any) ([]*template.PMTemplate, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query templates")
	}
	defer rows.Close()

	var out []*template.PMTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "scan template row")
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "iterate template rows")
	}
	return out, nil
}
