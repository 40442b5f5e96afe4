package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/equipment"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

const equipmentColumns = `id, scope_id, model, name, status, criticality,
	install_date, created_at, updated_at`

// EquipmentRepository is the PostgreSQL equipment.Repository.
type EquipmentRepository struct {
	pool *pgxpool.Pool
}

// NewEquipmentRepository builds a repository over the given pool.
func NewEquipmentRepository(pool *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{pool: pool}
}

func scanEquipment(row pgx.Row) (*equipment.Equipment, error) {
	var e equipment.Equipment
	err := row.Scan(
		&e.ID, &e.ScopeID, &e.Model, &e.Name, &e.Status, &e.Criticality,
		&e.InstallDate, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id common.ID) (*equipment.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	e, err := scanEquipment(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, errors.New(errors.ErrCodeEquipmentNotFound, "equipment not found").
				WithDetail(id.String())
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query equipment")
	}
	return e, nil
}

func (r *EquipmentRepository) ListActiveByScope(ctx context.Context, scopeID common.ScopeID) ([]*equipment.Equipment, error) {
	query := `SELECT ` + equipmentColumns + `
		FROM equipment
		WHERE scope_id = $1 AND status = $2
		ORDER BY created_at, id`
	return r.list(ctx, query, scopeID, equipment.StatusActive)
}

func (r *EquipmentRepository) ListByScope(ctx context.Context, scopeID common.ScopeID, page common.Pagination) ([]*equipment.Equipment, int64, error) {
	page.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM equipment WHERE scope_id = $1`
	if err := r.pool.QueryRow(ctx, countQuery, scopeID).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "count equipment")
	}

	query := `SELECT ` + equipmentColumns + `
		FROM equipment
		WHERE scope_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`
	out, err := r.list(ctx, query, scopeID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *EquipmentRepository) list(ctx context.Context, query string, args ...any) ([]*equipment.Equipment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query equipment")
	}
	defer rows.Close()

	var out []*equipment.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "scan equipment row")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "iterate equipment rows")
	}
	return out, nil
}
