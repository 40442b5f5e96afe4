package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/workorder"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

const workOrderColumns = `id, scope_id, type, equipment_id, template_id, description,
	status, priority, due_date, checklist, escalation_level, escalated,
	completed_at, created_at, updated_at`

// WorkOrderRepository is the PostgreSQL workorder.Repository. The
// at-most-one-open invariant is enforced by a partial unique index on open
// preventive (equipment_id, template_id) pairs; a violated insert surfaces as
// ErrCodeDuplicateOpenWorkOrder.
type WorkOrderRepository struct {
	pool *pgxpool.Pool
}

// NewWorkOrderRepository builds a repository over the given pool.
func NewWorkOrderRepository(pool *pgxpool.Pool) *WorkOrderRepository {
	return &WorkOrderRepository{pool: pool}
}

func scanWorkOrder(row pgx.Row) (*workorder.WorkOrder, error) {
	var wo workorder.WorkOrder
	err := row.Scan(
		&wo.ID, &wo.ScopeID, &wo.Type, &wo.EquipmentID, &wo.TemplateID, &wo.Description,
		&wo.Status, &wo.Priority, &wo.DueDate, &wo.Checklist, &wo.EscalationLevel, &wo.Escalated,
		&wo.CompletedAt, &wo.CreatedAt, &wo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wo, nil
}

func (r *WorkOrderRepository) GetByID(ctx context.Context, id common.ID) (*workorder.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = $1`
	wo, err := scanWorkOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, errors.New(errors.ErrCodeWorkOrderNotFound, "work order not found").
				WithDetail(id.String())
		}
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query work order")
	}
	return wo, nil
}

func (r *WorkOrderRepository) ListOpenByScope(ctx context.Context, scopeID common.ScopeID) ([]*workorder.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE scope_id = $1 AND type = $2 AND status = ANY($3)
		ORDER BY due_date, id`
	return r.list(ctx, query, scopeID, workorder.TypePreventive, openStatusStrings())
}

func (r *WorkOrderRepository) ListOverdue(ctx context.Context, scopeID common.ScopeID, cutoff time.Time) ([]*workorder.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE scope_id = $1 AND type = $2 AND status = ANY($3) AND due_date < $4
		ORDER BY due_date, id`
	return r.list(ctx, query, scopeID, workorder.TypePreventive, openStatusStrings(), cutoff)
}

func (r *WorkOrderRepository) ListByEquipment(ctx context.Context, equipmentID common.ID, page common.Pagination) ([]*workorder.WorkOrder, int64, error) {
	page.Normalize()

	var total int64
	countQuery := `SELECT COUNT(*) FROM work_orders WHERE equipment_id = $1 AND type = $2`
	if err := r.pool.QueryRow(ctx, countQuery, equipmentID, workorder.TypePreventive).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "count work orders")
	}

	query := `SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE equipment_id = $1 AND type = $2
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`
	out, err := r.list(ctx, query, equipmentID, workorder.TypePreventive, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *WorkOrderRepository) LastCompletions(ctx context.Context, scopeID common.ScopeID) (map[workorder.PairKey]time.Time, error) {
	query := `SELECT equipment_id, template_id, MAX(completed_at)
		FROM work_orders
		WHERE scope_id = $1 AND type = $2 AND status = $3 AND completed_at IS NOT NULL
		GROUP BY equipment_id, template_id`
	rows, err := r.pool.Query(ctx, query, scopeID, workorder.TypePreventive, workorder.StatusCompleted)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query completion history")
	}
	defer rows.Close()

	out := make(map[workorder.PairKey]time.Time)
	for rows.Next() {
		var (
			key  workorder.PairKey
			last time.Time
		)
		if err := rows.Scan(&key.EquipmentID, &key.TemplateID, &last); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "scan completion row")
		}
		out[key] = last
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "iterate completion rows")
	}
	return out, nil
}

func (r *WorkOrderRepository) Create(ctx context.Context, draft *workorder.Draft) (*workorder.WorkOrder, error) {
	wo, err := workorder.NewFromDraft(draft)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.pool.Exec(ctx, query,
		wo.ID, wo.ScopeID, wo.Type, wo.EquipmentID, wo.TemplateID, wo.Description,
		wo.Status, wo.Priority, wo.DueDate, wo.Checklist, wo.EscalationLevel, wo.Escalated,
		wo.CompletedAt, wo.CreatedAt, wo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, errors.New(errors.ErrCodeDuplicateOpenWorkOrder,
				"open work order already exists for this equipment and template")
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageWriteFailure, "insert work order")
	}
	return wo, nil
}

func (r *WorkOrderRepository) Update(ctx context.Context, id common.ID, patch workorder.Patch) (*workorder.WorkOrder, error) {
	query := `UPDATE work_orders SET
			status = COALESCE($2, status),
			escalation_level = COALESCE($3, escalation_level),
			escalated = COALESCE($4, escalated),
			completed_at = CASE
				WHEN $2 = 'completed' AND completed_at IS NULL THEN NOW()
				ELSE completed_at
			END,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + workOrderColumns
	wo, err := scanWorkOrder(r.pool.QueryRow(ctx, query, id, patch.Status, patch.EscalationLevel, patch.Escalated))
	if err != nil {
		if isNoRows(err) {
			return nil, errors.New(errors.ErrCodeWorkOrderNotFound, "work order not found").
				WithDetail(id.String())
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageWriteFailure, "update work order")
	}
	return wo, nil
}

func (r *WorkOrderRepository) list(ctx context.Context, query string, args ...any) ([]*workorder.WorkOrder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "query work orders")
	}
	defer rows.Close()

	var out []*workorder.WorkOrder
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "scan work order row")
		}
		out = append(out, wo)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "iterate work order rows")
	}
	return out, nil
}

func openStatusStrings() []string {
	out := make([]string, len(workorder.OpenStatuses))
	for i, s := range workorder.OpenStatuses {
		out[i] = string(s)
	}
	return out
}
