// Package testutil provides in-memory fakes for the engine's storage and
// messaging collaborators. The fakes mirror the real repositories' contracts,
// including the open-pair uniqueness constraint, so application tests
// exercise the same failure surface as production.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/equipment"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/template"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/workorder"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// TemplateRepo is an in-memory template.Repository. Set Err to force every
// call to fail with that error.
type TemplateRepo struct {
	mu        sync.RWMutex
	templates map[common.ID]*template.PMTemplate
	Err       error
}

// NewTemplateRepo builds an empty repository.
func NewTemplateRepo() *TemplateRepo {
	return &TemplateRepo{templates: make(map[common.ID]*template.PMTemplate)}
}

// Put stores or replaces a template.
func (r *TemplateRepo) Put(t *template.PMTemplate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.ID] = t
}

func (r *TemplateRepo) GetByID(_ context.Context, id common.ID) (*template.PMTemplate, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeTemplateNotFound, "template not found")
	}
	return t, nil
}

func (r *TemplateRepo) ListActiveByScope(_ context.Context, scopeID common.ScopeID) ([]*template.PMTemplate, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*template.PMTemplate
	for _, t := range r.templates {
		if t.ScopeID == scopeID && t.Active {
			out = append(out, t)
		}
	}
	sortTemplates(out)
	return out, nil
}

func (r *TemplateRepo) ListByScope(_ context.Context, scopeID common.ScopeID, page common.Pagination) ([]*template.PMTemplate, int64, error) {
	if r.Err != nil {
		return nil, 0, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []*template.PMTemplate
	for _, t := range r.templates {
		if t.ScopeID == scopeID {
			all = append(all, t)
		}
	}
	sortTemplates(all)
	page.Normalize()
	return paginate(all, page), int64(len(all)), nil
}

func (r *TemplateRepo) ListByTargetModel(_ context.Context, scopeID common.ScopeID, model string) ([]*template.PMTemplate, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*template.PMTemplate
	for _, t := range r.templates {
		if t.ScopeID == scopeID && t.Active && t.Matches(model) {
			out = append(out, t)
		}
	}
	sortTemplates(out)
	return out, nil
}

// EquipmentRepo is an in-memory equipment.Repository.
type EquipmentRepo struct {
	mu     sync.RWMutex
	assets map[common.ID]*equipment.Equipment
	Err    error
}

// NewEquipmentRepo builds an empty repository.
func NewEquipmentRepo() *EquipmentRepo {
	return &EquipmentRepo{assets: make(map[common.ID]*equipment.Equipment)}
}

// Put stores or replaces an asset.
func (r *EquipmentRepo) Put(e *equipment.Equipment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[e.ID] = e
}

func (r *EquipmentRepo) GetByID(_ context.Context, id common.ID) (*equipment.Equipment, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.assets[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeEquipmentNotFound, "equipment not found")
	}
	return e, nil
}

func (r *EquipmentRepo) ListActiveByScope(_ context.Context, scopeID common.ScopeID) ([]*equipment.Equipment, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*equipment.Equipment
	for _, e := range r.assets {
		if e.ScopeID == scopeID && e.Status == equipment.StatusActive {
			out = append(out, e)
		}
	}
	sortEquipment(out)
	return out, nil
}

func (r *EquipmentRepo) ListByScope(_ context.Context, scopeID common.ScopeID, page common.Pagination) ([]*equipment.Equipment, int64, error) {
	if r.Err != nil {
		return nil, 0, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []*equipment.Equipment
	for _, e := range r.assets {
		if e.ScopeID == scopeID {
			all = append(all, e)
		}
	}
	sortEquipment(all)
	page.Normalize()
	return paginate(all, page), int64(len(all)), nil
}

// WorkOrderRepo is an in-memory workorder.Repository. Create enforces the
// same open-pair uniqueness the Postgres partial index does. Set CreateErr
// or Err to force failures.
type WorkOrderRepo struct {
	mu     sync.RWMutex
	orders map[common.ID]*workorder.WorkOrder

	Err       error
	CreateErr error
}

// NewWorkOrderRepo builds an empty repository.
func NewWorkOrderRepo() *WorkOrderRepo {
	return &WorkOrderRepo{orders: make(map[common.ID]*workorder.WorkOrder)}
}

// Put stores or replaces a work order, bypassing the uniqueness check.
func (r *WorkOrderRepo) Put(wo *workorder.WorkOrder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[wo.ID] = wo
}

// All returns every stored order, sorted by creation time.
func (r *WorkOrderRepo) All() []*workorder.WorkOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*workorder.WorkOrder, 0, len(r.orders))
	for _, wo := range r.orders {
		out = append(out, wo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *WorkOrderRepo) GetByID(_ context.Context, id common.ID) (*workorder.WorkOrder, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	wo, ok := r.orders[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeWorkOrderNotFound, "work order not found")
	}
	return wo, nil
}

func (r *WorkOrderRepo) ListOpenByScope(_ context.Context, scopeID common.ScopeID) ([]*workorder.WorkOrder, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*workorder.WorkOrder
	for _, wo := range r.orders {
		if wo.ScopeID == scopeID && wo.Type == workorder.TypePreventive && wo.IsOpen() {
			out = append(out, wo)
		}
	}
	return out, nil
}

func (r *WorkOrderRepo) ListOverdue(_ context.Context, scopeID common.ScopeID, cutoff time.Time) ([]*workorder.WorkOrder, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*workorder.WorkOrder
	for _, wo := range r.orders {
		if wo.ScopeID == scopeID && wo.Type == workorder.TypePreventive && wo.IsOpen() && wo.DueDate.Before(cutoff) {
			out = append(out, wo)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *WorkOrderRepo) ListByEquipment(_ context.Context, equipmentID common.ID, page common.Pagination) ([]*workorder.WorkOrder, int64, error) {
	if r.Err != nil {
		return nil, 0, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var all []*workorder.WorkOrder
	for _, wo := range r.orders {
		if wo.EquipmentID == equipmentID && wo.Type == workorder.TypePreventive {
			all = append(all, wo)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	page.Normalize()
	return paginate(all, page), int64(len(all)), nil
}

func (r *WorkOrderRepo) LastCompletions(_ context.Context, scopeID common.ScopeID) (map[workorder.PairKey]time.Time, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[workorder.PairKey]time.Time)
	for _, wo := range r.orders {
		if wo.ScopeID != scopeID || wo.Type != workorder.TypePreventive {
			continue
		}
		if wo.Status != workorder.StatusCompleted || wo.CompletedAt == nil {
			continue
		}
		key := workorder.PairKey{EquipmentID: wo.EquipmentID, TemplateID: wo.TemplateID}
		if last, ok := out[key]; !ok || wo.CompletedAt.After(last) {
			out[key] = *wo.CompletedAt
		}
	}
	return out, nil
}

func (r *WorkOrderRepo) Create(_ context.Context, draft *workorder.Draft) (*workorder.WorkOrder, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if r.CreateErr != nil {
		return nil, r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, wo := range r.orders {
		if wo.Type == workorder.TypePreventive && wo.IsOpen() &&
			wo.EquipmentID == draft.EquipmentID && wo.TemplateID == draft.TemplateID {
			return nil, errors.New(errors.ErrCodeDuplicateOpenWorkOrder, "open work order already exists for pair")
		}
	}
	wo, err := workorder.NewFromDraft(draft)
	if err != nil {
		return nil, err
	}
	r.orders[wo.ID] = wo
	return wo, nil
}

func (r *WorkOrderRepo) Update(_ context.Context, id common.ID, patch workorder.Patch) (*workorder.WorkOrder, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	wo, ok := r.orders[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeWorkOrderNotFound, "work order not found")
	}
	if patch.Status != nil {
		wo.Status = *patch.Status
		if wo.Status == workorder.StatusCompleted && wo.CompletedAt == nil {
			now := time.Now().UTC()
			wo.CompletedAt = &now
		}
	}
	if patch.EscalationLevel != nil {
		wo.EscalationLevel = *patch.EscalationLevel
	}
	if patch.Escalated != nil {
		wo.Escalated = *patch.Escalated
	}
	wo.UpdatedAt = time.Now().UTC()
	return wo, nil
}

func sortTemplates(ts []*template.PMTemplate) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].ID.String() < ts[j].ID.String() })
}

func sortEquipment(es []*equipment.Equipment) {
	sort.Slice(es, func(i, j int) bool { return es[i].ID.String() < es[j].ID.String() })
}

func paginate[T any](all []T, page common.Pagination) []T {
	if page.Offset >= len(all) {
		return nil
	}
	end := page.Offset + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[page.Offset:end]
}
