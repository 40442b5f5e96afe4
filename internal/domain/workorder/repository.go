package workorder

import (
	"context"
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// PairKey identifies a (equipment, template) combination, the unit the
// at-most-one-open invariant is enforced over.
type PairKey struct {
	EquipmentID common.ID
	TemplateID  common.ID
}

// Patch carries the mutable fields of an update. Nil fields are untouched.
type Patch struct {
	Status          *Status
	EscalationLevel *int
	Escalated       *bool
}

// Repository defines the persistence contract for work orders. Create must be
// backed by a uniqueness constraint on open preventive (equipment, template)
// pairs so that concurrent scheduler runs cannot violate the dedup invariant;
// a violation surfaces as ErrCodeDuplicateOpenWorkOrder.
type Repository interface {
	// GetByID returns the work order with the given ID, or an
	// ErrCodeWorkOrderNotFound error.
	GetByID(ctx context.Context, id common.ID) (*WorkOrder, error)

	// ListOpenByScope returns every open (open/assigned/in_progress)
	// preventive work order in the scope.
	ListOpenByScope(ctx context.Context, scopeID common.ScopeID) ([]*WorkOrder, error)

	// ListOverdue returns open preventive work orders in the scope whose due
	// date lies before cutoff.
	ListOverdue(ctx context.Context, scopeID common.ScopeID, cutoff time.Time) ([]*WorkOrder, error)

	// ListByEquipment returns the preventive work orders for one asset,
	// newest first.
	ListByEquipment(ctx context.Context, equipmentID common.ID, page common.Pagination) ([]*WorkOrder, int64, error)

	// LastCompletions returns, per (equipment, template) pair in the scope,
	// the completion time of the most recently completed preventive work
	// order. Pairs with no completed history are absent from the map.
	LastCompletions(ctx context.Context, scopeID common.ScopeID) (map[PairKey]time.Time, error)

	// Create persists a draft and returns the stored work order.
	Create(ctx context.Context, draft *Draft) (*WorkOrder, error)

	// Update applies a patch and returns the updated work order.
	Update(ctx context.Context, id common.ID, patch Patch) (*WorkOrder, error)
}
