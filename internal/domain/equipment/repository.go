package equipment

import (
	"context"

	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// Repository defines the persistence contract for equipment. The engine only
// reads equipment; lifecycle transitions belong to the asset module.
type Repository interface {
	// GetByID returns the equipment with the given ID, or an
	// ErrCodeEquipmentNotFound error.
	GetByID(ctx context.Context, id common.ID) (*Equipment, error)

	// ListActiveByScope returns every asset in the scope with active status.
	ListActiveByScope(ctx context.Context, scopeID common.ScopeID) ([]*Equipment, error)

	// ListByScope returns every asset in the scope regardless of status.
	ListByScope(ctx context.Context, scopeID common.ScopeID, page common.Pagination) ([]*Equipment, int64, error)
}
