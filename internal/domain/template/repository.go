package template

import (
	"context"

	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// Repository defines the persistence contract for PM templates. The engine
// only reads templates; creation and editing belong to the configuration
// surface outside this module.
type Repository interface {
	// GetByID returns the template with the given ID, or an
	// ErrCodeTemplateNotFound error.
	GetByID(ctx context.Context, id common.ID) (*PMTemplate, error)

	// ListActiveByScope returns every active template in the scope.
	ListActiveByScope(ctx context.Context, scopeID common.ScopeID) ([]*PMTemplate, error)

	// ListByScope returns every template in the scope, active or not.
	ListByScope(ctx context.Context, scopeID common.ScopeID, page common.Pagination) ([]*PMTemplate, int64, error)

	// ListByTargetModel returns the active templates in the scope whose
	// target model equals model (exact, case-sensitive).
	ListByTargetModel(ctx context.Context, scopeID common.ScopeID, model string) ([]*PMTemplate, error)
}
