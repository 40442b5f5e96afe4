package scheduling

import (
	"context"
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/equipment"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/schedule"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/workorder"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/infrastructure/monitoring/logging"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// ComplianceRecord summarises one asset's preventive-maintenance history.
type ComplianceRecord struct {
	EquipmentID   common.ID  `json:"equipment_id"`
	ScopeID       common.ScopeID `json:"scope_id"`
	CompliancePct float64    `json:"compliance_pct"`
	TotalPM       int        `json:"total_pm"`
	MissedPM      int        `json:"missed_pm"`
	LastPMDate    *time.Time `json:"last_pm_date,omitempty"`
	NextPMDate    *time.Time `json:"next_pm_date,omitempty"`
	GeneratedAt   time.Time  `json:"generated_at"`
}

// ComplianceCache is the optional read-through cache in front of the
// summary computation. A miss returns ok=false; cache errors are swallowed
// by implementations, never surfaced here.
type ComplianceCache interface {
	Get(ctx context.Context, equipmentID common.ID) (*ComplianceRecord, bool)
	Set(ctx context.Context, record *ComplianceRecord)
}

// ComplianceService computes per-asset compliance summaries from preventive
// work-order history.
type ComplianceService struct {
	assets     equipment.Repository
	workorders workorder.Repository
	cache      ComplianceCache
	clock      schedule.Clock
	log        logging.Logger
}

// NewComplianceService wires a compliance service. Cache is optional.
func NewComplianceService(
	assets equipment.Repository,
	workorders workorder.Repository,
	cache ComplianceCache,
	clock schedule.Clock,
	log logging.Logger,
) (*ComplianceService, error) {
	if assets == nil || workorders == nil {
		return nil, errors.InvalidParam("compliance service requires equipment and work-order repositories")
	}
	if clock == nil {
		clock = schedule.SystemClock{}
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &ComplianceService{
		assets:     assets,
		workorders: workorders,
		cache:      cache,
		clock:      clock,
		log:        log.Named("compliance"),
	}, nil
}

// complianceHistoryLimit bounds how many historical work orders feed one
// summary. Two hundred covers years of history at any supported frequency.
const complianceHistoryLimit = 200

// GetComplianceSummary returns the compliance record for one asset.
//
// A preventive work order counts toward the total once its due date has
// passed or it has been completed. It counts as missed when it was completed
// after its due date, or is still open past its due date. Cancelled orders
// are excluded. An asset with no counted orders is vacuously 100% compliant.
func (s *ComplianceService) GetComplianceSummary(ctx context.Context, equipmentID common.ID) (*ComplianceRecord, error) {
	if equipmentID.IsZero() {
		return nil, errors.InvalidParam("equipment ID must not be empty")
	}

	if s.cache != nil {
		if record, ok := s.cache.Get(ctx, equipmentID); ok {
			return record, nil
		}
	}

	asset, err := s.assets.GetByID(ctx, equipmentID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorageReadFailure, "load equipment")
	}

	history, _, err := s.workorders.ListByEquipment(ctx, equipmentID, common.Pagination{Limit: complianceHistoryLimit})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorageReadFailure, "load work-order history")
	}

	now := s.clock.Now()
	record := &ComplianceRecord{
		EquipmentID: asset.ID,
		ScopeID:     asset.ScopeID,
		GeneratedAt: now,
	}

	for _, wo := range history {
		if wo.Type != workorder.TypePreventive {
			continue
		}
		switch wo.Status {
		case workorder.StatusCompleted:
			record.TotalPM++
			if wo.CompletedAt != nil && wo.CompletedAt.After(wo.DueDate) {
				record.MissedPM++
			}
			if wo.CompletedAt != nil && (record.LastPMDate == nil || wo.CompletedAt.After(*record.LastPMDate)) {
				t := *wo.CompletedAt
				record.LastPMDate = &t
			}
		case workorder.StatusCancelled:
			// excluded from the ratio entirely
		default:
			if now.After(wo.DueDate) {
				record.TotalPM++
				record.MissedPM++
			}
			if record.NextPMDate == nil || wo.DueDate.Before(*record.NextPMDate) {
				t := wo.DueDate
				record.NextPMDate = &t
			}
		}
	}
	record.CompliancePct = schedule.CompliancePercentage(record.TotalPM, record.MissedPM)

	if s.cache != nil {
		s.cache.Set(ctx, record)
	}
	return record, nil
}
