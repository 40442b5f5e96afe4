// Package equipment defines the physical-asset aggregate. Equipment is
// managed by the asset module and read-only to the scheduling engine; only
// status and criticality drive PM synthesis behaviour.
package equipment

import (
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// Status enumerates the operational states of an asset.
type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusRetired     Status = "retired"
	StatusMaintenance Status = "maintenance"
)

// Valid reports whether s is one of the supported enum values.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusRetired, StatusMaintenance:
		return true
	default:
		return false
	}
}

// Criticality ranks how severe a failure of the asset would be. It drives
// the priority of synthesized preventive work orders.
type Criticality string

const (
	CriticalityLow      Criticality = "low"
	CriticalityMedium   Criticality = "medium"
	CriticalityHigh     Criticality = "high"
	CriticalityCritical Criticality = "critical"
)

// Valid reports whether c is one of the supported enum values.
func (c Criticality) Valid() bool {
	switch c {
	case CriticalityLow, CriticalityMedium, CriticalityHigh, CriticalityCritical:
		return true
	default:
		return false
	}
}

// Equipment is a physical asset under maintenance management.
type Equipment struct {
	ID          common.ID      `json:"id"`
	ScopeID     common.ScopeID `json:"scope_id"`
	Model       string         `json:"model"`
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Criticality Criticality    `json:"criticality"`
	InstallDate time.Time      `json:"install_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// NewEquipment creates a validated Equipment record in active status.
func NewEquipment(scopeID common.ScopeID, model, name string, criticality Criticality, installDate time.Time) (*Equipment, error) {
	if scopeID.IsZero() {
		return nil, errors.InvalidParam("scope ID must not be empty")
	}
	if model == "" {
		return nil, errors.InvalidParam("model must not be empty")
	}
	if !criticality.Valid() {
		return nil, errors.InvalidParam("unknown criticality: " + string(criticality))
	}
	if installDate.IsZero() {
		return nil, errors.InvalidParam("install date must not be zero")
	}

	now := time.Now().UTC()
	return &Equipment{
		ID:          common.NewID(),
		ScopeID:     scopeID,
		Model:       model,
		Name:        name,
		Status:      StatusActive,
		Criticality: criticality,
		InstallDate: installDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsPMEligible reports whether the asset may receive preventive work orders.
// Only active equipment is eligible; assets in maintenance, inactive or
// retired states are skipped entirely.
func (e *Equipment) IsPMEligible() bool {
	return e.Status == StatusActive
}

// Validate checks the integrity of the record.
func (e *Equipment) Validate() error {
	if e.ID.IsZero() {
		return errors.InvalidParam("equipment ID must not be empty")
	}
	if e.ScopeID.IsZero() {
		return errors.InvalidParam("equipment scope ID must not be empty")
	}
	if e.Model == "" {
		return errors.InvalidParam("equipment model must not be empty")
	}
	if !e.Status.Valid() {
		return errors.InvalidParam("unknown equipment status: " + string(e.Status))
	}
	if !e.Criticality.Valid() {
		return errors.InvalidParam("unknown equipment criticality: " + string(e.Criticality))
	}
	return nil
}
