// Package workorder defines the work-order aggregate: the unit of scheduled
// or ad-hoc maintenance work. The scheduling engine creates preventive work
// orders and raises their escalation level; every other status transition
// belongs to the downstream work-order management surface.
package workorder

import (
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

// Type enumerates the kinds of maintenance work.
type Type string

const (
	TypeCorrective Type = "corrective"
	TypePreventive Type = "preventive"
	TypeEmergency  Type = "emergency"
)

// Status enumerates the work-order lifecycle states.
type Status string

const (
	StatusOpen       Status = "open"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// OpenStatuses lists the states that count as "open" for the at-most-one-open
// invariant: a preventive work order in any of these states blocks synthesis
// of another one for the same (equipment, template) pair.
var OpenStatuses = []Status{StatusOpen, StatusAssigned, StatusInProgress}

// Priority enumerates work-order urgency, derived from equipment criticality
// at synthesis time.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ChecklistItem is a single row of work to perform.
type ChecklistItem struct {
	Component string `json:"component"`
	Action    string `json:"action"`
	Done      bool   `json:"done"`
}

// WorkOrder is a persisted unit of maintenance work.
type WorkOrder struct {
	ID              common.ID       `json:"id"`
	ScopeID         common.ScopeID  `json:"scope_id"`
	Type            Type            `json:"type"`
	EquipmentID     common.ID       `json:"equipment_id"`
	TemplateID      common.ID       `json:"template_id,omitempty"` // set for preventive orders
	Description     string          `json:"description"`
	Status          Status          `json:"status"`
	Priority        Priority        `json:"priority"`
	DueDate         time.Time       `json:"due_date"`
	Checklist       []ChecklistItem `json:"checklist"`
	EscalationLevel int             `json:"escalation_level"`
	Escalated       bool            `json:"escalated"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Draft is an in-memory, not-yet-persisted candidate work order produced by
// the synthesizer. Persisting a draft yields a WorkOrder.
type Draft struct {
	ScopeID     common.ScopeID  `json:"scope_id"`
	EquipmentID common.ID       `json:"equipment_id"`
	TemplateID  common.ID       `json:"template_id"`
	Description string          `json:"description"`
	Priority    Priority        `json:"priority"`
	DueDate     time.Time       `json:"due_date"`
	Checklist   []ChecklistItem `json:"checklist"`
}

// Validate checks a draft before persistence.
func (d *Draft) Validate() error {
	if d.ScopeID.IsZero() {
		return errors.InvalidParam("draft scope ID must not be empty")
	}
	if d.EquipmentID.IsZero() {
		return errors.InvalidParam("draft equipment ID must not be empty")
	}
	if d.TemplateID.IsZero() {
		return errors.InvalidParam("draft template ID must not be empty")
	}
	if d.DueDate.IsZero() {
		return errors.InvalidParam("draft due date must not be zero")
	}
	if len(d.Checklist) == 0 {
		return errors.InvalidParam("draft checklist must contain at least one item")
	}
	return nil
}

// NewFromDraft materialises a WorkOrder from a validated draft. The order is
// preventive, open, and at escalation level zero.
func NewFromDraft(d *Draft) (*WorkOrder, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	checklist := make([]ChecklistItem, len(d.Checklist))
	copy(checklist, d.Checklist)

	return &WorkOrder{
		ID:          common.NewID(),
		ScopeID:     d.ScopeID,
		Type:        TypePreventive,
		EquipmentID: d.EquipmentID,
		TemplateID:  d.TemplateID,
		Description: d.Description,
		Status:      StatusOpen,
		Priority:    d.Priority,
		DueDate:     d.DueDate,
		Checklist:   checklist,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// IsOpen reports whether the order is in an open state for dedup purposes.
func (w *WorkOrder) IsOpen() bool {
	switch w.Status {
	case StatusOpen, StatusAssigned, StatusInProgress:
		return true
	default:
		return false
	}
}

// OverdueBy returns how far past the due date the order is at now. A zero or
// negative duration means the order is not overdue.
func (w *WorkOrder) OverdueBy(now time.Time) time.Duration {
	return now.Sub(w.DueDate)
}

// EscalateTo raises the escalation level to level. Escalation is monotone:
// lowering the level is a state violation, and closed orders never escalate.
func (w *WorkOrder) EscalateTo(level int) error {
	if !w.IsOpen() {
		return errors.InvalidState("cannot escalate a closed work order")
	}
	if level <= w.EscalationLevel {
		return errors.InvalidState("escalation level only increases")
	}
	w.EscalationLevel = level
	w.Escalated = true
	w.UpdatedAt = time.Now().UTC()
	return nil
}
