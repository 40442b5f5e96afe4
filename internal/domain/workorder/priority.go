package workorder

import "github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/equipment"

// PriorityPolicy maps equipment criticality to the priority of a synthesized
// preventive work order. It is an explicit, overridable policy point rather
// than an inline constant: escalation later raises effective urgency
// independently of this field.
type PriorityPolicy func(equipment.Criticality) Priority

// DefaultPriorityPolicy maps each criticality to the priority of the same
// name. Unknown criticality falls back to medium so a malformed asset still
// yields a workable draft.
func DefaultPriorityPolicy(c equipment.Criticality) Priority {
	switch c {
	case equipment.CriticalityCritical:
		return PriorityCritical
	case equipment.CriticalityHigh:
		return PriorityHigh
	case equipment.CriticalityLow:
		return PriorityLow
	default:
		return PriorityMedium
	}
}
