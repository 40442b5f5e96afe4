package schedule

import "time"

// State classifies an (equipment, template) pair against its next due date.
type State string

const (
	// StateOnTrack means the pair is not yet inside the grace window.
	StateOnTrack State = "on_track"

	// StateDue means now lies inside [nextDue - grace, nextDue].
	StateDue State = "due"

	// StateOverdue means now lies strictly after nextDue.
	StateOverdue State = "overdue"
)

// Classify places now relative to nextDue with the given grace window:
//
//	on_track  now < nextDue - grace
//	due       nextDue - grace <= now <= nextDue
//	overdue   now > nextDue
func Classify(nextDue, now time.Time, grace time.Duration) State {
	if now.After(nextDue) {
		return StateOverdue
	}
	if now.Before(nextDue.Add(-grace)) {
		return StateOnTrack
	}
	return StateDue
}

// ShouldGenerate reports whether a pair in the given state produces a draft.
// PM is generated just in time: on-track pairs are skipped.
func ShouldGenerate(s State) bool {
	return s == StateDue || s == StateOverdue
}

// CompliancePercentage computes the share of preventive work completed on
// time, in [0,100]. Zero total is vacuously compliant (100), never a division
// by zero. Inputs are clamped so malformed history cannot push the result
// outside the range.
func CompliancePercentage(totalPM, missedPM int) float64 {
	if totalPM <= 0 {
		return 100
	}
	if missedPM < 0 {
		missedPM = 0
	}
	if missedPM > totalPM {
		missedPM = totalPM
	}
	return float64(totalPM-missedPM) / float64(totalPM) * 100
}
