package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/schedule"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	grace := time.Hour

	cases := []struct {
		name string
		now  time.Time
		want schedule.State
	}{
		{"well before window", due.Add(-24 * time.Hour), schedule.StateOnTrack},
		{"just before window", due.Add(-grace - time.Second), schedule.StateOnTrack},
		{"window opens", due.Add(-grace), schedule.StateDue},
		{"inside window", due.Add(-30 * time.Minute), schedule.StateDue},
		{"exactly due", due, schedule.StateDue},
		{"one second late", due.Add(time.Second), schedule.StateOverdue},
		{"long overdue", due.Add(72 * time.Hour), schedule.StateOverdue},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, schedule.Classify(due, tc.now, grace))
		})
	}
}

func TestClassify_ZeroGrace(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, schedule.StateOnTrack, schedule.Classify(due, due.Add(-time.Second), 0))
	assert.Equal(t, schedule.StateDue, schedule.Classify(due, due, 0))
	assert.Equal(t, schedule.StateOverdue, schedule.Classify(due, due.Add(time.Second), 0))
}

func TestShouldGenerate(t *testing.T) {
	t.Parallel()

	assert.False(t, schedule.ShouldGenerate(schedule.StateOnTrack))
	assert.True(t, schedule.ShouldGenerate(schedule.StateDue))
	assert.True(t, schedule.ShouldGenerate(schedule.StateOverdue))
}

func TestCompliancePercentage(t *testing.T) {
	t.Parallel()

	// Zero history is vacuously compliant.
	assert.Equal(t, float64(100), schedule.CompliancePercentage(0, 0))

	assert.Equal(t, float64(100), schedule.CompliancePercentage(10, 0))
	assert.Equal(t, float64(50), schedule.CompliancePercentage(10, 5))
	assert.Equal(t, float64(0), schedule.CompliancePercentage(10, 10))
	assert.InDelta(t, 66.67, schedule.CompliancePercentage(3, 1), 0.01)
}

func TestCompliancePercentage_ClampsMalformedInputs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, float64(100), schedule.CompliancePercentage(-1, 5))
	assert.Equal(t, float64(100), schedule.CompliancePercentage(10, -2))
	assert.Equal(t, float64(0), schedule.CompliancePercentage(5, 9))
}

func TestFixedClock(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	var c schedule.Clock = schedule.FixedClock{T: at}
	assert.Equal(t, at, c.Now())

	now := schedule.SystemClock{}.Now()
	assert.Equal(t, time.UTC, now.Location())
}
