package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/schedule"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/template"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 8, 30, 0, 0, time.UTC)
}

func TestNextDueDate_DailyWeekly(t *testing.T) {
	t.Parallel()

	anchor := date(2026, 6, 15)

	next, err := schedule.NextDueDate(anchor, template.FrequencyDaily)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 6, 16), next)

	next, err = schedule.NextDueDate(anchor, template.FrequencyWeekly)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 6, 22), next)
}

func TestNextDueDate_MonthlyClampsMonthEnd(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		anchor time.Time
		want   time.Time
	}{
		{"jan31 non-leap", date(2025, 1, 31), date(2025, 2, 28)},
		{"jan31 leap", date(2028, 1, 31), date(2028, 2, 29)},
		{"mar31", date(2026, 3, 31), date(2026, 4, 30)},
		{"may31", date(2026, 5, 31), date(2026, 6, 30)},
		{"dec15 rolls year", date(2026, 12, 15), date(2027, 1, 15)},
		{"mid-month untouched", date(2026, 4, 12), date(2026, 5, 12)},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			next, err := schedule.NextDueDate(tc.anchor, template.FrequencyMonthly)
			require.NoError(t, err)
			assert.Equal(t, tc.want, next)
		})
	}
}

func TestNextDueDate_QuarterlyClampsMonthEnd(t *testing.T) {
	t.Parallel()

	// Nov 30 + 3 months lands on Feb 28/29, not Mar 2.
	next, err := schedule.NextDueDate(date(2025, 11, 30), template.FrequencyQuarterly)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 2, 28), next)

	next, err = schedule.NextDueDate(date(2027, 11, 30), template.FrequencyQuarterly)
	require.NoError(t, err)
	assert.Equal(t, date(2028, 2, 29), next)

	next, err = schedule.NextDueDate(date(2026, 1, 31), template.FrequencyQuarterly)
	require.NoError(t, err)
	assert.Equal(t, date(2026, 4, 30), next)
}

func TestNextDueDate_AnnualFeb29Fallback(t *testing.T) {
	t.Parallel()

	// 2028 is a leap year; 2029 is not.
	next, err := schedule.NextDueDate(date(2028, 2, 29), template.FrequencyAnnual)
	require.NoError(t, err)
	assert.Equal(t, date(2029, 2, 28), next)

	next, err = schedule.NextDueDate(date(2026, 7, 4), template.FrequencyAnnual)
	require.NoError(t, err)
	assert.Equal(t, date(2027, 7, 4), next)
}

func TestNextDueDate_StrictlyAfterAnchor(t *testing.T) {
	t.Parallel()

	anchors := []time.Time{
		date(2025, 1, 1), date(2025, 1, 31), date(2025, 2, 28),
		date(2028, 2, 29), date(2026, 12, 31), date(2026, 6, 15),
	}
	freqs := []template.FrequencyUnit{
		template.FrequencyDaily, template.FrequencyWeekly, template.FrequencyMonthly,
		template.FrequencyQuarterly, template.FrequencyAnnual,
	}

	for _, anchor := range anchors {
		for _, f := range freqs {
			next, err := schedule.NextDueDate(anchor, f)
			require.NoError(t, err)
			assert.True(t, next.After(anchor), "%s + %s = %s", anchor, f, next)
		}
	}
}

func TestNextDueDate_PreservesTimeOfDay(t *testing.T) {
	t.Parallel()

	anchor := time.Date(2026, 1, 31, 14, 45, 10, 0, time.UTC)
	next, err := schedule.NextDueDate(anchor, template.FrequencyMonthly)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 28, 14, 45, 10, 0, time.UTC), next)
}

func TestNextDueDate_UnknownFrequencyFails(t *testing.T) {
	t.Parallel()

	_, err := schedule.NextDueDate(date(2026, 1, 1), template.FrequencyUnit("fortnightly"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidFrequency))

	_, err = schedule.NextDueDate(date(2026, 1, 1), template.FrequencyUnit(""))
	require.Error(t, err)
}
