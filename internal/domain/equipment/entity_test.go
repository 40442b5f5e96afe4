package equipment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/equipment"
)

func TestNewEquipment(t *testing.T) {
	t.Parallel()

	installed := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	eq, err := equipment.NewEquipment("scope-1", "PumpX", "Feed pump 3", equipment.CriticalityHigh, installed)
	require.NoError(t, err)

	assert.False(t, eq.ID.IsZero())
	assert.Equal(t, equipment.StatusActive, eq.Status)
	assert.True(t, eq.IsPMEligible())
	require.NoError(t, eq.Validate())
}

func TestNewEquipment_Invalid(t *testing.T) {
	t.Parallel()

	installed := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)

	_, err := equipment.NewEquipment("", "PumpX", "p", equipment.CriticalityLow, installed)
	assert.Error(t, err)

	_, err = equipment.NewEquipment("scope-1", "", "p", equipment.CriticalityLow, installed)
	assert.Error(t, err)

	_, err = equipment.NewEquipment("scope-1", "PumpX", "p", equipment.Criticality("extreme"), installed)
	assert.Error(t, err)

	_, err = equipment.NewEquipment("scope-1", "PumpX", "p", equipment.CriticalityLow, time.Time{})
	assert.Error(t, err)
}

func TestIsPMEligible_OnlyActive(t *testing.T) {
	t.Parallel()

	installed := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	eq, err := equipment.NewEquipment("scope-1", "PumpX", "p", equipment.CriticalityMedium, installed)
	require.NoError(t, err)

	for _, st := range []equipment.Status{
		equipment.StatusInactive,
		equipment.StatusRetired,
		equipment.StatusMaintenance,
	} {
		eq.Status = st
		assert.False(t, eq.IsPMEligible(), string(st))
	}

	eq.Status = equipment.StatusActive
	assert.True(t, eq.IsPMEligible())
}
