package scheduling_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/application/scheduling"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/equipment"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/template"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/workorder"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

const testScope common.ScopeID = "plant-a"

func newTemplate(t *testing.T, model string, freq template.FrequencyUnit) *template.PMTemplate {
	t.Helper()
	tpl, err := template.NewPMTemplate(testScope, model, "hydraulic pump", "inspect and lubricate", freq)
	require.NoError(t, err)
	return tpl
}

func newAsset(t *testing.T, model string, crit equipment.Criticality, installed time.Time) *equipment.Equipment {
	t.Helper()
	asset, err := equipment.NewEquipment(testScope, model, "press "+model, crit, installed)
	require.NoError(t, err)
	return asset
}

func newSynth(t *testing.T, grace time.Duration) *scheduling.Synthesizer {
	t.Helper()
	return scheduling.NewSynthesizer(nil, grace, nil)
}

func TestSynthesize_GeneratesOverduePair(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	tpl := newTemplate(t, "HX-900", template.FrequencyMonthly)
	asset := newAsset(t, "HX-900", equipment.CriticalityHigh, now.AddDate(0, -3, 0))

	drafts, warnings := newSynth(t, time.Hour).Synthesize(
		[]*template.PMTemplate{tpl},
		[]*equipment.Equipment{asset},
		nil, nil, now,
	)

	require.Empty(t, warnings)
	require.Len(t, drafts, 1)
	d := drafts[0]
	assert.Equal(t, testScope, d.ScopeID)
	assert.Equal(t, asset.ID, d.EquipmentID)
	assert.Equal(t, tpl.ID, d.TemplateID)
	assert.Equal(t, workorder.PriorityHigh, d.Priority)
	// anchor is the install date, so the first cycle falls one month later
	assert.Equal(t, asset.InstallDate.AddDate(0, 1, 0), d.DueDate)
	require.Len(t, d.Checklist, 1)
	assert.Equal(t, "hydraulic pump", d.Checklist[0].Component)
	assert.Equal(t, "inspect and lubricate", d.Checklist[0].Action)
	assert.False(t, d.Checklist[0].Done)
}

func TestSynthesize_FutureDueDateProducesNothing(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	tpl := newTemplate(t, "HX-900", template.FrequencyMonthly)
	asset := newAsset(t, "HX-900", equipment.CriticalityMedium, now.AddDate(0, 0, -10))

	drafts, warnings := newSynth(t, time.Hour).Synthesize(
		[]*template.PMTemplate{tpl},
		[]*equipment.Equipment{asset},
		nil, nil, now,
	)

	assert.Empty(t, warnings)
	assert.Empty(t, drafts)
}

func TestSynthesize_WithinGraceWindowGenerates(t *testing.T) {
	t.Parallel()

	installed := time.Date(2026, time.February, 10, 9, 0, 0, 0, time.UTC)
	tpl := newTemplate(t, "HX-900", template.FrequencyMonthly)
	asset := newAsset(t, "HX-900", equipment.CriticalityLow, installed)

	// due date is March 10 09:00; 30 minutes before it is inside the window
	now := time.Date(2026, time.March, 10, 8, 30, 0, 0, time.UTC)
	drafts, _ := newSynth(t, time.Hour).Synthesize(
		[]*template.PMTemplate{tpl},
		[]*equipment.Equipment{asset},
		nil, nil, now,
	)
	require.Len(t, drafts, 1)
	assert.Equal(t, workorder.PriorityLow, drafts[0].Priority)
}

func TestSynthesize_SkipsOpenPair(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	tpl := newTemplate(t, "HX-900", template.FrequencyMonthly)
	asset := newAsset(t, "HX-900", equipment.CriticalityHigh, now.AddDate(0, -3, 0))

	open, err := workorder.NewFromDraft(&workorder.Draft{
		ScopeID:     testScope,
		EquipmentID: asset.ID,
		TemplateID:  tpl.ID,
		DueDate:     now.AddDate(0, -1, 0),
		Checklist:   []workorder.ChecklistItem{{Component: "x", Action: "y"}},
	})
	require.NoError(t, err)

	drafts, warnings := newSynth(t, time.Hour).Synthesize(
		[]*template.PMTemplate{tpl},
		[]*equipment.Equipment{asset},
		[]*workorder.WorkOrder{open},
		nil, now,
	)
	assert.Empty(t, warnings)
	assert.Empty(t, drafts, "an open order for the pair must suppress a new draft")
}

func TestSynthesize_ClosedOrderDoesNotSuppress(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	tpl := newTemplate(t, "HX-900", template.FrequencyMonthly)
	asset := newAsset(t, "HX-900", equipment.CriticalityHigh, now.AddDate(0, -3, 0))

	done, err := workorder.NewFromDraft(&workorder.Draft{
		ScopeID:     testScope,
		EquipmentID: asset.ID,
		TemplateID:  tpl.ID,
		DueDate:     now.AddDate(0, -1, 0),
		Checklist:   []workorder.ChecklistItem{{Component: "x", Action: "y"}},
	})
	require.NoError(t, err)
	done.Status = workorder.StatusCompleted

	drafts, _ := newSynth(t, time.Hour).Synthesize(
		[]*template.PMTemplate{tpl},
		[]*equipment.Equipment{asset},
		[]*workorder.WorkOrder{done},
		nil, now,
	)
	assert.Len(t, drafts, 1)
}

func TestSynthesize_AnchorsOnLastCompletion(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	tpl := newTemplate(t, "HX-900", template.FrequencyWeekly)
	asset := newAsset(t, "HX-900", equipment.CriticalityMedium, now.AddDate(-1, 0, 0))

	completed := time.Date(2026, time.May, 20, 10, 0, 0, 0, time.UTC)
	completions := map[workorder.PairKey]time.Time{
		{EquipmentID: asset.ID, TemplateID: tpl.ID}: completed,
	}

	drafts, warnings := newSynth(t, time.Hour).Synthesize(
		[]*template.PMTemplate{tpl},
		[]*equipment.Equipment{asset},
		nil, completions, now,
	)
	require.Empty(t, warnings)
	require.Len(t, drafts, 1)
	assert.Equal(t, completed.AddDate(0, 0, 7), drafts[0].DueDate,
		"due date must derive from the last completion, not the install date")
}

func TestSynthesize_FiltersInactiveAndMismatched(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	installed := now.AddDate(0, -6, 0)

	active := newTemplate(t, "HX-900", template.FrequencyMonthly)
	inactive := newTemplate(t, "HX-900", template.FrequencyMonthly)
	inactive.Active = false

	match := newAsset(t, "HX-900", equipment.CriticalityHigh, installed)
	wrongModel := newAsset(t, "hx-900", equipment.CriticalityHigh, installed)
	retired := newAsset(t, "HX-900", equipment.CriticalityHigh, installed)
	retired.Status = equipment.StatusRetired

	drafts, warnings := newSynth(t, time.Hour).Synthesize(
		[]*template.PMTemplate{active, inactive},
		[]*equipment.Equipment{match, wrongModel, retired},
		nil, nil, now,
	)
	require.Empty(t, warnings)
	require.Len(t, drafts, 1, "model matching is case-sensitive and only active pairs qualify")
	assert.Equal(t, match.ID, drafts[0].EquipmentID)
	assert.Equal(t, active.ID, drafts[0].TemplateID)
}

func TestSynthesize_MalformedPairWarnsAndContinues(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	installed := now.AddDate(0, -6, 0)

	bad := newTemplate(t, "HX-900", template.FrequencyMonthly)
	bad.Frequency = template.FrequencyUnit("fortnightly")
	good := newTemplate(t, "HX-900", template.FrequencyMonthly)
	asset := newAsset(t, "HX-900", equipment.CriticalityMedium, installed)

	drafts, warnings := newSynth(t, time.Hour).Synthesize(
		[]*template.PMTemplate{bad, good},
		[]*equipment.Equipment{asset},
		nil, nil, now,
	)
	require.Len(t, warnings, 1)
	assert.Equal(t, bad.ID, warnings[0].TemplateID)
	assert.Equal(t, asset.ID, warnings[0].EquipmentID)
	require.Len(t, drafts, 1, "one bad pair must not poison the batch")
	assert.Equal(t, good.ID, drafts[0].TemplateID)
}

func TestSynthesize_ZeroAnchorWarns(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	tpl := newTemplate(t, "HX-900", template.FrequencyMonthly)
	asset := newAsset(t, "HX-900", equipment.CriticalityMedium, now.AddDate(0, -6, 0))
	asset.InstallDate = time.Time{}

	drafts, warnings := newSynth(t, time.Hour).Synthesize(
		[]*template.PMTemplate{tpl},
		[]*equipment.Equipment{asset},
		nil, nil, now,
	)
	assert.Empty(t, drafts)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].Reason, "anchor")
}

func TestSynthesize_Deterministic(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 15, 8, 0, 0, 0, time.UTC)
	tpl := newTemplate(t, "HX-900", template.FrequencyQuarterly)
	asset := newAsset(t, "HX-900", equipment.CriticalityCritical, now.AddDate(-1, 0, 0))
	synth := newSynth(t, time.Hour)

	first, _ := synth.Synthesize([]*template.PMTemplate{tpl}, []*equipment.Equipment{asset}, nil, nil, now)
	second, _ := synth.Synthesize([]*template.PMTemplate{tpl}, []*equipment.Equipment{asset}, nil, nil, now)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].DueDate, second[0].DueDate)
	assert.Equal(t, first[0].Priority, second[0].Priority)
}
