package scheduling_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/application/scheduling"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/equipment"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/schedule"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/template"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/domain/workorder"
	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/testutil"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
)

type engineFixture struct {
	templates  *testutil.TemplateRepo
	assets     *testutil.EquipmentRepo
	workorders *testutil.WorkOrderRepo
	notifier   *testutil.Notifier
	clock      schedule.FixedClock
	engine     *scheduling.Engine
}

func newEngineFixture(t *testing.T, now time.Time, locks scheduling.RunLocker) *engineFixture {
	t.Helper()

	f := &engineFixture{
		templates:  testutil.NewTemplateRepo(),
		assets:     testutil.NewEquipmentRepo(),
		workorders: testutil.NewWorkOrderRepo(),
		notifier:   testutil.NewNotifier(),
		clock:      schedule.FixedClock{T: now},
	}
	engine, err := scheduling.NewEngine(scheduling.EngineDeps{
		Templates:  f.templates,
		Assets:     f.assets,
		WorkOrders: f.workorders,
		Synth:      scheduling.NewSynthesizer(nil, time.Hour, nil),
		Notifier:   f.notifier,
		Locks:      locks,
		Clock:      f.clock,
	})
	require.NoError(t, err)
	f.engine = engine
	return f
}

func (f *engineFixture) seedOverduePair(t *testing.T, now time.Time) (*template.PMTemplate, *equipment.Equipment) {
	t.Helper()
	tpl := newTemplate(t, "HX-900", template.FrequencyMonthly)
	asset := newAsset(t, "HX-900", equipment.CriticalityCritical, now.AddDate(0, -2, 0))
	f.templates.Put(tpl)
	f.assets.Put(asset)
	return tpl, asset
}

func TestGenerateWorkOrders_CreatesAndNotifies(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 1, 6, 0, 0, 0, time.UTC)
	f := newEngineFixture(t, now, nil)
	tpl, asset := f.seedOverduePair(t, now)

	created, err := f.engine.GenerateWorkOrders(context.Background(), testScope)
	require.NoError(t, err)
	require.Len(t, created, 1)

	wo := created[0]
	assert.Equal(t, workorder.TypePreventive, wo.Type)
	assert.Equal(t, workorder.StatusOpen, wo.Status)
	assert.Equal(t, workorder.PriorityCritical, wo.Priority)
	assert.Equal(t, tpl.ID, wo.TemplateID)
	assert.Equal(t, asset.ID, wo.EquipmentID)
	assert.Zero(t, wo.EscalationLevel)

	due := f.notifier.SentOfType(scheduling.NotificationPMDue)
	require.Len(t, due, 1)
	assert.Equal(t, wo.ID.String(), due[0].Payload["work_order_id"])
	assert.Equal(t, testScope, due[0].ScopeID)
}

func TestGenerateWorkOrders_SecondRunIsIdempotent(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 1, 6, 0, 0, 0, time.UTC)
	f := newEngineFixture(t, now, nil)
	f.seedOverduePair(t, now)

	first, err := f.engine.GenerateWorkOrders(context.Background(), testScope)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := f.engine.GenerateWorkOrders(context.Background(), testScope)
	require.NoError(t, err)
	assert.Empty(t, second, "the open order from the first run must suppress a second one")
	assert.Len(t, f.workorders.All(), 1)
}

func TestGenerateWorkOrders_ReadFailureIsFatal(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 1, 6, 0, 0, 0, time.UTC)
	f := newEngineFixture(t, now, nil)
	f.seedOverduePair(t, now)
	f.templates.Err = errors.Internal("connection refused")

	created, err := f.engine.GenerateWorkOrders(context.Background(), testScope)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeStorageReadFailure))
	assert.Empty(t, created)
}

func TestGenerateWorkOrders_WriteFailureSkipsDraftOnly(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 1, 6, 0, 0, 0, time.UTC)
	f := newEngineFixture(t, now, nil)
	f.seedOverduePair(t, now)
	f.workorders.CreateErr = errors.Internal("disk full")

	created, err := f.engine.GenerateWorkOrders(context.Background(), testScope)
	require.NoError(t, err, "a per-draft write failure must not abort the batch")
	assert.Empty(t, created)
	assert.Empty(t, f.notifier.Sent(), "no order, no notification")
}

func TestGenerateWorkOrders_DuplicateConflictIsASkip(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 1, 6, 0, 0, 0, time.UTC)
	f := newEngineFixture(t, now, nil)
	f.seedOverduePair(t, now)
	f.workorders.CreateErr = errors.New(errors.ErrCodeDuplicateOpenWorkOrder, "pair already open")

	created, err := f.engine.GenerateWorkOrders(context.Background(), testScope)
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestGenerateWorkOrders_NotificationFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 1, 6, 0, 0, 0, time.UTC)
	f := newEngineFixture(t, now, nil)
	f.seedOverduePair(t, now)
	f.notifier.Err = errors.New(errors.ErrCodeNotificationFailure, "broker unreachable")

	created, err := f.engine.GenerateWorkOrders(context.Background(), testScope)
	require.NoError(t, err)
	assert.Len(t, created, 1, "the order must land even when the notification does not")
}

func TestGenerateWorkOrders_ScopeLockRejectsConcurrentRun(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 1, 6, 0, 0, 0, time.UTC)
	locks := testutil.NewLocker()
	f := newEngineFixture(t, now, locks)
	f.seedOverduePair(t, now)

	release, err := locks.TryAcquire(context.Background(), testScope)
	require.NoError(t, err)

	_, err = f.engine.GenerateWorkOrders(context.Background(), testScope)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeScopeLocked))

	release(context.Background())
	created, err := f.engine.GenerateWorkOrders(context.Background(), testScope)
	require.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestGenerateWorkOrders_CancelledContextStopsBatch(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 1, 6, 0, 0, 0, time.UTC)
	f := newEngineFixture(t, now, nil)
	f.seedOverduePair(t, now)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	created, err := f.engine.GenerateWorkOrders(ctx, testScope)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
	assert.Empty(t, created)
}

func TestGenerateWorkOrders_DurationMetricUsesWallClock(t *testing.T) {
	t.Parallel()

	// A scheduling clock fixed far in the past must not leak into the
	// batch duration observation.
	now := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	metrics := testutil.NewMetrics()

	f := newEngineFixture(t, now, nil)
	engine, err := scheduling.NewEngine(scheduling.EngineDeps{
		Templates:  f.templates,
		Assets:     f.assets,
		WorkOrders: f.workorders,
		Synth:      scheduling.NewSynthesizer(nil, time.Hour, nil),
		Notifier:   f.notifier,
		Clock:      f.clock,
		Metrics:    metrics,
	})
	require.NoError(t, err)

	_, err = engine.GenerateWorkOrders(context.Background(), testScope)
	require.NoError(t, err)

	require.Len(t, metrics.BatchDurations, 1)
	d := metrics.BatchDurations[0]
	assert.GreaterOrEqual(t, d, time.Duration(0))
	assert.Less(t, d, time.Minute)
}

func TestGenerateWorkOrders_EmptyScopeID(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.April, 1, 6, 0, 0, 0, time.UTC)
	f := newEngineFixture(t, now, nil)

	_, err := f.engine.GenerateWorkOrders(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeBadRequest))
}
