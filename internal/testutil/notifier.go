package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/Coding-Krakken/MaintAInPro-sub003/internal/application/scheduling"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/errors"
	"github.com/Coding-Krakken/MaintAInPro-sub003/pkg/types/common"
)

func schedulingScopeLocked(scopeID common.ScopeID) error {
	return errors.Newf(errors.ErrCodeScopeLocked, "scheduling run already in progress for scope %s", scopeID)
}

// Notifier records every notification it receives. Set Err to make every
// publish fail.
type Notifier struct {
	mu   sync.Mutex
	sent []scheduling.Notification
	Err  error
}

// NewNotifier builds an empty recording notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(_ context.Context, msg scheduling.Notification) error {
	if n.Err != nil {
		return n.Err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

// Sent returns a copy of everything recorded so far.
func (n *Notifier) Sent() []scheduling.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]scheduling.Notification, len(n.sent))
	copy(out, n.sent)
	return out
}

// SentOfType filters the recorded notifications by type.
func (n *Notifier) SentOfType(t scheduling.NotificationType) []scheduling.Notification {
	var out []scheduling.Notification
	for _, msg := range n.Sent() {
		if msg.Type == t {
			out = append(out, msg)
		}
	}
	return out
}

// Locker is an in-process scheduling.RunLocker.
type Locker struct {
	mu   sync.Mutex
	held map[common.ScopeID]bool

	// Acquired counts successful acquisitions.
	Acquired int
}

// NewLocker builds an empty locker.
func NewLocker() *Locker {
	return &Locker{held: make(map[common.ScopeID]bool)}
}

func (l *Locker) TryAcquire(_ context.Context, scopeID common.ScopeID) (func(context.Context), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[scopeID] {
		return nil, schedulingScopeLocked(scopeID)
	}
	l.held[scopeID] = true
	l.Acquired++
	return func(context.Context) {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, scopeID)
	}, nil
}

// Metrics is a recording scheduling.Metrics.
type Metrics struct {
	mu sync.Mutex

	Generated      int
	Skipped        int
	Escalations    int
	NotifyFailures int
	BatchDurations []time.Duration
}

// NewMetrics builds an empty recording metrics sink.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) WorkOrdersGenerated(_ common.ScopeID, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Generated += n
}

func (m *Metrics) DraftsSkipped(_ common.ScopeID, _ string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Skipped += n
}

func (m *Metrics) EscalationsRaised(_ common.ScopeID, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Escalations += n
}

func (m *Metrics) NotificationFailures(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NotifyFailures += n
}

func (m *Metrics) GenerationDuration(_ common.ScopeID, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BatchDurations = append(m.BatchDurations, d)
}

// Cache is an in-memory scheduling.ComplianceCache.
type Cache struct {
	mu      sync.Mutex
	records map[common.ID]*scheduling.ComplianceRecord

	Hits, Misses int
}

// NewCache builds an empty cache.
func NewCache() *Cache {
	return &Cache{records: make(map[common.ID]*scheduling.ComplianceRecord)}
}

func (c *Cache) Get(_ context.Context, equipmentID common.ID) (*scheduling.ComplianceRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	record, ok := c.records[equipmentID]
	if ok {
		c.Hits++
	} else {
		c.Misses++
	}
	return record, ok
}

func (c *Cache) Set(_ context.Context, record *scheduling.ComplianceRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records[record.EquipmentID] = record
}
