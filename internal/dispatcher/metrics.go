package dispatcher

import (
	"sync"
	"time"

	"github.com/dshills/cmdhistory/internal/command"
)

// Metrics collects operation statistics. It may be read from other
// goroutines while the dispatcher is in use.
type Metrics struct {
	mu sync.RWMutex

	ops map[command.Operation]*OperationMetrics

	implicitSteps uint64
	totalErrors   uint64
	totalDuration time.Duration
}

// OperationMetrics holds metrics for one kind of operation.
type OperationMetrics struct {
	Op            command.Operation
	Count         uint64
	ErrorCount    uint64
	TotalDuration time.Duration
	MaxDuration   time.Duration
	LastRun       time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		ops: make(map[command.Operation]*OperationMetrics),
	}
}

// RecordOperation records one operation attempt.
func (m *Metrics) RecordOperation(op command.Operation, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	om := m.ops[op]
	if om == nil {
		om = &OperationMetrics{Op: op}
		m.ops[op] = om
	}

	om.Count++
	om.TotalDuration += duration
	om.LastRun = time.Now()
	if duration > om.MaxDuration {
		om.MaxDuration = duration
	}
	m.totalDuration += duration

	if err != nil {
		om.ErrorCount++
		m.totalErrors++
	}
}

// RecordImplicit records an implicit command that rode along with an
// explicit undo or redo step.
func (m *Metrics) RecordImplicit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.implicitSteps++
}

// Count returns the number of attempts of op.
func (m *Metrics) Count(op command.Operation) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if om := m.ops[op]; om != nil {
		return om.Count
	}
	return 0
}

// Stats returns a copy of the metrics for op, or nil if op never ran.
func (m *Metrics) Stats(op command.Operation) *OperationMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	om := m.ops[op]
	if om == nil {
		return nil
	}
	clone := *om
	return &clone
}

// ImplicitSteps returns how many implicit commands were undone or redone
// without counting as a step.
func (m *Metrics) ImplicitSteps() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.implicitSteps
}

// TotalErrors returns the number of failed operations.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalDuration returns the time spent in all operations.
func (m *Metrics) TotalDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDuration
}

// Reset clears all collected metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = make(map[command.Operation]*OperationMetrics)
	m.implicitSteps = 0
	m.totalErrors = 0
	m.totalDuration = 0
}
