package ossim

import (
	"sync/atomic"
	"time"

	"github.com/ehrlich-b/go-ossim/internal/interfaces"
)

// Metrics tracks run-level statistics for a simulator run: how many
// times the dispatcher selected a process, how each operation kind was
// handled, and the timestamps bookending the run.
type Metrics struct {
	Dispatches       atomic.Uint64 // Process selections
	OpsCompleted     atomic.Uint64 // Completed P/I/O/M operations
	QuantumExpiries  atomic.Uint64 // Preemptions at quantum boundary
	Blocks           atomic.Uint64 // I/O ops that spawned a worker
	Interrupts       atomic.Uint64 // Interrupt-queue drains
	IdleTicks        atomic.Uint64 // CPU-idle waits
	SegFaults        atomic.Uint64 // Memory faults terminating a process
	Exits            atomic.Uint64 // Processes that reached Exit

	// Per scheduling code dispatch counters, keyed by the five policy
	// codes plus NONE; index order matches constants.SchedCodes.
	dispatchesByCode [6]atomic.Uint64

	StartTime atomic.Int64 // Run start timestamp (UnixNano)
	StopTime  atomic.Int64 // Run stop timestamp (UnixNano)
}

// NewMetrics creates a metrics instance with StartTime set to now.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.StartTime.Store(time.Now().UnixNano())
	return m
}

func schedCodeIndex(code string) int {
	switch code {
	case "NONE":
		return 0
	case "FCFS-N":
		return 1
	case "SJF-N":
		return 2
	case "SRTF-P":
		return 3
	case "FCFS-P":
		return 4
	case "RR-P":
		return 5
	default:
		return 0
	}
}

// RecordDispatch records one process selection under schedCode.
func (m *Metrics) RecordDispatch(schedCode string) {
	m.Dispatches.Add(1)
	m.dispatchesByCode[schedCodeIndex(schedCode)].Add(1)
}

// RecordOpCompleted records a completed operation of the given command byte.
func (m *Metrics) RecordOpCompleted(command byte) {
	m.OpsCompleted.Add(1)
}

func (m *Metrics) RecordQuantumExpired() { m.QuantumExpiries.Add(1) }
func (m *Metrics) RecordBlocked()        { m.Blocks.Add(1) }
func (m *Metrics) RecordInterrupt()      { m.Interrupts.Add(1) }
func (m *Metrics) RecordIdle()           { m.IdleTicks.Add(1) }
func (m *Metrics) RecordSegFault()       { m.SegFaults.Add(1) }
func (m *Metrics) RecordExit()           { m.Exits.Add(1) }

// Stop marks the run as finished.
func (m *Metrics) Stop() {
	m.StopTime.Store(time.Now().UnixNano())
}

// MetricsSnapshot is a point-in-time read of Metrics.
type MetricsSnapshot struct {
	Dispatches      uint64
	OpsCompleted    uint64
	QuantumExpiries uint64
	Blocks          uint64
	Interrupts      uint64
	IdleTicks       uint64
	SegFaults       uint64
	Exits           uint64
	UptimeNs        uint64
}

// Snapshot returns a consistent-enough read of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Dispatches:      m.Dispatches.Load(),
		OpsCompleted:    m.OpsCompleted.Load(),
		QuantumExpiries: m.QuantumExpiries.Load(),
		Blocks:          m.Blocks.Load(),
		Interrupts:      m.Interrupts.Load(),
		IdleTicks:       m.IdleTicks.Load(),
		SegFaults:       m.SegFaults.Load(),
		Exits:           m.Exits.Load(),
	}

	start := m.StartTime.Load()
	stop := m.StopTime.Load()
	if stop > 0 {
		snap.UptimeNs = uint64(stop - start)
	} else {
		snap.UptimeNs = uint64(time.Now().UnixNano() - start)
	}
	return snap
}

// Reset zeroes all counters and restarts StartTime (useful for testing).
func (m *Metrics) Reset() {
	m.Dispatches.Store(0)
	m.OpsCompleted.Store(0)
	m.QuantumExpiries.Store(0)
	m.Blocks.Store(0)
	m.Interrupts.Store(0)
	m.IdleTicks.Store(0)
	m.SegFaults.Store(0)
	m.Exits.Store(0)
	for i := range m.dispatchesByCode {
		m.dispatchesByCode[i].Store(0)
	}
	m.StartTime.Store(time.Now().UnixNano())
	m.StopTime.Store(0)
}

// MetricsObserver implements interfaces.Observer by recording into a Metrics.
type MetricsObserver struct {
	metrics *Metrics
}

// NewMetricsObserver creates an observer that records to the given metrics.
func NewMetricsObserver(m *Metrics) *MetricsObserver {
	return &MetricsObserver{metrics: m}
}

func (o *MetricsObserver) ObserveDispatch(processNum int, schedCode string) {
	o.metrics.RecordDispatch(schedCode)
}
func (o *MetricsObserver) ObserveOpCompleted(command byte) { o.metrics.RecordOpCompleted(command) }
func (o *MetricsObserver) ObserveQuantumExpired()          { o.metrics.RecordQuantumExpired() }
func (o *MetricsObserver) ObserveBlocked()                 { o.metrics.RecordBlocked() }
func (o *MetricsObserver) ObserveInterrupt()                { o.metrics.RecordInterrupt() }
func (o *MetricsObserver) ObserveIdle()                     { o.metrics.RecordIdle() }
func (o *MetricsObserver) ObserveSegFault()                 { o.metrics.RecordSegFault() }
func (o *MetricsObserver) ObserveExit()                     { o.metrics.RecordExit() }

// NoOpObserver discards every event.
type NoOpObserver struct{}

func (NoOpObserver) ObserveDispatch(int, string)  {}
func (NoOpObserver) ObserveOpCompleted(byte)      {}
func (NoOpObserver) ObserveQuantumExpired()       {}
func (NoOpObserver) ObserveBlocked()              {}
func (NoOpObserver) ObserveInterrupt()            {}
func (NoOpObserver) ObserveIdle()                 {}
func (NoOpObserver) ObserveSegFault()              {}
func (NoOpObserver) ObserveExit()                  {}

var _ interfaces.Observer = (*MetricsObserver)(nil)
var _ interfaces.Observer = (*NoOpObserver)(nil)
