package ossim

import "testing"

func TestRecordDispatchIncrementsTotals(t *testing.T) {
	m := NewMetrics()
	m.RecordDispatch("RR-P")
	m.RecordDispatch("RR-P")
	m.RecordDispatch("FCFS-N")

	snap := m.Snapshot()
	if snap.Dispatches != 3 {
		t.Errorf("expected 3 dispatches, got %d", snap.Dispatches)
	}
}

func TestRecordEventsIndependently(t *testing.T) {
	m := NewMetrics()
	m.RecordOpCompleted('P')
	m.RecordQuantumExpired()
	m.RecordBlocked()
	m.RecordInterrupt()
	m.RecordIdle()
	m.RecordSegFault()
	m.RecordExit()

	snap := m.Snapshot()
	if snap.OpsCompleted != 1 || snap.QuantumExpiries != 1 || snap.Blocks != 1 ||
		snap.Interrupts != 1 || snap.IdleTicks != 1 || snap.SegFaults != 1 || snap.Exits != 1 {
		t.Errorf("expected each counter at 1, got %+v", snap)
	}
}

func TestResetZeroesCounters(t *testing.T) {
	m := NewMetrics()
	m.RecordDispatch("SJF-N")
	m.RecordExit()
	m.Reset()

	snap := m.Snapshot()
	if snap.Dispatches != 0 || snap.Exits != 0 {
		t.Errorf("expected counters reset to 0, got %+v", snap)
	}
}

func TestMetricsObserverDelegatesToMetrics(t *testing.T) {
	m := NewMetrics()
	obs := NewMetricsObserver(m)

	obs.ObserveDispatch(0, "FCFS-P")
	obs.ObserveOpCompleted('I')
	obs.ObserveExit()

	snap := m.Snapshot()
	if snap.Dispatches != 1 || snap.OpsCompleted != 1 || snap.Exits != 1 {
		t.Errorf("expected observer to record through to metrics, got %+v", snap)
	}
}

func TestNoOpObserverDoesNotPanic(t *testing.T) {
	var obs NoOpObserver
	obs.ObserveDispatch(0, "RR-P")
	obs.ObserveOpCompleted('M')
	obs.ObserveQuantumExpired()
	obs.ObserveBlocked()
	obs.ObserveInterrupt()
	obs.ObserveIdle()
	obs.ObserveSegFault()
	obs.ObserveExit()
}
