// Package interrupt implements the simulator's interrupt queue and I/O
// worker: a growable, mutex-guarded sequence of completion records
// posted by detached background workers and drained by the dispatcher
// at safe points.
package interrupt

import (
	"sync"

	"github.com/ehrlich-b/go-ossim/internal/constants"
	"github.com/ehrlich-b/go-ossim/internal/interfaces"
	"github.com/ehrlich-b/go-ossim/internal/pcb"
	"github.com/ehrlich-b/go-ossim/internal/tracelog"
)

// Record is one I/O completion: the PCB to wake, the nominal run time
// billed against its processTime, the opString/opPrint pair for the
// trace line, and EndTime sampled at post time (-1 sentinel for "not
// yet posted").
type Record struct {
	PCB      *pcb.PCB
	RunTime  int64
	EndTime  float64
	OpString string
	OpPrint  string
}

// Queue is the growable interrupt queue. Workers append under mu and
// signal cond; the dispatcher drains under mu without blocking, or
// blocks on cond via WaitNonEmpty during idle.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	records []*Record
}

// NewQueue returns an empty Queue, pre-sized to the default outstanding
// I/O capacity as a hint, not a hard cap.
func NewQueue() *Queue {
	q := &Queue{records: make([]*Record, 0, constants.DefaultInterruptQueueCapacity)}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// CreateInterrupt allocates a record with EndTime=-1, meaning "not yet
// posted".
func CreateInterrupt(p *pcb.PCB, runTime int64, opString, opPrint string) *Record {
	return &Record{PCB: p, RunTime: runTime, EndTime: -1, OpString: opString, OpPrint: opPrint}
}

// SpawnWorker launches a detached goroutine that delays for
// rec.RunTime ms in real wall time, then posts rec onto q under the
// interrupt mutex. Workers never mutate PCB state: processTime is
// decremented later, by Drain, at consume time, so a worker finishing
// mid-drain can never race the dispatcher's own view of processTime.
func (q *Queue) SpawnWorker(clock interfaces.Clock, rec *Record) {
	go func() {
		clock.Delay(rec.RunTime)

		q.mu.Lock()
		rec.EndTime = clock.Lap()
		q.records = append(q.records, rec)
		q.cond.Signal()
		q.mu.Unlock()
	}()
}

// WaitNonEmpty blocks until the queue holds at least one record. Used
// by the dispatcher's idle handling: wait for the interrupt queue to
// become non-empty, then drain and rescan.
func (q *Queue) WaitNonEmpty() {
	q.mu.Lock()
	for len(q.records) == 0 {
		q.cond.Wait()
	}
	q.mu.Unlock()
}

// Len reports the current queue depth.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.records)
}

// Drain consumes every queued record in insertion order: decrements
// the owning PCB's processTime by RunTime, emits the interrupt trace
// lines, and sets the PCB Ready. The queue is empty when Drain
// returns. A no-op on an empty queue emits nothing.
func Drain(q *Queue, log *tracelog.Log) {
	q.mu.Lock()
	records := q.records
	q.records = nil
	q.mu.Unlock()

	if len(records) == 0 {
		return
	}

	log.Append("OS: Handling Interupts")
	for _, rec := range records {
		rec.PCB.ProcessTime -= rec.RunTime
		if rec.PCB.ProcessTime < 0 {
			rec.PCB.ProcessTime = 0
		}
		log.Appendf("OS: Interupt, Process %d", rec.PCB.ProcessNum)
		log.Appendf("Process %d, %s %s end", rec.PCB.ProcessNum, rec.OpString, rec.OpPrint)
		rec.PCB.State = pcb.Ready
	}
}
