// Package pcb implements the simulator's process control block and
// operation cursor: per-process state, a cursor into the parsed
// metadata stream, and the non-preemptive chain / preemptive ring
// linkage the scheduler selects over.
package pcb

import (
	"fmt"

	"github.com/ehrlich-b/go-ossim/internal/metadata"
)

// State is a PCB's lifecycle state.
type State int

const (
	New State = iota
	Ready
	Blocked
	Running
	Exit
)

func (s State) String() string {
	switch s {
	case New:
		return "New"
	case Ready:
		return "Ready"
	case Blocked:
		return "Blocked"
	case Running:
		return "Running"
	case Exit:
		return "Exit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// PCB is one simulated process: its identity, residual time estimate,
// a cursor into its operation stream, its lifecycle state, and a link
// to the next PCB in whichever topology the active policy requires.
type PCB struct {
	ProcessNum  int
	ProcessTime int64 // ms; decremented as work executes
	Cursor      *metadata.Op
	State       State
	Next        *PCB

	// OpStarted marks whether the current Cursor op has already logged
	// its "start" trace line. A preemptive P op may span several
	// quantum slices; only the first slice logs start and only the
	// slice that exhausts cycleTime logs end.
	OpStarted bool
}

// NewPCB creates a PCB for processNum with its operation stream starting
// at head and its initial residual time estimate.
func NewPCB(processNum int, head *metadata.Op, processTime int64) *PCB {
	return &PCB{
		ProcessNum:  processNum,
		ProcessTime: processTime,
		Cursor:      head,
		State:       New,
	}
}

// EstimateProcessTime sums the nominal ms cost of every operation in
// the chain starting at head: P costs cycleTime*processorCycleTime,
// I/O costs cycleTime*ioCycleTime, M and S/A are zero-cost.
func EstimateProcessTime(head *metadata.Op, processorCycleTime, ioCycleTime int64) int64 {
	var total int64
	for op := head; op != nil; op = op.Next {
		switch op.Command {
		case metadata.CommandProcessing:
			total += int64(op.CycleTime) * processorCycleTime
		case metadata.CommandInput, metadata.CommandOutput:
			total += int64(op.CycleTime) * ioCycleTime
		}
	}
	return total
}

// BuildChain nil-terminates pcbs in order, for non-preemptive
// policies. It returns the head (pcbs[0], or nil for an empty slice).
func BuildChain(pcbs []*PCB) *PCB {
	for i := 0; i+1 < len(pcbs); i++ {
		pcbs[i].Next = pcbs[i+1]
	}
	if len(pcbs) > 0 {
		pcbs[len(pcbs)-1].Next = nil
	}
	if len(pcbs) == 0 {
		return nil
	}
	return pcbs[0]
}

// BuildRing links pcbs into a circular list, for preemptive policies.
// It returns the head (pcbs[0], or nil for an empty slice).
func BuildRing(pcbs []*PCB) *PCB {
	if len(pcbs) == 0 {
		return nil
	}
	for i := 0; i+1 < len(pcbs); i++ {
		pcbs[i].Next = pcbs[i+1]
	}
	pcbs[len(pcbs)-1].Next = pcbs[0]
	return pcbs[0]
}

// Walk returns the PCBs reachable from head, in link order. For a
// ring, Walk stops when it returns to head; for a chain, it follows
// Next until nil.
func Walk(head *PCB) []*PCB {
	if head == nil {
		return nil
	}
	out := []*PCB{head}
	for n := head.Next; n != nil && n != head; n = n.Next {
		out = append(out, n)
	}
	return out
}

// CheckAllExit reports whether every PCB reachable from head (treated
// as a ring: stops when it returns to head) is in the Exit state. A
// single lap of the ring; matches the source semantics noted in the
// design notes where "allExit" is the only meaningful use of the
// underlying per-state scan.
func CheckAllExit(head *PCB) bool {
	if head == nil {
		return true
	}
	if head.State != Exit {
		return false
	}
	for n := head.Next; n != nil && n != head; n = n.Next {
		if n.State != Exit {
			return false
		}
	}
	return true
}
