package scheduler

import (
	"github.com/ehrlich-b/go-ossim/internal/interfaces"
	"github.com/ehrlich-b/go-ossim/internal/interrupt"
	"github.com/ehrlich-b/go-ossim/internal/metadata"
	"github.com/ehrlich-b/go-ossim/internal/mmu"
	"github.com/ehrlich-b/go-ossim/internal/pcb"
	"github.com/ehrlich-b/go-ossim/internal/tracelog"
)

// StepResult is runProcess's report of what happened to one operation
// (or, under preemption, one quantum slice of an operation).
type StepResult int

const (
	Completed StepResult = iota
	QuantumExpired
	Blocked
	InterruptPending
	SegFault
)

// Dispatcher is the scheduler's single control thread. It owns the
// PCB topology, the MMU, the interrupt queue, and the trace log, and
// runs until every PCB has reached Exit.
type Dispatcher struct {
	policy             Policy
	quantumTime        int64
	processorCycleTime int64
	ioCycleTime        int64

	mmu        *mmu.MMU
	interrupts *interrupt.Queue
	log        *tracelog.Log
	clock      interfaces.Clock
	observer   interfaces.Observer

	head       *pcb.PCB
	ringCursor *pcb.PCB
}

// New builds a Dispatcher. quantumTime, processorCycleTime, and
// ioCycleTime carry the same units as the config fields they come
// from (cycles and ms/cycle respectively).
func New(policy Policy, quantumTime, processorCycleTime, ioCycleTime int64, m *mmu.MMU, q *interrupt.Queue, log *tracelog.Log, clock interfaces.Clock, observer interfaces.Observer) *Dispatcher {
	return &Dispatcher{
		policy:             policy,
		quantumTime:        quantumTime,
		processorCycleTime: processorCycleTime,
		ioCycleTime:        ioCycleTime,
		mmu:                m,
		interrupts:         q,
		log:                log,
		clock:              clock,
		observer:           observer,
	}
}

// Run drives head (already built into a ring for preemptive policies
// or a chain for non-preemptive ones, with every PCB in Ready state)
// until pcb.CheckAllExit holds.
func (d *Dispatcher) Run(head *pcb.PCB) {
	d.head = head
	d.ringCursor = head

	for !pcb.CheckAllExit(d.head) {
		p := d.selectPCB()
		if p == nil {
			d.log.Append("OS: CPU Idle")
			if d.observer != nil {
				d.observer.ObserveIdle()
			}
			d.interrupts.WaitNonEmpty()
			interrupt.Drain(d.interrupts, d.log)
			if d.observer != nil {
				d.observer.ObserveInterrupt()
			}
			continue
		}

		d.logSelect(p)
		d.setState(p, pcb.Running)

		res := d.runProcess(p)
		d.applyTransition(p, res)
	}
}

// selectPCB picks the next PCB to run under the active policy, among
// PCBs in state Ready. Returns nil when none are Ready (idle).
func (d *Dispatcher) selectPCB() *pcb.PCB {
	switch d.policy {
	case PolicyFCFSN:
		return d.firstReady()
	case PolicySJFN, PolicySRTFP:
		return d.minProcessTimeReady()
	case PolicyFCFSP, PolicyRRP:
		return d.advanceRingToNextReady()
	default:
		return d.firstReady()
	}
}

func (d *Dispatcher) firstReady() *pcb.PCB {
	for _, p := range pcb.Walk(d.head) {
		if p.State == pcb.Ready {
			return p
		}
	}
	return nil
}

// minProcessTimeReady scans in ring/chain order and keeps the first
// strictly-smaller key, so ties resolve to whichever PCB is nearer the
// head.
func (d *Dispatcher) minProcessTimeReady() *pcb.PCB {
	var best *pcb.PCB
	for _, p := range pcb.Walk(d.head) {
		if p.State != pcb.Ready {
			continue
		}
		if best == nil || p.ProcessTime < best.ProcessTime {
			best = p
		}
	}
	return best
}

// advanceRingToNextReady implements "the next Ready PCB encountered
// while advancing the ring" for FCFS-P and RR-P: it scans forward from
// just after the current ring position, wrapping once, and falls back
// to re-selecting the current position if nothing else is Ready.
func (d *Dispatcher) advanceRingToNextReady() *pcb.PCB {
	if d.ringCursor == nil {
		return nil
	}
	start := d.ringCursor
	for n := start.Next; n != start; n = n.Next {
		if n.State == pcb.Ready {
			d.ringCursor = n
			return n
		}
	}
	if start.State == pcb.Ready {
		return start
	}
	return nil
}

func (d *Dispatcher) logSelect(p *pcb.PCB) {
	d.log.Appendf("OS: %s Strategy selects Process %d with time: %d mSec", d.policy.SchedCode(), p.ProcessNum, p.ProcessTime)
	if d.observer != nil {
		d.observer.ObserveDispatch(p.ProcessNum, string(d.policy.SchedCode()))
	}
}

func (d *Dispatcher) setState(p *pcb.PCB, s pcb.State) {
	p.State = s
	d.log.Appendf("OS: Process %d set in %s state", p.ProcessNum, s.String())
}

// runProcess executes p's next operation (or, under preemption, one
// quantum slice of it).
func (d *Dispatcher) runProcess(p *pcb.PCB) StepResult {
	op := p.Cursor
	switch op.Command {
	case metadata.CommandProcessing:
		return d.runProcessingOp(p, op)
	case metadata.CommandInput, metadata.CommandOutput:
		return d.runIOOp(p, op)
	case metadata.CommandMemory:
		return d.runMemoryOp(p, op)
	default:
		d.advanceCursor(p)
		return Completed
	}
}

func (d *Dispatcher) advanceCursor(p *pcb.PCB) {
	p.Cursor = p.Cursor.Next
	p.OpStarted = false
}

func (d *Dispatcher) bill(p *pcb.PCB, ms int64) {
	p.ProcessTime -= ms
	if p.ProcessTime < 0 {
		p.ProcessTime = 0
	}
}

func (d *Dispatcher) runProcessingOp(p *pcb.PCB, op *metadata.Op) StepResult {
	if !d.policy.Preemptive() {
		d.log.Appendf("Process %d, Run operation start", p.ProcessNum)
		ms := int64(op.CycleTime) * d.processorCycleTime
		d.clock.Delay(ms)
		d.bill(p, ms)
		d.log.Appendf("Process %d, Run operation end", p.ProcessNum)
		d.advanceCursor(p)
		if d.observer != nil {
			d.observer.ObserveOpCompleted(byte(op.Command))
		}
		return Completed
	}

	if d.interrupts.Len() > 0 {
		return InterruptPending
	}

	if !p.OpStarted {
		d.log.Appendf("Process %d, Run operation start", p.ProcessNum)
		p.OpStarted = true
	}

	slice := op.CycleTime
	if int64(slice) > d.quantumTime {
		slice = uint64(d.quantumTime)
	}
	ms := int64(slice) * d.processorCycleTime
	d.clock.Delay(ms)
	d.bill(p, ms)
	op.CycleTime -= slice

	if op.CycleTime > 0 {
		d.log.Appendf("Process %d, quantum time out", p.ProcessNum)
		if d.observer != nil {
			d.observer.ObserveQuantumExpired()
		}
		return QuantumExpired
	}

	d.log.Appendf("Process %d, Run operation end", p.ProcessNum)
	d.advanceCursor(p)
	if d.observer != nil {
		d.observer.ObserveOpCompleted(byte(op.Command))
	}
	return Completed
}

func (d *Dispatcher) runIOOp(p *pcb.PCB, op *metadata.Op) StepResult {
	ms := int64(op.CycleTime) * d.ioCycleTime
	opPrint := "input"
	if op.Command == metadata.CommandOutput {
		opPrint = "output"
	}

	if !d.policy.Preemptive() {
		d.log.Appendf("Process %d, %s %s start", p.ProcessNum, op.OpString, opPrint)
		d.clock.Delay(ms)
		d.bill(p, ms)
		d.log.Appendf("Process %d, %s %s end", p.ProcessNum, op.OpString, opPrint)
		d.advanceCursor(p)
		if d.observer != nil {
			d.observer.ObserveOpCompleted(byte(op.Command))
		}
		return Completed
	}

	d.log.Appendf("Process %d, %s %s start", p.ProcessNum, op.OpString, opPrint)
	rec := interrupt.CreateInterrupt(p, ms, op.OpString, opPrint)
	d.interrupts.SpawnWorker(d.clock, rec)
	d.advanceCursor(p)
	if d.observer != nil {
		d.observer.ObserveBlocked()
	}
	return Blocked
}

func (d *Dispatcher) runMemoryOp(p *pcb.PCB, op *metadata.Op) StepResult {
	desc := mmu.DecodeDescriptor(op.CycleTime)
	seg := mmu.SegmentFromDescriptor(desc, p.ProcessNum)

	label := "Access"
	var result mmu.Result
	if op.OpString == "allocate" {
		label = "Allocation"
		d.log.Appendf("Process %d, MMU Allocation: %d/%d/%d", p.ProcessNum, desc.Segment, desc.Start, desc.Offset)
		result = d.mmu.Allocate(seg)
	} else {
		d.log.Appendf("Process %d, MMU Access: %d/%d/%d", p.ProcessNum, desc.Segment, desc.Start, desc.Offset)
		result = d.mmu.Access(seg)
	}

	if result == mmu.Ok {
		d.log.Appendf("Process %d, MMU %s: Success", p.ProcessNum, label)
		d.advanceCursor(p)
		if d.observer != nil {
			d.observer.ObserveOpCompleted(byte(op.Command))
		}
		return Completed
	}

	d.log.Appendf("Process %d, MMU %s: Failed", p.ProcessNum, label)
	return SegFault
}

// applyTransition reacts to runProcess's result and moves p to its
// next lifecycle state.
func (d *Dispatcher) applyTransition(p *pcb.PCB, res StepResult) {
	switch res {
	case Completed:
		if p.Cursor == nil {
			d.mmu.Deallocate(p.ProcessNum)
			d.setState(p, pcb.Exit)
			if d.observer != nil {
				d.observer.ObserveExit()
			}
			return
		}
		d.setState(p, pcb.Ready)

	case QuantumExpired:
		d.setState(p, pcb.Ready)

	case Blocked:
		d.setState(p, pcb.Blocked)

	case InterruptPending:
		d.setState(p, pcb.Ready)
		interrupt.Drain(d.interrupts, d.log)
		if d.observer != nil {
			d.observer.ObserveInterrupt()
		}

	case SegFault:
		d.log.Appendf("OS: Process %d, Segmentation Fault - Process ended", p.ProcessNum)
		d.mmu.Deallocate(p.ProcessNum)
		d.setState(p, pcb.Exit)
		if d.observer != nil {
			d.observer.ObserveSegFault()
		}
	}
}
