// Package build implements the PCB-build phase: it walks a parsed
// metadata stream, validates the outer S(start)/S(end) sentinels and
// A(start)/A(end) application boundaries, and splits the stream into
// one operation chain per discovered application.
package build

import (
	"fmt"

	"github.com/ehrlich-b/go-ossim/internal/metadata"
	"github.com/ehrlich-b/go-ossim/internal/pcb"
)

// Error reports a malformed metadata stream discovered during the
// build phase, naming the step that failed. Callers should log it and
// stop before entering the dispatcher.
type Error struct {
	Step string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("build: %s: %s", e.Step, e.Msg)
}

// Application is one discovered A(start)...A(end) span: its own
// operation chain (the ops strictly between the boundary markers).
// The processTime estimate is computed later, by BuildPCBs.
type Application struct {
	Ops *metadata.Op
}

// Discover walks head, validating the outer S(start)/S(end) sentinels
// and splitting the A(start)/A(end) spans into one Application per
// process, in discovery order. It rejects nested A(start), unmatched
// A(end), and a trailing A(start) with no matching A(end).
func Discover(head *metadata.Op) ([]*Application, error) {
	if head == nil || head.Command != metadata.CommandSentinel || head.OpString != "start" {
		return nil, &Error{Step: "outer start", Msg: "missing outer S(start)"}
	}

	var apps []*Application
	var cur *Application
	nested := false

	op := head.Next
	var last *metadata.Op
	for op != nil {
		last = op

		switch {
		case op.Command == metadata.CommandApplication && op.OpString == "start":
			if cur != nil {
				return nil, &Error{Step: "application scan", Msg: "nested A(start)"}
			}
			cur = &Application{}
			nested = true
			op = op.Next
			continue

		case op.Command == metadata.CommandApplication && op.OpString == "end":
			if cur == nil {
				return nil, &Error{Step: "application scan", Msg: "unmatched A(end)"}
			}
			apps = append(apps, cur)
			cur = nil
			nested = false
			op = op.Next
			continue

		case op.Command == metadata.CommandSentinel && op.OpString == "end":
			if nested {
				return nil, &Error{Step: "outer end", Msg: "A(start) with no matching A(end)"}
			}
			if op.Next != nil {
				return nil, &Error{Step: "outer end", Msg: "trailing data after outer S(end)"}
			}
			return apps, nil

		default:
			if cur == nil {
				return nil, &Error{Step: "application scan", Msg: "operation outside any A(start)/A(end) span"}
			}
			appendOp(cur, cloneOp(op))
			op = op.Next
			continue
		}
	}

	_ = last
	if nested {
		return nil, &Error{Step: "outer end", Msg: "A(start) with no matching A(end)"}
	}
	return nil, &Error{Step: "outer end", Msg: "missing outer S(end)"}
}

func cloneOp(op *metadata.Op) *metadata.Op {
	return &metadata.Op{Command: op.Command, OpString: op.OpString, CycleTime: op.CycleTime}
}

func appendOp(a *Application, op *metadata.Op) {
	if a.Ops == nil {
		a.Ops = op
		return
	}
	tail := a.Ops
	for tail.Next != nil {
		tail = tail.Next
	}
	tail.Next = op
}

// BuildPCBs converts discovered applications into PCBs, numbered in
// discovery order, with an estimated processTime for each.
func BuildPCBs(apps []*Application, processorCycleTime, ioCycleTime int64) []*pcb.PCB {
	pcbs := make([]*pcb.PCB, len(apps))
	for i, app := range apps {
		estimate := pcb.EstimateProcessTime(app.Ops, processorCycleTime, ioCycleTime)
		pcbs[i] = pcb.NewPCB(i, app.Ops, estimate)
	}
	return pcbs
}
