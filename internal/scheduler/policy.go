// Package scheduler implements the dispatcher: the policy-driven
// selection loop that is the core of the simulator.
package scheduler

import "github.com/ehrlich-b/go-ossim/internal/constants"

// Policy is a dispatch tag for one of the five scheduling disciplines,
// used so selection dispatches by tag rather than by comparing code
// strings at every step.
type Policy int

const (
	PolicyFCFSN Policy = iota
	PolicySJFN
	PolicyFCFSP
	PolicySRTFP
	PolicyRRP
)

// FromSchedCode maps a config CPU Scheduling Code to a Policy. NONE is
// treated as FCFS-N.
func FromSchedCode(code constants.SchedCode) Policy {
	switch code {
	case constants.SchedSJFN:
		return PolicySJFN
	case constants.SchedFCFSP:
		return PolicyFCFSP
	case constants.SchedSRTFP:
		return PolicySRTFP
	case constants.SchedRRP:
		return PolicyRRP
	default: // SchedFCFSN, SchedNone, and any unrecognized value
		return PolicyFCFSN
	}
}

// Preemptive reports whether the policy time-slices via a ring and
// quantum, as opposed to running a selected PCB to its next natural
// yield point.
func (p Policy) Preemptive() bool {
	switch p {
	case PolicyFCFSP, PolicySRTFP, PolicyRRP:
		return true
	default:
		return false
	}
}

// SchedCode returns the canonical config code string for p, used in
// the "<CODE> Strategy selects Process <n>" trace line.
func (p Policy) SchedCode() constants.SchedCode {
	switch p {
	case PolicySJFN:
		return constants.SchedSJFN
	case PolicyFCFSP:
		return constants.SchedFCFSP
	case PolicySRTFP:
		return constants.SchedSRTFP
	case PolicyRRP:
		return constants.SchedRRP
	default:
		return constants.SchedFCFSN
	}
}

func (p Policy) String() string {
	return string(p.SchedCode())
}
