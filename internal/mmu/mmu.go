// Package mmu implements the simulator's segmented memory manager: a
// per-process allocation table with overlap detection and bulk
// per-process deallocation. The table is dispatcher-confined — only the
// single dispatcher goroutine ever touches it — so it carries no mutex
// of its own.
package mmu

import (
	"fmt"

	"github.com/ehrlich-b/go-ossim/internal/constants"
)

// Segment is one live allocation: a (segment id, start, offset)
// triple owned by a single process. totalSize is derived (== Offset)
// and kept as a field to match the data model's vocabulary.
type Segment struct {
	SegmentID        int
	StartPosition    int
	Offset           int
	TotalSize        int
	OwningProcessNum int
}

// end returns the exclusive upper bound of the segment's byte range.
func (s Segment) end() int {
	return s.StartPosition + s.Offset
}

// overlaps reports whether s and other occupy any common byte within
// the same SegmentID: aL<=bL<=aH, or aL<=bH<=aH, or bL<=aL<=bH (ranges
// taken as inclusive of both endpoints, so aH/bH are the last byte,
// end()-1; adjacent ranges do not overlap).
func (s Segment) overlaps(other Segment) bool {
	if s.SegmentID != other.SegmentID {
		return false
	}
	aL, aH := s.StartPosition, s.end()-1
	bL, bH := other.StartPosition, other.end()-1
	return (aL <= bL && bL <= aH) || (aL <= bH && bH <= aH) || (bL <= aL && aL <= bH)
}

// contains reports whether s fully contains other's byte range within
// the same SegmentID.
func (s Segment) contains(other Segment) bool {
	if s.SegmentID != other.SegmentID {
		return false
	}
	return s.StartPosition <= other.StartPosition && other.end() <= s.end()
}

// Result is the Ok/Fail outcome of an MMU operation.
type Result int

const (
	Ok Result = iota
	Fail
)

// MMU is the segmented allocation table. It is not safe for concurrent
// use: the dispatcher is its only caller, per the simulator's
// single-threaded bookkeeping discipline.
type MMU struct {
	totalMemory int
	available   int
	segments    []Segment
}

// New creates an MMU with totalMemoryKB of available space.
func New(totalMemoryKB int) *MMU {
	return &MMU{totalMemory: totalMemoryKB, available: totalMemoryKB}
}

// Available returns the current memAvailable value.
func (m *MMU) Available() int {
	return m.available
}

// Allocate appends seg to the table if it fits in the remaining budget
// and overlaps no existing live segment with the same SegmentID.
func (m *MMU) Allocate(seg Segment) Result {
	if seg.Offset > m.available {
		return Fail
	}
	for _, existing := range m.segments {
		if existing.overlaps(seg) {
			return Fail
		}
	}
	seg.TotalSize = seg.Offset
	m.segments = append(m.segments, seg)
	m.available -= seg.Offset
	return Ok
}

// Access succeeds iff some live segment owned by req.OwningProcessNum
// with the same SegmentID fully contains req's byte range.
func (m *MMU) Access(req Segment) Result {
	for _, existing := range m.segments {
		if existing.OwningProcessNum == req.OwningProcessNum && existing.contains(req) {
			return Ok
		}
	}
	return Fail
}

// Deallocate removes every segment owned by processNum, restoring
// their size to the available budget. Idempotent.
func (m *MMU) Deallocate(processNum int) {
	kept := m.segments[:0]
	for _, seg := range m.segments {
		if seg.OwningProcessNum == processNum {
			m.available += seg.Offset
			continue
		}
		kept = append(kept, seg)
	}
	m.segments = kept
}

// Descriptor is the decoded form of an M-command's digit-packed
// cycleTime: segment*10^6 + start*10^3 + offset.
type Descriptor struct {
	Segment int
	Start   int
	Offset  int
}

// DecodeDescriptor unpacks a cycleTime value into its three fields.
func DecodeDescriptor(cycleTime uint64) Descriptor {
	return Descriptor{
		Segment: int(cycleTime / constants.MemDescSegmentScale),
		Start:   int((cycleTime / constants.MemDescStartScale) % 1000),
		Offset:  int(cycleTime % constants.MemDescStartScale),
	}
}

// Encode packs d back into a cycleTime value. Decoding then encoding
// a value produced by Encode yields the original input, provided each
// field is within [0,999].
func (d Descriptor) Encode() uint64 {
	return uint64(d.Segment)*constants.MemDescSegmentScale +
		uint64(d.Start)*constants.MemDescStartScale +
		uint64(d.Offset)
}

// Validate reports whether every field of d is within the [0,999]
// range the descriptor format allows.
func (d Descriptor) Validate() error {
	if d.Segment < 0 || d.Segment > constants.MemDescFieldMax {
		return fmt.Errorf("mmu: segment %d out of range", d.Segment)
	}
	if d.Start < 0 || d.Start > constants.MemDescFieldMax {
		return fmt.Errorf("mmu: start %d out of range", d.Start)
	}
	if d.Offset < 0 || d.Offset > constants.MemDescFieldMax {
		return fmt.Errorf("mmu: offset %d out of range", d.Offset)
	}
	return nil
}

// SegmentFromDescriptor builds a Segment for processNum from a decoded
// descriptor, ready to pass to Allocate or Access.
func SegmentFromDescriptor(d Descriptor, processNum int) Segment {
	return Segment{
		SegmentID:        d.Segment,
		StartPosition:    d.Start,
		Offset:           d.Offset,
		OwningProcessNum: processNum,
	}
}
