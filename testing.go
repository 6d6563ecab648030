package ossim

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ehrlich-b/go-ossim/internal/constants"
)

// ConfigBuilder assembles a well-formed configuration file in memory,
// for tests that want to exercise Run without touching the filesystem
// beyond a temp file they create themselves.
type ConfigBuilder struct {
	version            int
	metadataFilePath   string
	schedCode          constants.SchedCode
	quantumTime        int
	memoryAvailableKB  int
	processorCycleTime int
	ioCycleTime        int
	logTo              constants.LogTo
	logFilePath        string
}

// NewConfigBuilder returns a builder pre-filled with values that parse
// cleanly under every field's bounds.
func NewConfigBuilder(metadataFilePath string) *ConfigBuilder {
	return &ConfigBuilder{
		version:            1,
		metadataFilePath:   metadataFilePath,
		schedCode:          constants.SchedFCFSN,
		quantumTime:        0,
		memoryAvailableKB:  1024,
		processorCycleTime: 10,
		ioCycleTime:        5,
		logTo:              constants.LogMonitor,
		logFilePath:        "",
	}
}

func (b *ConfigBuilder) WithSchedCode(code constants.SchedCode) *ConfigBuilder {
	b.schedCode = code
	return b
}

func (b *ConfigBuilder) WithQuantumTime(q int) *ConfigBuilder {
	b.quantumTime = q
	return b
}

func (b *ConfigBuilder) WithMemoryAvailableKB(kb int) *ConfigBuilder {
	b.memoryAvailableKB = kb
	return b
}

func (b *ConfigBuilder) WithCycleTimes(processor, io int) *ConfigBuilder {
	b.processorCycleTime = processor
	b.ioCycleTime = io
	return b
}

func (b *ConfigBuilder) WithLog(to constants.LogTo, filePath string) *ConfigBuilder {
	b.logTo = to
	b.logFilePath = filePath
	return b
}

// Build renders the configuration in the file format internal/config.Parse expects.
func (b *ConfigBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString("Start Simulator Configuration File\n")
	fmt.Fprintf(&sb, "%-24s : %d\n", "Version/Phase", b.version)
	fmt.Fprintf(&sb, "%-24s : %s\n", "File Path", b.metadataFilePath)
	fmt.Fprintf(&sb, "%-24s : %s\n", "CPU Scheduling Code", b.schedCode)
	fmt.Fprintf(&sb, "%-24s : %d\n", "Quantum Time (cycles)", b.quantumTime)
	fmt.Fprintf(&sb, "%-24s : %d\n", "Memory Available (KB)", b.memoryAvailableKB)
	fmt.Fprintf(&sb, "%-24s : %d\n", "Processor Cycle Time", b.processorCycleTime)
	fmt.Fprintf(&sb, "%-24s : %d\n", "I/O Cycle Time (msec)", b.ioCycleTime)
	fmt.Fprintf(&sb, "%-24s : %s\n", "Log To", b.logTo)
	fmt.Fprintf(&sb, "%-24s : %s\n", "Log File Path", b.logFilePath)
	sb.WriteString("End Simulator Configuration File.\n")
	return sb.String()
}

// MetadataBuilder assembles a well-formed metadata stream in memory.
type MetadataBuilder struct {
	apps [][]string
}

// NewMetadataBuilder returns an empty builder.
func NewMetadataBuilder() *MetadataBuilder {
	return &MetadataBuilder{}
}

// AddApplication appends one application whose body is the given
// already-formatted "C(opString)N" items, joined with "; ".
func (b *MetadataBuilder) AddApplication(items ...string) *MetadataBuilder {
	b.apps = append(b.apps, items)
	return b
}

// Build renders the metadata stream in the format internal/metadata.Parse expects.
func (b *MetadataBuilder) Build() string {
	var sb strings.Builder
	sb.WriteString("Start Program Meta-Data Code:\n")
	sb.WriteString("S(start)0")
	for _, app := range b.apps {
		sb.WriteString("; A(start)0")
		for _, item := range app {
			sb.WriteString("; ")
			sb.WriteString(item)
		}
		sb.WriteString("; A(end)0")
	}
	sb.WriteString("; S(end)0.\n")
	sb.WriteString("End Program Meta-Data Code.\n")
	return sb.String()
}

// RecordingObserver implements interfaces.Observer by appending every
// event's name to an in-memory slice, for assertions in tests that
// don't want to parse the trace log text.
type RecordingObserver struct {
	mu     sync.Mutex
	events []string
}

func NewRecordingObserver() *RecordingObserver {
	return &RecordingObserver{}
}

func (r *RecordingObserver) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *RecordingObserver) ObserveDispatch(processNum int, schedCode string) {
	r.record(fmt.Sprintf("dispatch:%d:%s", processNum, schedCode))
}
func (r *RecordingObserver) ObserveOpCompleted(command byte) {
	r.record(fmt.Sprintf("op:%c", command))
}
func (r *RecordingObserver) ObserveQuantumExpired() { r.record("quantum") }
func (r *RecordingObserver) ObserveBlocked()        { r.record("blocked") }
func (r *RecordingObserver) ObserveInterrupt()      { r.record("interrupt") }
func (r *RecordingObserver) ObserveIdle()           { r.record("idle") }
func (r *RecordingObserver) ObserveSegFault()       { r.record("segfault") }
func (r *RecordingObserver) ObserveExit()           { r.record("exit") }

// Events returns a snapshot of the recorded events in order.
func (r *RecordingObserver) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many times event was recorded.
func (r *RecordingObserver) Count(event string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}
