// Package ossim is the operating-system simulator's orchestration
// layer: it wires the configuration and metadata parsers, the PCB
// builder, the MMU, the interrupt queue, the trace log, and the
// scheduler's dispatcher into a single synchronous run.
package ossim

import (
	"os"

	"github.com/ehrlich-b/go-ossim/internal/build"
	"github.com/ehrlich-b/go-ossim/internal/clock"
	"github.com/ehrlich-b/go-ossim/internal/config"
	"github.com/ehrlich-b/go-ossim/internal/interfaces"
	"github.com/ehrlich-b/go-ossim/internal/interrupt"
	"github.com/ehrlich-b/go-ossim/internal/metadata"
	"github.com/ehrlich-b/go-ossim/internal/mmu"
	"github.com/ehrlich-b/go-ossim/internal/pcb"
	"github.com/ehrlich-b/go-ossim/internal/scheduler"
	"github.com/ehrlich-b/go-ossim/internal/tracelog"
)

// Options carries everything a Run caller might want to override; a
// zero Options uses sensible defaults (no extra logger, no observer,
// console mirrors whatever the config's Log To says).
type Options struct {
	// Logger receives ambient diagnostic messages (distinct from the
	// Trace Log, which is the user-visible scheduler trace). Nil
	// disables ambient logging.
	Logger interfaces.Logger

	// Observer receives scheduler events for metrics collection. Nil
	// defaults to NoOpObserver.
	Observer interfaces.Observer

	// Console is where Monitor/Both trace output is written. Nil
	// defaults to os.Stdout.
	Console *os.File
}

// Result reports the outcome of a completed run: the final trace
// lines, always populated regardless of the config's Log To
// destination, for callers that want to inspect the run without
// reading the log file back.
type Result struct {
	Trace []string
}

// Run parses configPath and the metadata file it names, builds the
// process topology, and drives it to completion under the configured
// scheduling policy. It returns a non-nil error when the configuration
// cannot be opened or is malformed, when the metadata file cannot be
// opened or is malformed, or when the PCB build itself is rejected.
func Run(configPath string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	log := func(format string, args ...any) {
		if opts.Logger != nil {
			opts.Logger.Printf(format, args...)
		}
	}

	configFile, err := os.Open(configPath)
	if err != nil {
		return nil, &Error{Op: "config", ProcessNum: -1, Code: ErrCodeConfigNotFound, Msg: err.Error(), Inner: err}
	}
	cfg, err := config.Parse(configFile)
	configFile.Close()
	if err != nil {
		return nil, NewError("config", ErrCodeConfigInvalid, err.Error())
	}
	log("parsed configuration: sched=%s quantum=%d memory=%dKB", cfg.SchedCode, cfg.QuantumTime, cfg.MemoryAvailableKB)

	metadataFile, err := os.Open(cfg.MetadataFilePath)
	if err != nil {
		return nil, NewError("metadata", ErrCodeMetadataNotFound, err.Error())
	}
	metaHead, err := metadata.Parse(metadataFile)
	metadataFile.Close()
	if err != nil {
		return nil, NewError("metadata", ErrCodeMetadataInvalid, err.Error())
	}

	c := clock.New()
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	// Monitor-only output is still buffered so Result.Trace is always
	// populated; only File and Both destinations are flushed to disk.
	bufferTo := cfg.LogTo
	if bufferTo == LogMonitor {
		bufferTo = LogBoth
	}
	trace := tracelog.New(c, bufferTo, cfg.LogFilePath, console)
	flushTrace := func() error {
		if cfg.LogTo == LogMonitor {
			return nil
		}
		return trace.Flush()
	}

	observer := opts.Observer
	if observer == nil {
		observer = NoOpObserver{}
	}

	trace.Append("System start")

	apps, err := build.Discover(metaHead)
	if err != nil {
		trace.Append("Unable to create PCB list. Exiting")
		flushTrace()
		return nil, NewError("build", ErrCodeBuildFailed, err.Error())
	}

	pcbs := build.BuildPCBs(apps, int64(cfg.ProcessorCycleTime), int64(cfg.IOCycleTime))
	trace.Append("OS: Begin PCB Creation")
	for _, p := range pcbs {
		p.State = pcb.New
	}
	trace.Append("OS: All processes initialized in New state")
	for _, p := range pcbs {
		p.State = pcb.Ready
	}
	trace.Append("OS: All processes now set in Ready state")

	policy := scheduler.FromSchedCode(cfg.SchedCode)
	var head *pcb.PCB
	if policy.Preemptive() {
		head = pcb.BuildRing(pcbs)
	} else {
		head = pcb.BuildChain(pcbs)
	}

	m := mmu.New(cfg.MemoryAvailableKB)
	interrupts := interrupt.NewQueue()

	d := scheduler.New(policy, int64(cfg.QuantumTime), int64(cfg.ProcessorCycleTime), int64(cfg.IOCycleTime), m, interrupts, trace, c, observer)
	if head != nil {
		d.Run(head)
	}

	trace.Append("System stop")

	if err := flushTrace(); err != nil {
		return nil, NewError("tracelog", ErrCodeLogIOFailed, err.Error())
	}

	return &Result{Trace: trace.Lines()}, nil
}
