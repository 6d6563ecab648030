package ossim

import "github.com/ehrlich-b/go-ossim/internal/constants"

// Re-export bounds and lookup values for public API callers that want
// to validate or display configuration without reaching into internal/constants.
const (
	VersionMin            = constants.VersionMin
	VersionMax            = constants.VersionMax
	QuantumTimeMin        = constants.QuantumTimeMin
	QuantumTimeMax        = constants.QuantumTimeMax
	MemAvailableMin       = constants.MemAvailableMin
	MemAvailableMax       = constants.MemAvailableMax
	ProcessorCycleTimeMin = constants.ProcessorCycleTimeMin
	ProcessorCycleTimeMax = constants.ProcessorCycleTimeMax
	IOCycleTimeMin        = constants.IOCycleTimeMin
	IOCycleTimeMax        = constants.IOCycleTimeMax
)

const (
	SchedNone  = constants.SchedNone
	SchedFCFSN = constants.SchedFCFSN
	SchedSJFN  = constants.SchedSJFN
	SchedSRTFP = constants.SchedSRTFP
	SchedFCFSP = constants.SchedFCFSP
	SchedRRP   = constants.SchedRRP
)

const (
	LogMonitor = constants.LogMonitor
	LogFile    = constants.LogFile
	LogBoth    = constants.LogBoth
)
