package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehrlich-b/go-ossim/internal/constants"
)

const sampleConfig = `Start Simulator Configuration File
Version/Phase            : 1
File Path                : /tmp/meta.mdf
CPU Scheduling Code      : RR-P
Quantum Time (cycles)    : 2
Memory Available (KB)    : 1024
Processor Cycle Time     : 10
I/O Cycle Time (msec)    : 20
Log To                   : Both
Log File Path            : /tmp/trace.log
End Simulator Configuration File.
`

func TestParseWellFormedConfig(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.VersionPhase)
	assert.Equal(t, "/tmp/meta.mdf", cfg.MetadataFilePath)
	assert.Equal(t, constants.SchedRRP, cfg.SchedCode)
	assert.Equal(t, 2, cfg.QuantumTime)
	assert.Equal(t, 1024, cfg.MemoryAvailableKB)
	assert.Equal(t, 10, cfg.ProcessorCycleTime)
	assert.Equal(t, 20, cfg.IOCycleTime)
	assert.Equal(t, constants.LogBoth, cfg.LogTo)
	assert.Equal(t, "/tmp/trace.log", cfg.LogFilePath)
}

func TestConfigRoundTrip(t *testing.T) {
	cfg, err := Parse(strings.NewReader(sampleConfig))
	require.NoError(t, err)

	reparsed, err := Parse(strings.NewReader(cfg.String()))
	require.NoError(t, err)
	assert.Equal(t, cfg, reparsed)
}

func TestParseRejectsMissingStartSentinel(t *testing.T) {
	bad := strings.Replace(sampleConfig, "Start Simulator Configuration File\n", "", 1)
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)
}

func TestParseRejectsMissingEndSentinel(t *testing.T) {
	bad := strings.Replace(sampleConfig, "End Simulator Configuration File.\n", "", 1)
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)
}

func TestParseRejectsOutOfRangeQuantum(t *testing.T) {
	bad := strings.Replace(sampleConfig, "Quantum Time (cycles)    : 2", "Quantum Time (cycles)    : 500", 1)
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
}

func TestParseRejectsUnknownSchedCode(t *testing.T) {
	bad := strings.Replace(sampleConfig, "RR-P", "ROUND-ROBIN", 1)
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)
}

func TestParseRejectsMisspelledKey(t *testing.T) {
	bad := strings.Replace(sampleConfig, "Quantum Time (cycles)", "Quantom Time (cycles)", 1)
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)
}

func TestParseRejectsMissingKeyEOF(t *testing.T) {
	lines := strings.Split(sampleConfig, "\n")
	truncated := strings.Join(lines[:4], "\n")
	_, err := Parse(strings.NewReader(truncated))
	require.Error(t, err)
}

func TestParseRejectsNonIntegerField(t *testing.T) {
	bad := strings.Replace(sampleConfig, "Version/Phase            : 1", "Version/Phase            : one", 1)
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)
}
