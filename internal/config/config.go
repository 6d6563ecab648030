// Package config parses the simulator's configuration file: a
// fixed-order, line-oriented "Key : value" format bracketed by
// start/end sentinels.
package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ehrlich-b/go-ossim/internal/constants"
)

const (
	startLine = "Start Simulator Configuration File"
	endLine   = "End Simulator Configuration File."
)

// field describes one fixed-order config line: its exact key text and
// the setter that validates and stores its value.
type field struct {
	key string
	set func(cfg *Config, value string) error
}

// Config holds every value read from a configuration file, in the
// same field order the file requires.
type Config struct {
	VersionPhase        int
	MetadataFilePath    string
	SchedCode           constants.SchedCode
	QuantumTime         int
	MemoryAvailableKB   int
	ProcessorCycleTime  int
	IOCycleTime         int
	LogTo               constants.LogTo
	LogFilePath         string
}

// ParseError reports a malformed config line, carrying the key that
// failed so callers can report it verbatim.
type ParseError struct {
	Key string
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("config: %s: %q", e.Msg, e.Key)
}

var fields = []field{
	{"Version/Phase", func(cfg *Config, v string) error {
		n, err := parseIntBounded(v, constants.VersionMin, constants.VersionMax)
		if err != nil {
			return err
		}
		cfg.VersionPhase = n
		return nil
	}},
	{"File Path", func(cfg *Config, v string) error {
		if v == "" {
			return fmt.Errorf("empty file path")
		}
		cfg.MetadataFilePath = v
		return nil
	}},
	{"CPU Scheduling Code", func(cfg *Config, v string) error {
		if !constants.ValidSchedCode(v) {
			return fmt.Errorf("unknown scheduling code")
		}
		cfg.SchedCode = constants.SchedCode(v)
		return nil
	}},
	{"Quantum Time (cycles)", func(cfg *Config, v string) error {
		n, err := parseIntBounded(v, constants.QuantumTimeMin, constants.QuantumTimeMax)
		if err != nil {
			return err
		}
		cfg.QuantumTime = n
		return nil
	}},
	{"Memory Available (KB)", func(cfg *Config, v string) error {
		n, err := parseIntBounded(v, constants.MemAvailableMin, constants.MemAvailableMax)
		if err != nil {
			return err
		}
		cfg.MemoryAvailableKB = n
		return nil
	}},
	{"Processor Cycle Time", func(cfg *Config, v string) error {
		n, err := parseIntBounded(v, constants.ProcessorCycleTimeMin, constants.ProcessorCycleTimeMax)
		if err != nil {
			return err
		}
		cfg.ProcessorCycleTime = n
		return nil
	}},
	{"I/O Cycle Time (msec)", func(cfg *Config, v string) error {
		n, err := parseIntBounded(v, constants.IOCycleTimeMin, constants.IOCycleTimeMax)
		if err != nil {
			return err
		}
		cfg.IOCycleTime = n
		return nil
	}},
	{"Log To", func(cfg *Config, v string) error {
		if !constants.ValidLogTo(v) {
			return fmt.Errorf("unknown log destination")
		}
		cfg.LogTo = constants.LogTo(v)
		return nil
	}},
	{"Log File Path", func(cfg *Config, v string) error {
		cfg.LogFilePath = v
		return nil
	}},
}

func parseIntBounded(v string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if n < min || n > max {
		return 0, fmt.Errorf("out of range [%d,%d]", min, max)
	}
	return n, nil
}

// Parse reads a configuration file from r in the fixed field order,
// returning a ParseError naming the first offending key.
func Parse(r io.Reader) (*Config, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		return nil, &ParseError{Key: startLine, Msg: "missing start sentinel"}
	}
	if strings.TrimRight(sc.Text(), "\r") != startLine {
		return nil, &ParseError{Key: sc.Text(), Msg: "malformed start sentinel"}
	}

	cfg := &Config{}
	for _, f := range fields {
		if !sc.Scan() {
			return nil, &ParseError{Key: f.key, Msg: "missing key"}
		}
		line := strings.TrimRight(sc.Text(), "\r")
		key, value, err := splitKeyValue(line)
		if err != nil {
			return nil, &ParseError{Key: line, Msg: err.Error()}
		}
		if key != f.key {
			return nil, &ParseError{Key: key, Msg: fmt.Sprintf("expected key %q", f.key)}
		}
		if err := f.set(cfg, value); err != nil {
			return nil, &ParseError{Key: f.key, Msg: err.Error()}
		}
	}

	if !sc.Scan() {
		return nil, &ParseError{Key: endLine, Msg: "missing end sentinel"}
	}
	if strings.TrimRight(sc.Text(), "\r") != endLine {
		return nil, &ParseError{Key: sc.Text(), Msg: "malformed end sentinel"}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config: read error: %w", err)
	}

	return cfg, nil
}

// splitKeyValue splits a "Key : value" line on the first colon,
// trimming surrounding whitespace from both sides.
func splitKeyValue(line string) (key, value string, err error) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", "", fmt.Errorf("missing ':' separator")
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	return key, value, nil
}

// String formats Config back into its canonical "Key : value" form,
// one key per line, matching the fixed order Parse requires. Parsing
// then formatting a well-formed config yields an equivalent document.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintln(&b, startLine)
	fmt.Fprintf(&b, "%-24s : %d\n", "Version/Phase", c.VersionPhase)
	fmt.Fprintf(&b, "%-24s : %s\n", "File Path", c.MetadataFilePath)
	fmt.Fprintf(&b, "%-24s : %s\n", "CPU Scheduling Code", c.SchedCode)
	fmt.Fprintf(&b, "%-24s : %d\n", "Quantum Time (cycles)", c.QuantumTime)
	fmt.Fprintf(&b, "%-24s : %d\n", "Memory Available (KB)", c.MemoryAvailableKB)
	fmt.Fprintf(&b, "%-24s : %d\n", "Processor Cycle Time", c.ProcessorCycleTime)
	fmt.Fprintf(&b, "%-24s : %d\n", "I/O Cycle Time (msec)", c.IOCycleTime)
	fmt.Fprintf(&b, "%-24s : %s\n", "Log To", c.LogTo)
	fmt.Fprintf(&b, "%-24s : %s\n", "Log File Path", c.LogFilePath)
	fmt.Fprintln(&b, endLine)
	return b.String()
}
