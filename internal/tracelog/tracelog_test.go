package tracelog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ehrlich-b/go-ossim/internal/clock"
	"github.com/ehrlich-b/go-ossim/internal/constants"
)

func TestAppendFormatsTimestampPrefix(t *testing.T) {
	c := clock.New()
	log := New(c, constants.LogFile, filepath.Join(t.TempDir(), "trace.log"), os.Stdout)

	log.Append("System start")

	lines := log.Lines()
	require.Len(t, lines, 1)
	assert.Regexp(t, `^Time: *\d+\.\d{6}, System start$`, lines[0])
}

func TestFlushWritesBufferedLinesInOrder(t *testing.T) {
	c := clock.New()
	path := filepath.Join(t.TempDir(), "trace.log")
	log := New(c, constants.LogFile, path, os.Stdout)

	log.Append("first")
	log.Append("second")
	log.Append("third")

	require.NoError(t, log.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, indexBefore(content, "first", "second"))
	assert.True(t, indexBefore(content, "second", "third"))
}

func TestMonitorOnlyDoesNotBuffer(t *testing.T) {
	c := clock.New()
	log := New(c, constants.LogMonitor, "", os.Stdout)

	log.Append("console only")

	assert.Empty(t, log.Lines())
}

func TestConcurrentAppendsAreAllRecordedAsWholeLines(t *testing.T) {
	c := clock.New()
	log := New(c, constants.LogFile, filepath.Join(t.TempDir(), "trace.log"), os.Stdout)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			log.Appendf("event %d", n)
		}(i)
	}
	wg.Wait()

	lines := log.Lines()
	assert.Len(t, lines, 50)
	for _, line := range lines {
		assert.Regexp(t, `^Time: *\d+\.\d{6}, event \d+$`, line)
	}
}

func indexBefore(s, a, b string) bool {
	ia := indexOf(s, a)
	ib := indexOf(s, b)
	return ia >= 0 && ib >= 0 && ia < ib
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
