package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetadata = `Start Program Meta-Data Code:
S(start)0; A(start)0; S(start)10; A(start)0; P(run)50; I(hard drive)100; O(hard drive)100; A(end)0; S(end)0; A(end)0.
End Program Meta-Data Code.
`

func TestParseWellFormedStream(t *testing.T) {
	head, err := Parse(strings.NewReader(sampleMetadata))
	require.NoError(t, err)

	ops := ToSlice(head)
	require.Len(t, ops, 10)

	assert.Equal(t, CommandSentinel, ops[0].Command)
	assert.Equal(t, "start", ops[0].OpString)
	assert.EqualValues(t, 0, ops[0].CycleTime)

	assert.Equal(t, CommandProcessing, ops[4].Command)
	assert.Equal(t, "run", ops[4].OpString)
	assert.EqualValues(t, 50, ops[4].CycleTime)

	assert.Equal(t, CommandInput, ops[5].Command)
	assert.Equal(t, "hard drive", ops[5].OpString)

	assert.Equal(t, CommandOutput, ops[6].Command)

	assert.Equal(t, CommandSentinel, ops[8].Command)
	assert.Equal(t, "end", ops[8].OpString)
}

func TestOpStringRoundTrip(t *testing.T) {
	head, err := Parse(strings.NewReader(sampleMetadata))
	require.NoError(t, err)

	for op := head; op != nil; op = op.Next {
		reparsed, err := parseItem(op.String())
		require.NoError(t, err)
		assert.Equal(t, op.Command, reparsed.Command)
		assert.Equal(t, op.OpString, reparsed.OpString)
		assert.Equal(t, op.CycleTime, reparsed.CycleTime)
	}
}

func TestCount(t *testing.T) {
	head, err := Parse(strings.NewReader(sampleMetadata))
	require.NoError(t, err)
	assert.Equal(t, 10, Count(head))
}

func TestValidOpStringPartitionsByCommand(t *testing.T) {
	assert.True(t, ValidOpString(CommandInput, "hard drive"))
	assert.True(t, ValidOpString(CommandInput, "keyboard"))
	assert.False(t, ValidOpString(CommandInput, "printer"))

	assert.True(t, ValidOpString(CommandOutput, "printer"))
	assert.True(t, ValidOpString(CommandOutput, "monitor"))
	assert.False(t, ValidOpString(CommandOutput, "keyboard"))

	assert.True(t, ValidOpString(CommandMemory, "access"))
	assert.True(t, ValidOpString(CommandMemory, "allocate"))
	assert.False(t, ValidOpString(CommandMemory, "run"))

	assert.True(t, ValidOpString(CommandProcessing, "run"))
	assert.False(t, ValidOpString(CommandProcessing, "start"))
}

func TestParseRejectsBadOpStringForCommand(t *testing.T) {
	const bad = `Start Program Meta-Data Code:
P(access)10.
End Program Meta-Data Code.
`
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Token, "P(access)10")
}

func TestParseRejectsMissingTerminator(t *testing.T) {
	const bad = `Start Program Meta-Data Code:
S(start)0; A(start)0
End Program Meta-Data Code.
`
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)
}

func TestParseRejectsMissingStartSentinel(t *testing.T) {
	const bad = `S(start)0.
End Program Meta-Data Code.
`
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)
}

func TestParseRejectsNonIntegerCycleTime(t *testing.T) {
	const bad = `Start Program Meta-Data Code:
P(run)abc.
End Program Meta-Data Code.
`
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)
}

func TestParseRejectsUnknownCommandLetter(t *testing.T) {
	const bad = `Start Program Meta-Data Code:
Z(run)10.
End Program Meta-Data Code.
`
	_, err := Parse(strings.NewReader(bad))
	require.Error(t, err)
}
