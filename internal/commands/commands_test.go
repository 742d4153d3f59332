package commands

import (
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want []string
		ok   bool
	}{
		{"launch 1 2 3 4", []string{"launch", "1", "2", "3", "4"}, true},
		{"  circle 5 5 10   # a bumper", []string{"circle", "5", "5", "10"}, true},
		{"line 0 0 9 9 -color #abcdef # wall", []string{"line", "0", "0", "9", "9", "-color", "#abcdef"}, true},
		{"# only a comment", nil, false},
		{"   ", nil, false},
	}
	for _, tt := range tests {
		args, ok := Parse(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		if tt.ok {
			assert.Equal(t, tt.want, args, tt.line)
		}
	}
}

func TestExecuteInterspersedFlags(t *testing.T) {
	r := NewRegistry()
	fs := flag.NewFlagSet("echo", flag.ContinueOnError)
	n := fs.Int("n", 1, "")
	var got []string
	var gotN int
	r.Register("echo", "ARGS [-n N]", fs, func(args []string) error {
		got, gotN = args, *n
		return nil
	})

	require.NoError(t, r.Execute([]string{"echo", "a", "-n", "3", "-5", "b"}))
	assert.Equal(t, []string{"a", "-5", "b"}, got)
	assert.Equal(t, 3, gotN)

	require.NoError(t, r.Execute([]string{"echo", "c"}))
	assert.Equal(t, 1, gotN, "flags reset between runs")

	assert.Error(t, r.Execute([]string{"echo", "-x"}))
	assert.Error(t, r.Execute([]string{"nope"}))
	assert.Error(t, r.Execute(nil))
}

func TestRunScriptReportsLine(t *testing.T) {
	r := NewRegistry()
	calls := 0
	r.Register("ok", "", nil, func([]string) error { calls++; return nil })

	err := r.RunScript(strings.NewReader("ok\n\n# skip\nok\nbad\nok\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 5")
	assert.Equal(t, 2, calls)
}

func TestHelpListsCommands(t *testing.T) {
	r := NewRegistry()
	r.Register("b", "Y", nil, func([]string) error { return nil })
	r.Register("a", "X", nil, func([]string) error { return nil })
	assert.Equal(t, []string{"a", "b"}, r.Names())
	assert.Equal(t, "a X\nb Y\n", r.Help())
}
