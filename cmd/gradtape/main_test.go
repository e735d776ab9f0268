package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/born-ml/gradtape/internal/autodiff"
)

// newTestCmd resets global flags and returns a command capturing output.
func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	verbose = false
	traversal = ""
	varFlags = nil
	showGraph = false
	checkEpsilon = autodiff.DefaultEpsilon
	checkTolerance = 1e-5
	batchWorkers = 0

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

func TestVersionCmd(t *testing.T) {
	logger = zap.NewNop()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "gradtape "+version+"\n", buf.String())
}

func TestEvalCmd(t *testing.T) {
	cmd, out := newTestCmd(t)
	varFlags = []string{"x=4", "y=3", "z=2"}

	err := runEval(cmd, []string{"(x + y) * z / x - y"})
	require.NoError(t, err)

	assert.Equal(t, "value = 0.5\nd/dx = -0.375\nd/dy = -0.5\nd/dz = 1.75\n", out.String())
}

func TestEvalCmd_Graph(t *testing.T) {
	cmd, out := newTestCmd(t)
	varFlags = []string{"x=4"}
	showGraph = true
	traversal = "recursive"

	require.NoError(t, runEval(cmd, []string{"sqrt(x)"}))

	s := out.String()
	assert.Contains(t, s, "d/dx = 0.25")
	assert.Contains(t, s, "tape (2 nodes):")
	assert.Contains(t, s, "sqrt")
	assert.Contains(t, s, "parents=[0:0.25]")
}

func TestEvalCmd_Errors(t *testing.T) {
	cmd, _ := newTestCmd(t)

	varFlags = []string{"x"}
	assert.Error(t, runEval(cmd, []string{"x"}))

	varFlags = []string{"x=abc"}
	assert.Error(t, runEval(cmd, []string{"x"}))

	varFlags = []string{"x=1"}
	assert.ErrorIs(t, runEval(cmd, []string{"x / 0"}), autodiff.ErrDivisionByZero)

	traversal = "sideways"
	var terr *autodiff.TraversalError
	assert.ErrorAs(t, runEval(cmd, []string{"x"}), &terr)
}

func TestParseBindings(t *testing.T) {
	got, err := parseBindings([]string{"x=2", " y = -1.5e1 "})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"x": 2, "y": -15}, got)

	_, err = parseBindings([]string{"=3"})
	assert.Error(t, err)
}

func TestCheckCmd(t *testing.T) {
	cmd, out := newTestCmd(t)
	varFlags = []string{"x=1.3", "y=2.1"}

	require.NoError(t, runCheck(cmd, []string{"exp(x / y) * sqrt(x) - log(y)"}))
	assert.True(t, strings.HasSuffix(out.String(), "ok\n"))
	assert.Contains(t, out.String(), "d/dx analytic=")

	cmd, _ = newTestCmd(t)
	varFlags = []string{"x=1"}
	assert.Error(t, runCheck(cmd, []string{"x + y"}))
}

func TestBatchCmd(t *testing.T) {
	cmd, out := newTestCmd(t)

	path := filepath.Join(t.TempDir(), "jobs.yaml")
	content := `
workers: 2
jobs:
  - name: product
    expr: "x * y"
    vars: {x: 2, y: 3}
  - name: root
    expr: "sqrt(x)"
    vars: {x: 4}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	require.NoError(t, runBatch(cmd, []string{path}))

	s := out.String()
	assert.Contains(t, s, "JOB")
	assert.Contains(t, s, "x=3 y=2")
	assert.Contains(t, s, "x=0.25")
}

func TestBatchCmd_FailedJobs(t *testing.T) {
	cmd, out := newTestCmd(t)
	traversal = "recursive"

	path := filepath.Join(t.TempDir(), "jobs.yaml")
	content := "jobs:\n  - {name: bad, expr: \"x / 0\", vars: {x: 1}}\n  - {name: good, expr: \"x\", vars: {x: 1}}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	err := runBatch(cmd, []string{path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 jobs failed")
	assert.Contains(t, out.String(), "division by zero")
}
