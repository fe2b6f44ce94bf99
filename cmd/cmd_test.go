package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProgram(t *testing.T, dir, name, src string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(src), 0600))
	return p
}

func execute(t *testing.T, c *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("TYL_COLOR", "false")
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	c.SetOut(out)
	c.SetErr(errOut)
	c.SetArgs(args)
	err = c.Execute()
	return out.String(), errOut.String(), err
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	prog := writeProgram(t, dir, "main.tyl", "(define x 1)\n(print (+ x 1))\n(print (rec a x))")

	stdout, _, err := execute(t, RunCmd, prog)
	require.NoError(t, err)
	assert.Equal(t, "2\n<rec a, 1>\n", stdout)
}

func TestRunCommandReportsErrors(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	prog := writeProgram(t, dir, "bad.tyl", "(define x 1)\n(print (+ x true))")

	_, stderr, err := execute(t, RunCmd, prog)
	require.Error(t, err)
	assert.Contains(t, stderr, "bad.tyl:2:13: (E010) type error")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	good := writeProgram(t, dir, "good.tyl", "(define f (lambda n Nat (zero? n)))")
	bad := writeProgram(t, dir, "bad.tyl", "(print missing)")

	stdout, stderr, err := execute(t, CheckCmd, good, bad)
	require.Error(t, err)
	assert.Equal(t, "errors found in 1 of 2 files", err.Error())
	assert.Contains(t, stdout, "good.tyl")
	assert.Contains(t, stdout, "f : (-> Nat Bool)")
	assert.Contains(t, stderr, "bad.tyl:1:8:")
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	prog := writeProgram(t, dir, "p.tyl", "; a comment\n(print   (+ 1   2))")

	stdout, _, err := execute(t, ParseCmd, prog)
	require.NoError(t, err)
	assert.Equal(t, "(print (+ 1 2))\n", stdout)
}

func TestLegacyCommand(t *testing.T) {
	t.Chdir(t.TempDir())

	stdout, _, err := execute(t, LegacyCmd, "(if (== 1 1) then 2 else 3)")
	require.NoError(t, err)
	assert.Equal(t, "2 : Nat\n", stdout)
}
