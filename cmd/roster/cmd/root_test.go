package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/roster/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against an in-memory store.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REQUIRE_API_KEY", "")

	importFrom, importTo = "", ""
	exportFrom, exportTo, exportOpen = "", "", false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--env-file="))

	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportCommand_ReportsSummary(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "members.csv", core.Header+"\n"+
		"Ann Lee,Year 1,A1234567B,ann@x.com,81234567,None,Member,\n"+
		"Bob Tan,Year 2,B7654321C,bob@x.com,123,None,Member,\n")

	out, err := execute(t, "import", "--from", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Import complete: 1 member(s) added.")
	assert.Contains(t, out, "Line 3: Invalid phone number (123)")
}

func TestImportCommand_ExportsResult(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "members.csv", core.Header+"\n"+
		"Ann Lee,Year 1,A1234567B,ann@x.com,81234567,None,Member,vip\n")
	dest := filepath.Join(dir, "out", "clean.csv")

	out, err := execute(t, "import", "--from", path, "--to", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 member(s) to "+dest)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, core.Header+"\nAnn Lee,Year 1,A1234567B,ann@x.com,81234567,None,Member,vip\n", string(data))
}

func TestImportCommand_WrongFileType(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "members.txt", core.Header+"\n")

	_, err := execute(t, "import", "--from", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Code: FILE003")
}

func TestImportCommand_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.csv")

	_, err := execute(t, "import", "--from", missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Code: FILE001")
	assert.Contains(t, err.Error(), missing)
}

func TestExportCommand_UnwritableShowsCause(t *testing.T) {
	dir := t.TempDir()
	blocker := writeFile(t, dir, "blocker", "x")

	_, err := execute(t, "export", "--to", filepath.Join(blocker, "out.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Code: EXP001")
	assert.Contains(t, err.Error(), blocker)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestExportCommand_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "members.csv", core.Header+"\n"+
		"Ann Lee,Year 1,A1234567B,ann@x.com,81234567,None,Member,\n"+
		"Bob Tan,Year 2,B7654321C,bob@x.com,91234567,Halal,Treasurer,\n")
	dest := filepath.Join(dir, "copy.csv")

	out, err := execute(t, "export", "--from", path, "--to", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 2 member(s) to "+dest)

	_, err = os.Stat(dest)
	assert.NoError(t, err)
}
