package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/JonMunkholm/roster/internal/member"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRecord(t *testing.T, name, student, phone string, tags ...string) member.Record {
	t.Helper()
	r, err := member.New(member.Fields{
		Name:                name,
		Year:                "Year 2",
		StudentNumber:       student,
		Email:               "someone@uni.edu",
		Phone:               phone,
		DietaryRequirements: "None",
		Role:                "Member",
		Tags:                tags,
	})
	require.NoError(t, err)
	return r
}

func TestWriteRoster_HeaderOnlyWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRoster(&buf, nil))
	assert.Equal(t, Header+"\n", buf.String())
}

func TestWriteRoster_ColumnOrderAndEscaping(t *testing.T) {
	r := mustRecord(t, "Ann Lee", "A1234567B", "81234567", "board", `says "hi", often`)

	var buf bytes.Buffer
	require.NoError(t, WriteRoster(&buf, []member.Record{r}))

	want := Header + "\n" +
		`Ann Lee,Year 2,A1234567B,someone@uni.edu,81234567,None,Member,"board;says ""hi"", often"` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestExport_CreatesDirectoriesAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")
	records := []member.Record{
		mustRecord(t, "Ann Lee", "A1234567B", "81234567"),
		mustRecord(t, "Bob Tan", "B7654321C", "91234567"),
	}

	got, err := Export(records, path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	_, err = Export(records[:1], path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n"+"Ann Lee,Year 2,A1234567B,someone@uni.edu,81234567,None,Member,\n", string(data))
}

func TestExport_IOFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Export(nil, filepath.Join(blocker, "out.csv"))
	require.ErrorIs(t, err, ErrIOFailure)
}

func TestExport_HookFailureIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "members.csv")

	var opened string
	got, err := Export(nil, path, WithPostExport(func(p string) error {
		opened = p
		return errors.New("no viewer")
	}))

	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, path, opened)
}

func TestExport_HookNotRunOnFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	called := false
	_, err := Export(nil, filepath.Join(blocker, "out.csv"), WithPostExport(func(string) error {
		called = true
		return nil
	}))

	require.Error(t, err)
	assert.False(t, called)
}

func TestExportImport_RoundTrip(t *testing.T) {
	records := []member.Record{
		mustRecord(t, "Ann Lee", "A1234567B", "81234567", "board", "social"),
		mustRecord(t, "Bob Tan", "B7654321C", "91234567"),
		mustRecord(t, "Cat Ng", "C1111111D", "82222222", "a,b", `"quoted"`),
	}
	path := filepath.Join(t.TempDir(), "members.csv")

	_, err := Export(records, path)
	require.NoError(t, err)

	outcome, err := Import(path)
	require.NoError(t, err)
	assert.Empty(t, outcome.Report())

	require.Len(t, outcome.Records, len(records))
	for i := range records {
		assert.True(t, records[i].Equal(outcome.Records[i]), "record %d: %s != %s", i, records[i], outcome.Records[i])
	}
}

func TestExportImport_EscapingIsExact(t *testing.T) {
	values := []string{`a,b`, `say "hi"`, `"`, `,`, `x "y", z`}

	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			r := mustRecord(t, "Ann Lee", "A1234567B", "81234567", v)
			path := filepath.Join(t.TempDir(), "members.csv")

			_, err := Export([]member.Record{r}, path)
			require.NoError(t, err)

			outcome, err := Import(path)
			require.NoError(t, err)
			require.Len(t, outcome.Records, 1)
			assert.Equal(t, []string{v}, outcome.Records[0].TagNames())
		})
	}
}
