package driver

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openBaseline(t *testing.T) *Baseline {
	t.Helper()
	b, err := OpenBaseline(filepath.Join(t.TempDir(), "lexenv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func TestBaselineRecordAndLookup(t *testing.T) {
	b := openBaseline(t)

	require.NoError(t, b.Record([]*Outcome{
		{Fixture: "a", Status: StatusPass, Result: "1", Stdout: []string{"x"}},
		{Fixture: "b", Status: StatusFail, Error: "TypeError: nope"},
	}))

	record, err := b.Lookup("a")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, StatusPass, record.Status)
	assert.Equal(t, "1", record.Result)
	assert.Equal(t, []string{"x"}, record.Stdout)
	assert.False(t, record.UpdatedAt.IsZero())

	missing, err := b.Lookup("zzz")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, b.Record([]*Outcome{{Fixture: "b", Status: StatusPass, Result: "2"}}))
	passing, err := b.Passing()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, passing)
}

func TestBaselineCompare(t *testing.T) {
	b := openBaseline(t)
	require.NoError(t, b.Record([]*Outcome{
		{Fixture: "stays", Status: StatusPass},
		{Fixture: "breaks", Status: StatusPass},
		{Fixture: "heals", Status: StatusFail},
		{Fixture: "skipped", Status: StatusSkip},
	}))

	cmp, err := b.Compare([]*Outcome{
		{Fixture: "stays", Status: StatusPass},
		{Fixture: "breaks", Status: StatusFail},
		{Fixture: "heals", Status: StatusPass},
		{Fixture: "skipped", Status: StatusFail},
		{Fixture: "fresh", Status: StatusPass},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"breaks"}, cmp.Regressions)
	assert.Equal(t, []string{"heals"}, cmp.Fixed)
	assert.Equal(t, []string{"fresh"}, cmp.Unrecorded)
}
