package controller

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"padel-logger/models"
)

const testN = 4

func newTestDatasetStore(t *testing.T) *DatasetStore {
	t.Helper()
	s, err := NewDatasetStore(t.TempDir(), testN, []string{"drive", "reves", "smash"})
	require.NoError(t, err)
	return s
}

func burst(v float64) models.RawBurst {
	b := make(models.RawBurst, testN)
	for i := range b {
		b[i] = models.Sample{AX: v, AY: v, AZ: v, GX: v, GY: v, GZ: v}
	}
	return b
}

// dataRows reads back the file and returns (dataRows, headerPresent).
func dataRows(t *testing.T, s *DatasetStore, class string) (int, bool) {
	t.Helper()
	f, err := os.Open(s.Path(class))
	if os.IsNotExist(err) {
		return 0, false
	}
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	if len(rows) == 0 {
		return 0, false
	}
	require.Equal(t, []string{"aX", "aY", "aZ", "gX", "gY", "gZ"}, rows[0])
	return len(rows) - 1, true
}

func TestDatasetStore_AppendAndCount(t *testing.T) {
	s := newTestDatasetStore(t)

	n, err := s.Count("drive")
	require.NoError(t, err)
	assert.Zero(t, n, "missing file is an empty dataset")

	require.NoError(t, s.Append("drive", burst(1)))
	require.NoError(t, s.Append("drive", burst(2)))

	n, err = s.Count("drive")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, header := dataRows(t, s, "drive")
	assert.True(t, header)
	assert.Equal(t, 2*testN, rows)
}

func TestDatasetStore_AppendRejectsWrongLength(t *testing.T) {
	s := newTestDatasetStore(t)
	assert.Error(t, s.Append("drive", burst(1)[:testN-1]))
	assert.Error(t, s.Append("nope", burst(1)))

	rows, header := dataRows(t, s, "drive")
	assert.Zero(t, rows)
	assert.False(t, header, "rejected append must not create the file")
}

func TestDatasetStore_SampleRowPrecision(t *testing.T) {
	s := newTestDatasetStore(t)
	b := burst(0)
	b[0] = models.Sample{AX: 1.23456, AY: -0.5, AZ: 9.81, GX: 120.5, GY: 0, GZ: -33.333}
	require.NoError(t, s.Append("smash", b))

	f, err := os.Open(s.Path("smash"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"1.235", "-0.500", "9.810", "120.500", "0.000", "-33.333"}, rows[1])
}

func TestDatasetStore_RemoveLast(t *testing.T) {
	s := newTestDatasetStore(t)

	removed, err := s.RemoveLast("drive")
	require.NoError(t, err)
	assert.False(t, removed, "nothing to remove from an empty dataset")

	require.NoError(t, s.Append("drive", burst(1)))
	require.NoError(t, s.Append("drive", burst(2)))

	removed, err = s.RemoveLast("drive")
	require.NoError(t, err)
	assert.True(t, removed)

	n, err := s.Count("drive")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows, header := dataRows(t, s, "drive")
	assert.True(t, header)
	assert.Equal(t, testN, rows)
}

func TestDatasetStore_RemoveToEmptyDeletesFile(t *testing.T) {
	s := newTestDatasetStore(t)
	require.NoError(t, s.Append("reves", burst(1)))

	removed, err := s.RemoveLast("reves")
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = os.Stat(s.Path("reves"))
	assert.True(t, os.IsNotExist(err), "no header-only artifact may remain")

	n, err := s.Count("reves")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDatasetStore_MultipleOfNInvariant(t *testing.T) {
	s := newTestDatasetStore(t)

	ops := []func(){
		func() { s.Append("drive", burst(1)) },
		func() { s.RemoveLast("drive") },
		func() { s.RemoveLast("drive") }, // empty, no-op
		func() { s.Append("drive", burst(2)) },
		func() { s.Append("drive", burst(3)) },
		func() { s.Append("drive", burst(4)) },
		func() { s.RemoveLast("drive") },
	}
	for _, op := range ops {
		op()
		rows, _ := dataRows(t, s, "drive")
		require.Zerof(t, rows%testN, "data rows %d must be a multiple of %d", rows, testN)
	}

	n, err := s.Count("drive")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDatasetStore_ClearIdempotent(t *testing.T) {
	s := newTestDatasetStore(t)
	require.NoError(t, s.Append("smash", burst(1)))

	require.NoError(t, s.Clear("smash"))
	require.NoError(t, s.Clear("smash")) // already gone

	n, err := s.Count("smash")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDatasetStore_ClassesAreIndependent(t *testing.T) {
	s := newTestDatasetStore(t)
	require.NoError(t, s.Append("drive", burst(1)))
	require.NoError(t, s.Append("reves", burst(2)))

	_, err := s.RemoveLast("drive")
	require.NoError(t, err)

	counts, err := s.Counts()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"drive": 0, "reves": 1, "smash": 0}, counts)
}
