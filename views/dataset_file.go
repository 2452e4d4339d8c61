package views

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"padel-logger/models"
)

// DatasetFile manages one per-class burst dataset on disk: a header row
// (aX..gZ) followed by 3-decimal sample rows. Callers are responsible
// for locking; every operation here is a single open/close cycle.
type DatasetFile struct {
	path string
}

// NewDatasetFile points at (but does not create) a dataset file.
func NewDatasetFile(path string) *DatasetFile {
	return &DatasetFile{path: path}
}

// Path returns the dataset location.
func (d *DatasetFile) Path() string { return d.path }

// AppendBurst appends one burst's sample rows, writing the header first
// when the file is empty or missing. Purely additive: prior rows are
// never rewritten.
func (d *DatasetFile) AppendBurst(burst models.RawBurst) error {
	f, err := os.OpenFile(d.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("dataset open %s: %w", d.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("dataset stat %s: %w", d.path, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(models.Sample{}.CSVHeader()); err != nil {
			return fmt.Errorf("dataset write header: %w", err)
		}
	}
	for _, s := range burst {
		if err := w.Write(s.CSVRow()); err != nil {
			return fmt.Errorf("dataset write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("dataset flush %s: %w", d.path, err)
	}
	return nil
}

// DataRows counts the data rows (header excluded). A missing file is an
// empty dataset, not an error.
func (d *DatasetFile) DataRows() (int, error) {
	lines, err := d.readLines()
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if len(lines) == 0 {
		return 0, nil
	}
	return len(lines) - 1, nil
}

// TruncateLast drops the last n data rows. Returns false when fewer than
// n data rows exist (nothing removed). When no data rows remain the file
// is deleted entirely, never left as a header-only artifact. The rewrite
// goes through a temp file renamed into place, so a concurrent reader
// sees either the old or the new file, never a half-truncated one.
func (d *DatasetFile) TruncateLast(n int) (bool, error) {
	lines, err := d.readLines()
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if len(lines)-1 < n {
		return false, nil
	}

	retained := lines[:len(lines)-n]
	if len(retained) <= 1 {
		if err := os.Remove(d.path); err != nil {
			return false, fmt.Errorf("dataset remove %s: %w", d.path, err)
		}
		return true, nil
	}

	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".dataset-*.tmp")
	if err != nil {
		return false, fmt.Errorf("dataset temp: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(strings.Join(retained, "\n") + "\n"); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return false, fmt.Errorf("dataset rewrite: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("dataset rewrite close: %w", err)
	}
	if err := os.Rename(tmpPath, d.path); err != nil {
		os.Remove(tmpPath)
		return false, fmt.Errorf("dataset rename: %w", err)
	}
	return true, nil
}

// Remove deletes the dataset file. Idempotent: a missing file is fine.
func (d *DatasetFile) Remove() error {
	if err := os.Remove(d.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("dataset remove %s: %w", d.path, err)
	}
	return nil
}

// readLines returns the file's non-empty lines in order.
func (d *DatasetFile) readLines() ([]string, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, err
	}
	raw := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	lines := raw[:0]
	for _, l := range raw {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines, nil
}
