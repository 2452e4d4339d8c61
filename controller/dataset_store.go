package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"padel-logger/models"
	"padel-logger/views"
)

// DatasetStore persists raw capture bursts per stroke class, one CSV per
// class under dir. The durable invariant: a dataset's data-row count is
// always an exact non-negative multiple of samples-per-burst.
//
// Append and RemoveLast on the same class are mutually exclusive;
// operations on different classes are independent.
type DatasetStore struct {
	dir     string
	n       int
	classes []string

	mu    sync.Mutex // guards locks
	locks map[string]*sync.Mutex
}

// NewDatasetStore creates dir if needed and a store for the given class
// set and burst length.
func NewDatasetStore(dir string, samplesPerBurst int, classes []string) (*DatasetStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create dataset dir: %w", err)
	}
	return &DatasetStore{
		dir:     dir,
		n:       samplesPerBurst,
		classes: append([]string(nil), classes...),
		locks:   make(map[string]*sync.Mutex, len(classes)),
	}, nil
}

// Classes returns the known capture class labels, in configured order.
func (s *DatasetStore) Classes() []string {
	return append([]string(nil), s.classes...)
}

// SamplesPerBurst returns the burst length N.
func (s *DatasetStore) SamplesPerBurst() int { return s.n }

// Path returns the dataset file location for a class.
func (s *DatasetStore) Path(class string) string {
	return filepath.Join(s.dir, class+".csv")
}

// Append durably appends one complete burst to the class dataset.
func (s *DatasetStore) Append(class string, burst models.RawBurst) error {
	if err := s.checkClass(class); err != nil {
		return err
	}
	if len(burst) != s.n {
		return fmt.Errorf("burst length %d, want %d", len(burst), s.n)
	}
	lock := s.classLock(class)
	lock.Lock()
	defer lock.Unlock()
	return views.NewDatasetFile(s.Path(class)).AppendBurst(burst)
}

// Count returns the number of durable bursts for a class.
func (s *DatasetStore) Count(class string) (int, error) {
	if err := s.checkClass(class); err != nil {
		return 0, err
	}
	rows, err := views.NewDatasetFile(s.Path(class)).DataRows()
	if err != nil {
		return 0, err
	}
	return rows / s.n, nil
}

// Counts returns the burst count for every known class.
func (s *DatasetStore) Counts() (map[string]int, error) {
	out := make(map[string]int, len(s.classes))
	for _, c := range s.classes {
		n, err := s.Count(c)
		if err != nil {
			return nil, err
		}
		out[c] = n
	}
	return out, nil
}

// RemoveLast drops the most recent burst from a class dataset. Returns
// false when the dataset holds less than one burst ("nothing to
// remove"). Removing the only burst deletes the file entirely.
func (s *DatasetStore) RemoveLast(class string) (bool, error) {
	if err := s.checkClass(class); err != nil {
		return false, err
	}
	lock := s.classLock(class)
	lock.Lock()
	defer lock.Unlock()
	return views.NewDatasetFile(s.Path(class)).TruncateLast(s.n)
}

// Clear deletes a class dataset entirely. Idempotent.
func (s *DatasetStore) Clear(class string) error {
	if err := s.checkClass(class); err != nil {
		return err
	}
	lock := s.classLock(class)
	lock.Lock()
	defer lock.Unlock()
	return views.NewDatasetFile(s.Path(class)).Remove()
}

func (s *DatasetStore) checkClass(class string) error {
	for _, c := range s.classes {
		if c == class {
			return nil
		}
	}
	return fmt.Errorf("unknown stroke class %q", class)
}

func (s *DatasetStore) classLock(class string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[class]
	if !ok {
		l = &sync.Mutex{}
		s.locks[class] = l
	}
	return l
}
