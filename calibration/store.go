package calibration

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// FileStore keeps the offsets in a JSON file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() ([][]float64, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "while reading %s", s.Path)
	}

	var rows [][]float64
	err = json.Unmarshal(data, &rows)
	if err != nil {
		return nil, errors.Wrapf(err, "while parsing %s", s.Path)
	}

	return rows, nil
}

func (s *FileStore) Save(rows [][]float64) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return errors.Wrap(err, "while encoding offsets")
	}

	err = os.WriteFile(s.Path, data, 0644)
	if err != nil {
		return errors.Wrapf(err, "while writing %s", s.Path)
	}

	return nil
}

// MemoryStore keeps the offsets in memory, for tests and for running without
// anywhere to save them.
type MemoryStore struct {
	Rows  [][]float64
	Saves int
}

func (s *MemoryStore) Load() ([][]float64, error) {
	if s.Rows == nil {
		return nil, ErrNotFound
	}

	return s.Rows, nil
}

func (s *MemoryStore) Save(rows [][]float64) error {
	s.Rows = rows
	s.Saves++
	return nil
}
