package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/harrisonrobin/task-tracker/pkg/model"
)

// ErrCorrupt is returned by Load when the backing file exists but does not
// hold a valid task collection.
var ErrCorrupt = errors.New("corrupt task file")

// Storage reads and writes the whole task collection as one JSON file.
type Storage struct {
	Path string
}

func New(path string) *Storage {
	return &Storage{Path: path}
}

func (s *Storage) String() string {
	return s.Path
}

// rename is swapped out in tests to fail the final step of a write.
var rename = os.Rename

// Load returns the tasks in the backing file. A missing or empty file is an
// empty collection. On any other failure Load still returns an empty,
// non-nil collection together with the error.
func (s *Storage) Load() ([]model.Task, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Task{}, nil
		}
		return []model.Task{}, fmt.Errorf("failed to read %s: %w", s.Path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Task{}, nil
	}

	tasks, err := decode(data)
	if err != nil {
		return []model.Task{}, fmt.Errorf("%w %s: %v", ErrCorrupt, s.Path, err)
	}
	return tasks, nil
}

func decode(data []byte) ([]model.Task, error) {
	var tasks []model.Task
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&tasks); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("trailing content after task list")
	}

	seen := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate task id %d", t.ID)
		}
		seen[t.ID] = true
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// Save replaces the backing file with the given collection. The file is
// written to a temporary sibling and renamed into place, so a failed write
// leaves the previous content intact.
func (s *Storage) Save(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}
	data = append(data, '\n')

	if err := WriteFile(s.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}

// WriteFile replaces path with data through a temporary sibling and a
// rename. On failure the previous content of path is left as it was.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		tmp.Close()
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
