package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/task-tracker/pkg/model"
)

func TestLoadMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "tasks.json"))
	tasks, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed on missing file: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("Expected empty non-nil collection, got %v", tasks)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	cases := map[string]string{
		"not json":     "this is not json",
		"object":       `{"id": 1}`,
		"bad status":   `[{"id": 1, "description": "x", "status": "later", "createdAt": "2024-01-01T00:00:00Z", "updatedAt": "2024-01-01T00:00:00Z"}]`,
		"zero id":      `[{"id": 0, "description": "x", "status": "todo", "createdAt": "2024-01-01T00:00:00Z", "updatedAt": "2024-01-01T00:00:00Z"}]`,
		"string id":    `[{"id": "1", "description": "x", "status": "todo", "createdAt": "2024-01-01T00:00:00Z", "updatedAt": "2024-01-01T00:00:00Z"}]`,
		"bad time":     `[{"id": 1, "description": "x", "status": "todo", "createdAt": "yesterday", "updatedAt": "2024-01-01T00:00:00Z"}]`,
		"missing time": `[{"id": 1, "description": "x", "status": "todo"}]`,
		"duplicate id": `[{"id": 1, "description": "a", "status": "todo", "createdAt": "2024-01-01T00:00:00Z", "updatedAt": "2024-01-01T00:00:00Z"},
			{"id": 1, "description": "b", "status": "done", "createdAt": "2024-01-01T00:00:00Z", "updatedAt": "2024-01-01T00:00:00Z"}]`,
		"trailing": `[] []`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			tasks, err := New(path).Load()
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("Expected ErrCorrupt, got %v", err)
			}
			if tasks == nil || len(tasks) != 0 {
				t.Errorf("Expected empty collection, got %v", tasks)
			}
		})
	}
}

func TestLoadEmptyAndNull(t *testing.T) {
	for _, content := range []string{"", "  \n", "null"} {
		path := filepath.Join(t.TempDir(), "tasks.json")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		tasks, err := New(path).Load()
		if err != nil {
			t.Errorf("Load(%q) failed: %v", content, err)
		}
		if len(tasks) != 0 {
			t.Errorf("Load(%q): expected no tasks, got %v", content, tasks)
		}
	}
}

func TestLoadIgnoresUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := `[{"id": 3, "description": "buy milk", "status": "done", "priority": "H",
		"createdAt": "2024-01-01T10:00:00+02:00", "updatedAt": "2024-01-02T10:00:00+02:00"}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	tasks, err := New(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != 3 || tasks[0].Status != model.DONE {
		t.Errorf("Unexpected tasks: %+v", tasks)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	s := New(path)

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: 1, Description: "buy milk", Status: model.TODO, CreatedAt: created, UpdatedAt: created},
		{ID: 4, Description: "write report", Status: model.IN_PROGRESS, CreatedAt: created, UpdatedAt: created.Add(time.Hour)},
	}
	if err := s.Save(tasks); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{`"id": 1`, `"status": "in-progress"`, `"createdAt": "2024-03-01T09:00:00Z"`, `"updatedAt": "2024-03-01T10:00:00Z"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Expected file to contain %s, got:\n%s", want, data)
		}
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("Expected 2 tasks, got %d", len(loaded))
	}
	for i := range tasks {
		if loaded[i].ID != tasks[i].ID || loaded[i].Description != tasks[i].Description || loaded[i].Status != tasks[i].Status {
			t.Errorf("Task %d mismatch: %+v vs %+v", i, loaded[i], tasks[i])
		}
		if !loaded[i].UpdatedAt.Equal(tasks[i].UpdatedAt) {
			t.Errorf("Task %d updatedAt mismatch: %v vs %v", i, loaded[i].UpdatedAt, tasks[i].UpdatedAt)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the task file to remain, got %d entries", len(entries))
	}
}

func TestSaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := New(path).Save(nil); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("Expected [], got %q", data)
	}
}

func TestSaveFailureKeepsPreviousContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	s := New(path)

	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	before := []model.Task{{ID: 1, Description: "buy milk", Status: model.TODO, CreatedAt: created, UpdatedAt: created}}
	if err := s.Save(before); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	orig, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	rename = func(string, string) error { return errors.New("rename failed") }
	t.Cleanup(func() { rename = os.Rename })

	after := append(before, model.Task{ID: 2, Description: "write report", Status: model.DONE, CreatedAt: created, UpdatedAt: created})
	if err := s.Save(after); err == nil {
		t.Fatal("Expected Save to fail")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != string(orig) {
		t.Errorf("Previous content changed:\n%s\nwant:\n%s", data, orig)
	}
	tasks, err := s.Load()
	if err != nil || len(tasks) != 1 {
		t.Errorf("Expected the original single task, got %v (err %v)", tasks, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected the temporary file to be removed, got %d entries", len(entries))
	}
}

func TestSaveFailsWhenParentIsAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("[]\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := New(filepath.Join(path, "tasks.json")).Save([]model.Task{}); err == nil {
		t.Fatal("Expected Save to fail when the parent is a file")
	}
}
