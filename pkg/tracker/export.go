package tracker

import (
	"path/filepath"
	"strings"

	"github.com/harrisonrobin/task-tracker/pkg/export"
	"github.com/harrisonrobin/task-tracker/pkg/storage"
)

// Export writes the collection to path in the given format. An empty path
// means tasks-export.<format> in the working directory. The backing file is
// never an export target, and the collection is not modified.
func (t *Tracker) Export(format, path string) bool {
	format = strings.ToLower(format)
	if !export.Supported(format) {
		t.log.Warnf("Unknown export format: %s. Use: %s", format, strings.Join(export.Formats, ", "))
		return false
	}
	if path == "" {
		path = "tasks-export." + format
	}
	if t.isBackingFile(path) {
		t.log.Warnf("Refusing to export over the task file %s", path)
		return false
	}

	data, err := export.Render(t.tasks, format)
	if err != nil {
		t.log.Errorf("Failed to export tasks: %v", err)
		return false
	}
	if err := storage.WriteFile(path, data, 0644); err != nil {
		t.log.Errorf("Failed to export tasks: %v", err)
		return false
	}
	t.log.Infof("Exported %d tasks to %s", len(t.tasks), path)
	return true
}

func (t *Tracker) isBackingFile(path string) bool {
	if t.path == "" {
		return false
	}
	a, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	b, err := filepath.Abs(t.path)
	if err != nil {
		return false
	}
	return a == b
}
