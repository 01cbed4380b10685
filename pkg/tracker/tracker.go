package tracker

import (
	"fmt"
	"strconv"
	"time"

	"github.com/harrisonrobin/task-tracker/pkg/model"
	"github.com/harrisonrobin/task-tracker/pkg/storage"
)

// Store persists the whole collection at once.
type Store interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
}

// Logger is the sink every operation reports to.
type Logger interface {
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

type Config struct {
	// Path of the backing file. When Store is set, the path is taken from
	// Store if it implements fmt.Stringer.
	Path  string
	Store Store
	Log   Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Tracker owns the in-memory collection for one run and writes it back to
// the store after every successful mutation.
type Tracker struct {
	store Store
	path  string
	log   Logger
	now   func() time.Time
	tasks []model.Task
}

// New loads the collection. A store that cannot be read yields an empty
// collection and a warning.
func New(cfg Config) *Tracker {
	t := &Tracker{
		store: cfg.Store,
		log:   cfg.Log,
		now:   cfg.Now,
		path:  cfg.Path,
	}
	if t.store == nil {
		t.store = storage.New(cfg.Path)
	} else if s, ok := t.store.(fmt.Stringer); ok {
		t.path = s.String()
	}
	if t.now == nil {
		t.now = time.Now
	}

	tasks, err := t.store.Load()
	if err != nil {
		if t.path != "" {
			t.log.Warnf("Could not read tasks from %s, starting empty: %v", t.path, err)
		} else {
			t.log.Warnf("Could not read tasks, starting empty: %v", err)
		}
		tasks = []model.Task{}
	}
	t.tasks = tasks
	return t
}

// Tasks returns a copy of the collection in insertion order.
func (t *Tracker) Tasks() []model.Task {
	out := make([]model.Task, len(t.tasks))
	copy(out, t.tasks)
	return out
}

func (t *Tracker) Add(description string) model.Task {
	now := t.now()
	task := model.Task{
		ID:          t.nextID(),
		Description: description,
		Status:      model.TODO,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t.tasks = append(t.tasks, task)
	t.persist()
	t.log.Infof("Task added: %d - %s", task.ID, task.Description)
	return task
}

// Update replaces the description of the task with the given id. It reports
// whether the task was found.
func (t *Tracker) Update(id, description string) bool {
	task := t.find(id)
	if task == nil {
		t.log.Warnf("Task not found with id: %s", id)
		return false
	}
	task.Description = description
	task.UpdatedAt = t.now()
	t.persist()
	t.log.Infof("Task updated: %d - %s", task.ID, task.Description)
	return true
}

// Delete removes every task with the given id. A missing id is not reported.
func (t *Tracker) Delete(id string) {
	kept := t.tasks[:0]
	for _, task := range t.tasks {
		if !matches(task, id) {
			kept = append(kept, task)
		}
	}
	t.tasks = kept
	t.persist()
	t.log.Infof("Task deleted with id: %s", id)
}

// Mark moves the task to status. Any transition between valid statuses is
// allowed. It reports whether the task changed.
func (t *Tracker) Mark(id, status string) bool {
	task := t.find(id)
	if task == nil {
		t.log.Warnf("Task not found with id: %s", id)
		return false
	}
	st, ok := model.ParseStatus(status)
	if !ok {
		t.log.Warnf("Invalid status: %s. Valid statuses are: %s", status, model.ValidStatuses())
		return false
	}
	task.Status = st
	task.UpdatedAt = t.now()
	t.persist()
	t.log.Infof("Task marked as %s: %d - %s", st, task.ID, task.Description)
	return true
}

// List logs and returns the tasks whose status equals filter, or all tasks
// when filter is empty.
func (t *Tracker) List(filter string) []model.Task {
	var out []model.Task
	for _, task := range t.tasks {
		if filter == "" || string(task.Status) == filter {
			out = append(out, task)
		}
	}
	if len(out) == 0 {
		t.log.Infof("No tasks found.")
		return out
	}
	for _, task := range out {
		t.log.Infof("%s", task)
	}
	return out
}

func (t *Tracker) nextID() int {
	max := 0
	for _, task := range t.tasks {
		if task.ID > max {
			max = task.ID
		}
	}
	return max + 1
}

func (t *Tracker) find(id string) *model.Task {
	for i := range t.tasks {
		if matches(t.tasks[i], id) {
			return &t.tasks[i]
		}
	}
	return nil
}

// matches compares ids as text, so "01" does not match task 1.
func matches(task model.Task, id string) bool {
	return strconv.Itoa(task.ID) == id
}

// persist writes the collection back. Failures are logged and the in-memory
// state is kept.
func (t *Tracker) persist() {
	if err := t.store.Save(t.tasks); err != nil {
		t.log.Errorf("Failed to save tasks: %v", err)
	}
}
