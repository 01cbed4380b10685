package model

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	TODO        Status = "todo"
	IN_PROGRESS Status = "in-progress"
	DONE        Status = "done"
)

// Statuses lists the valid statuses in their display order.
var Statuses = []Status{TODO, IN_PROGRESS, DONE}

// ParseStatus returns the Status named by s. Matching is exact.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// ValidStatuses returns "todo, in-progress, done".
func ValidStatuses() string {
	names := make([]string, len(Statuses))
	for i, st := range Statuses {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}

// Task is a single record of the backing file.
type Task struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate reports whether the task could have been produced by the tracker.
func (t Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("task id must be positive, got %d", t.ID)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("task %d: invalid status %q", t.ID, t.Status)
	}
	if t.CreatedAt.IsZero() {
		return fmt.Errorf("task %d: missing createdAt", t.ID)
	}
	if t.UpdatedAt.IsZero() {
		return fmt.Errorf("task %d: missing updatedAt", t.ID)
	}
	return nil
}

// String formats the task the way list prints it: "1 - [todo] buy milk".
func (t Task) String() string {
	return fmt.Sprintf("%d - [%s] %s", t.ID, t.Status, t.Description)
}
