package cli

import (
	"strings"

	"github.com/harrisonrobin/task-tracker/pkg/tracker"
)

const usage = "Unknown command. Use: add, update, delete, mark, list, or export."

// Run dispatches one command to the tracker. Missing arguments are passed
// through as empty strings; every outcome is reported through the tracker's
// logger.
func Run(t *tracker.Tracker, log tracker.Logger, args []string) {
	if len(args) == 0 {
		log.Warnf(usage)
		return
	}

	command, rest := args[0], args[1:]
	switch command {
	case "add":
		t.Add(strings.Join(rest, " "))
	case "update":
		t.Update(arg(rest, 0), joinFrom(rest, 1))
	case "delete":
		t.Delete(arg(rest, 0))
	case "mark":
		t.Mark(arg(rest, 0), arg(rest, 1))
	case "list":
		t.List(arg(rest, 0))
	case "export":
		t.Export(arg(rest, 0), arg(rest, 1))
	default:
		log.Warnf(usage)
	}
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func joinFrom(args []string, i int) string {
	if i < len(args) {
		return strings.Join(args[i:], " ")
	}
	return ""
}
