package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harrisonrobin/task-tracker/pkg/model"
	"github.com/jung-kurt/gofpdf"
)

// Formats accepted by Render, in display order.
var Formats = []string{"json", "csv", "pdf"}

func Supported(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Render encodes tasks in the given format, preserving their order.
func Render(tasks []model.Task, format string) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	switch strings.ToLower(format) {
	case "json":
		b, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(b, '\n'), nil
	case "csv":
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"id", "description", "status", "createdAt", "updatedAt"})
		for _, t := range tasks {
			_ = w.Write([]string{
				strconv.Itoa(t.ID),
				t.Description,
				string(t.Status),
				t.CreatedAt.Format(time.RFC3339),
				t.UpdatedAt.Format(time.RFC3339),
			})
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "pdf":
		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(40, 10, "Tasks")
		pdf.Ln(12)
		pdf.SetFont("Arial", "", 10)
		if len(tasks) == 0 {
			pdf.MultiCell(0, 6, "No tasks found.", "0", "L", false)
		}
		tr := pdf.UnicodeTranslatorFromDescriptor("")
		for _, t := range tasks {
			pdf.MultiCell(0, 6, tr(t.String()), "0", "L", false)
		}
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %s", format)
	}
}
