package formatting

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"nightking/internal/instance"
	nkstrings "nightking/pkg/strings"
)

// TableFormatter provides rich table output formatting
type TableFormatter struct {
	options Options
}

// FormatStatus renders one row per instance.
func (f *TableFormatter) FormatStatus(rows []InstanceStatus) error {
	if len(rows) == 0 {
		return f.formatEmptyMessage("No instances requested")
	}

	t := f.createTable()
	t.AppendHeader(f.header("NAME", "ZONE", "STATUS", "PREEMPTIBLE", "LAST STOP"))

	for _, row := range rows {
		v := toStatusView(row)
		status := v.Status
		if v.Error != "" {
			status = nkstrings.Truncate(v.Error, nkstrings.DefaultCellMaxLen)
		}
		preemptible := "-"
		if row.Instance != nil {
			preemptible = fmt.Sprintf("%t", v.Preemptible)
		}
		t.AppendRow(table.Row{v.Name, v.Zone, f.colorStatus(row, status), preemptible, dashIfEmpty(v.LastStop)})
	}

	t.Render()
	return nil
}

// FormatResurrections renders one row per request.
func (f *TableFormatter) FormatResurrections(rows []Resurrection) error {
	if len(rows) == 0 {
		return f.formatEmptyMessage("No instances requested")
	}

	t := f.createTable()
	t.AppendHeader(f.header("NAME", "ZONE", "OUTCOME", "LAST STATUS", "POLLS", "WAITED", "OPERATION"))

	for _, row := range rows {
		v := toResurrectionView(row)
		outcome := v.Outcome
		if f.options.Color {
			if outcomeSucceeded(row.Result) {
				outcome = text.FgGreen.Sprint(outcome)
			} else {
				outcome = text.FgYellow.Sprint(outcome)
			}
		}
		op := v.Operation
		if v.Error != "" {
			op = nkstrings.Truncate(v.Error, nkstrings.DefaultCellMaxLen)
		}
		t.AppendRow(table.Row{v.Name, v.Zone, outcome, dashIfEmpty(v.LastStatus), v.Polls, v.Waited, dashIfEmpty(op)})
	}

	t.Render()
	return nil
}

// createTable creates a new table with standard styling
func (f *TableFormatter) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(f.options.Output)
	if f.options.Color {
		t.SetStyle(table.StyleRounded)
	} else {
		t.SetStyle(table.StyleLight)
	}
	return t
}

func (f *TableFormatter) header(names ...string) table.Row {
	row := make(table.Row, 0, len(names))
	for _, name := range names {
		if f.options.Color {
			row = append(row, text.FgHiCyan.Sprint(name))
		} else {
			row = append(row, name)
		}
	}
	return row
}

func (f *TableFormatter) colorStatus(row InstanceStatus, status string) string {
	if !f.options.Color {
		return status
	}
	switch {
	case row.Error != nil:
		return text.FgRed.Sprint(status)
	case row.Instance.Status == instance.StatusRunning:
		return text.FgGreen.Sprint(status)
	case row.Instance.Status == instance.StatusTerminated:
		return text.FgYellow.Sprint(status)
	default:
		return status
	}
}

// formatEmptyMessage formats empty result messages
func (f *TableFormatter) formatEmptyMessage(message string) error {
	_, err := fmt.Fprintln(f.options.Output, message)
	return err
}

func dashIfEmpty(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
