package formatting

import (
	"encoding/json"
)

// JSONFormatter provides structured JSON output formatting
type JSONFormatter struct {
	options Options
}

// FormatStatus writes rows as a JSON array.
func (f *JSONFormatter) FormatStatus(rows []InstanceStatus) error {
	views := make([]statusView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toStatusView(row))
	}
	return f.encode(views)
}

// FormatResurrections writes rows as a JSON array.
func (f *JSONFormatter) FormatResurrections(rows []Resurrection) error {
	views := make([]resurrectionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toResurrectionView(row))
	}
	return f.encode(views)
}

func (f *JSONFormatter) encode(v interface{}) error {
	enc := json.NewEncoder(f.options.Output)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
