package formatting

import (
	"gopkg.in/yaml.v3"
)

// YAMLFormatter provides YAML output formatting
type YAMLFormatter struct {
	options Options
}

// FormatStatus writes rows as a YAML sequence.
func (f *YAMLFormatter) FormatStatus(rows []InstanceStatus) error {
	views := make([]statusView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toStatusView(row))
	}
	return f.encode(views)
}

// FormatResurrections writes rows as a YAML sequence.
func (f *YAMLFormatter) FormatResurrections(rows []Resurrection) error {
	views := make([]resurrectionView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toResurrectionView(row))
	}
	return f.encode(views)
}

func (f *YAMLFormatter) encode(v interface{}) error {
	enc := yaml.NewEncoder(f.options.Output)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
