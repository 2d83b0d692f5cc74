// Package formatting renders instance status and resurrection results for
// the command line in table, JSON or YAML form.
package formatting

import (
	"fmt"
	"io"
	"os"
	"strings"

	"nightking/internal/instance"
	"nightking/internal/reconciler"
)

// OutputFormat represents the desired output format
type OutputFormat string

const (
	FormatTable OutputFormat = "table" // Rich table output
	FormatJSON  OutputFormat = "json"  // JSON output
	FormatYAML  OutputFormat = "yaml"  // YAML output
)

// ParseOutputFormat validates a user supplied format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(s)); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table, json or yaml)", s)
	}
}

// Options configures the formatter behavior
type Options struct {
	Format OutputFormat
	Output io.Writer // Defaults to os.Stdout
	Color  bool      // Enable colored output (table only)
}

// InstanceStatus is one row of a status report. Exactly one of Instance and
// Error is set.
type InstanceStatus struct {
	Reference instance.Reference
	Instance  *instance.Instance
	Error     error
}

// Resurrection is the outcome of one resurrection request.
type Resurrection struct {
	Reference instance.Reference
	Result    reconciler.Result
}

// Formatter renders command results.
type Formatter interface {
	FormatStatus(rows []InstanceStatus) error
	FormatResurrections(rows []Resurrection) error
}

// New creates the formatter selected by options.Format.
func New(options Options) Formatter {
	if options.Output == nil {
		options.Output = os.Stdout
	}
	switch options.Format {
	case FormatJSON:
		return &JSONFormatter{options: options}
	case FormatYAML:
		return &YAMLFormatter{options: options}
	default:
		return &TableFormatter{options: options}
	}
}
