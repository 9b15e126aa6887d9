package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Форматы вывода команд
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ValidOutputs lists the accepted --output values
var ValidOutputs = []string{OutputJSON, OutputYAML}

// Printer writes command results as JSON or YAML
type Printer struct {
	w      io.Writer
	format string
}

// NewPrinter creates a printer for format
func NewPrinter(format string, w io.Writer) (*Printer, error) {
	switch format {
	case OutputJSON, OutputYAML:
		return &Printer{w: w, format: format}, nil
	default:
		return nil, fmt.Errorf("invalid output format %q: must be one of %v", format, ValidOutputs)
	}
}

// Print writes v. YAML is produced from the JSON form, so both share field names.
func (p *Printer) Print(v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	if p.format == OutputJSON {
		_, err = fmt.Fprintf(p.w, "%s\n", raw)
		return err
	}

	var tree any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return enc.Close()
}
