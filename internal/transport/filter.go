package transport

import (
	"fmt"
	"strings"
)

// Condition requires a message property to equal a value.
// Values compare case-insensitively, like client and entity names.
type Condition struct {
	Property string `json:"property" yaml:"property"`
	Value    string `json:"value" yaml:"value"`
}

// Filter is a conjunction of conditions. A nil Filter matches everything.
type Filter struct {
	Conditions []Condition `json:"conditions" yaml:"conditions"`
}

// Equals builds a condition
func Equals(property, value string) Condition {
	return Condition{Property: property, Value: value}
}

// NewFilter creates a filter from conditions
func NewFilter(conditions ...Condition) *Filter {
	return &Filter{Conditions: conditions}
}

// Match checks message properties against the filter
func (f *Filter) Match(properties map[string]string) bool {
	if f == nil {
		return true
	}
	for _, c := range f.Conditions {
		if !strings.EqualFold(properties[c.Property], c.Value) {
			return false
		}
	}
	return true
}

// String renders the filter as ClientName = 'Acme' AND EntityName = 'Person'
func (f *Filter) String() string {
	if f == nil || len(f.Conditions) == 0 {
		return ""
	}
	parts := make([]string, 0, len(f.Conditions))
	for _, c := range f.Conditions {
		parts = append(parts, fmt.Sprintf("%s = '%s'", c.Property, strings.ReplaceAll(c.Value, "'", "''")))
	}
	return strings.Join(parts, " AND ")
}

// ParseFilter parses the form produced by String. An empty string gives a nil filter.
func ParseFilter(s string) (*Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f := &Filter{}
	for _, part := range strings.Split(s, " AND ") {
		property, quoted, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("%w: missing '=' in %q", ErrInvalidFilter, part)
		}
		property = strings.TrimSpace(property)
		quoted = strings.TrimSpace(quoted)
		if property == "" || len(quoted) < 2 || quoted[0] != '\'' || quoted[len(quoted)-1] != '\'' {
			return nil, fmt.Errorf("%w: expected Property = 'value', got %q", ErrInvalidFilter, part)
		}
		value := strings.ReplaceAll(quoted[1:len(quoted)-1], "''", "'")
		f.Conditions = append(f.Conditions, Equals(property, value))
	}
	return f, nil
}
