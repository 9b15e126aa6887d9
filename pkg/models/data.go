package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// PathSeparator separates nested property names in a path
const PathSeparator = "."

const errNilSet = "models: set on nil *Data, allocate it with NewData"

type property struct {
	name  string
	value string
}

type nestedProperty struct {
	data *Data
	name string
}

// Data is a tree of named string values.
// Имена свойств регистронезависимы. Пустые контейнеры не хранятся:
// удаление последнего свойства убирает и сам контейнер.
//
// Reading methods, DeletePropertyValue and Clone accept a nil *Data and treat
// it as an empty tree. Setters need an allocated tree (NewData) and panic on nil.
type Data struct {
	properties map[string]property       // ключ - fold(name)
	nested     map[string]nestedProperty // ключ - fold(name)
	checkSum   string                    // "" - не вычислялась
}

// NewData creates empty Data
func NewData() *Data {
	return &Data{}
}

// NewDataFromMap creates Data with the given top-level properties
func NewDataFromMap(props map[string]string) *Data {
	d := NewData()
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d.setProperty(name, props[name])
	}
	return d
}

// Property returns the value of a top-level property
func (d *Data) Property(name string) (string, bool) {
	if d == nil || d.properties == nil {
		return "", false
	}
	p, ok := d.properties[fold(name)]
	return p.value, ok
}

// GetPropertyValue returns the value of a top-level property.
// When the property is missing it returns "" if okIfNotExists is set, ErrPropertyNotFound otherwise.
func (d *Data) GetPropertyValue(name string, okIfNotExists bool) (string, error) {
	if v, ok := d.Property(name); ok {
		return v, nil
	}
	if okIfNotExists {
		return "", nil
	}
	return "", fmt.Errorf("%w: %q", ErrPropertyNotFound, name)
}

// GetNestedProperty returns a nested subtree by name.
// A missing subtree yields (nil, nil) when okIfNotExists is set.
func (d *Data) GetNestedProperty(name string, okIfNotExists bool) (*Data, error) {
	if n, ok := d.nestedProperty(name); ok {
		return n, nil
	}
	if okIfNotExists {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNestedPropertyNotFound, name)
}

func (d *Data) nestedProperty(name string) (*Data, bool) {
	if d == nil || d.nested == nil {
		return nil, false
	}
	n, ok := d.nested[fold(name)]
	return n.data, ok
}

// LookupPath walks a dotted path like "Mother.Address.ZipCode"
func (d *Data) LookupPath(path string) (string, bool) {
	parts := strings.Split(path, PathSeparator)
	current := d
	for _, part := range parts[:len(parts)-1] {
		next, ok := current.nestedProperty(part)
		if !ok {
			return "", false
		}
		current = next
	}
	return current.Property(parts[len(parts)-1])
}

// FindPropertyValue returns the value at a dotted path
func (d *Data) FindPropertyValue(path string, okIfNotExists bool) (string, error) {
	if v, ok := d.LookupPath(path); ok {
		return v, nil
	}
	if okIfNotExists {
		return "", nil
	}
	return "", fmt.Errorf("%w: %q", ErrPropertyNotFound, path)
}

// SetPropertyValue sets the value at a dotted path, creating nested
// subtrees on the way. The checksum of every touched node is cleared.
func (d *Data) SetPropertyValue(path, value string) {
	if d == nil {
		panic(errNilSet)
	}
	parts := strings.Split(path, PathSeparator)
	current := d
	for _, part := range parts[:len(parts)-1] {
		current.checkSum = ""
		next, ok := current.nestedProperty(part)
		if !ok {
			next = NewData()
			current.setNested(part, next)
		}
		current = next
	}
	current.checkSum = ""
	current.setProperty(parts[len(parts)-1], value)
}

// DeletePropertyValue removes the value at a dotted path.
// Subtrees left without properties and nested properties are removed as well.
func (d *Data) DeletePropertyValue(path string) {
	if d == nil {
		return
	}
	d.deletePath(strings.Split(path, PathSeparator))
}

func (d *Data) deletePath(parts []string) {
	d.checkSum = ""
	key := fold(parts[0])
	if len(parts) == 1 {
		delete(d.properties, key)
		if len(d.properties) == 0 {
			d.properties = nil
		}
		return
	}
	n, ok := d.nested[key]
	if !ok {
		return
	}
	n.data.deletePath(parts[1:])
	if n.data.IsEmpty() {
		delete(d.nested, key)
		if len(d.nested) == 0 {
			d.nested = nil
		}
	}
}

// SetNestedProperty attaches a subtree under name. Empty subtrees are not stored.
func (d *Data) SetNestedProperty(name string, nested *Data) {
	if d == nil {
		panic(errNilSet)
	}
	d.checkSum = ""
	if nested.IsEmpty() {
		delete(d.nested, fold(name))
		if len(d.nested) == 0 {
			d.nested = nil
		}
		return
	}
	d.setNested(name, nested)
}

// SetProperties sets top-level properties from name, value pairs
func (d *Data) SetProperties(namesAndValues ...string) error {
	if len(namesAndValues)%2 != 0 {
		return fmt.Errorf("%w: got %d arguments", ErrOddArguments, len(namesAndValues))
	}
	for i := 0; i < len(namesAndValues); i += 2 {
		d.SetPropertyValue(namesAndValues[i], namesAndValues[i+1])
	}
	return nil
}

// FindDifferingPropertyName returns the first name whose value differs
// from the expected one, or "" when all of them match.
func (d *Data) FindDifferingPropertyName(namesAndValues ...string) (string, error) {
	if len(namesAndValues)%2 != 0 {
		return "", fmt.Errorf("%w: got %d arguments", ErrOddArguments, len(namesAndValues))
	}
	for i := 0; i < len(namesAndValues); i += 2 {
		v, ok := d.LookupPath(namesAndValues[i])
		if !ok || v != namesAndValues[i+1] {
			return namesAndValues[i], nil
		}
	}
	return "", nil
}

// Update replaces the content of d with a deep copy of source
func (d *Data) Update(source *Data) {
	c := source.Clone()
	d.properties = c.properties
	d.nested = c.nested
	d.checkSum = c.checkSum
}

// Clone returns a deep copy
func (d *Data) Clone() *Data {
	c := NewData()
	if d == nil {
		return c
	}
	c.checkSum = d.checkSum
	if d.properties != nil {
		c.properties = make(map[string]property, len(d.properties))
		for k, p := range d.properties {
			c.properties[k] = p
		}
	}
	if d.nested != nil {
		c.nested = make(map[string]nestedProperty, len(d.nested))
		for k, n := range d.nested {
			c.nested[k] = nestedProperty{name: n.name, data: n.data.Clone()}
		}
	}
	return c
}

// IsEmpty reports whether the tree holds neither properties nor nested properties
func (d *Data) IsEmpty() bool {
	return d == nil || (len(d.properties) == 0 && len(d.nested) == 0)
}

// HasProperties reports whether the properties container exists
func (d *Data) HasProperties() bool {
	return d != nil && d.properties != nil
}

// HasNestedProperties reports whether the nested properties container exists
func (d *Data) HasNestedProperties() bool {
	return d != nil && d.nested != nil
}

// PropertyNames returns top-level property names in canonical order
func (d *Data) PropertyNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.properties))
	for _, p := range d.sortedProperties() {
		names = append(names, p.name)
	}
	return names
}

// NestedPropertyNames returns nested property names in canonical order
func (d *Data) NestedPropertyNames() []string {
	if d == nil {
		return nil
	}
	names := make([]string, 0, len(d.nested))
	for _, n := range d.sortedNested() {
		names = append(names, n.name)
	}
	return names
}

// Properties returns a copy of the top-level properties
func (d *Data) Properties() map[string]string {
	if !d.HasProperties() {
		return nil
	}
	out := make(map[string]string, len(d.properties))
	for _, p := range d.properties {
		out[p.name] = p.value
	}
	return out
}

// String renders top-level properties as Name="value" pairs
func (d *Data) String() string {
	if !d.HasProperties() {
		return "No properties"
	}
	parts := make([]string, 0, len(d.properties))
	for _, p := range d.sortedProperties() {
		parts = append(parts, fmt.Sprintf("%s=%q", p.name, p.value))
	}
	return strings.Join(parts, ", ")
}

func (d *Data) setProperty(name, value string) {
	if d.properties == nil {
		d.properties = make(map[string]property)
	}
	d.properties[fold(name)] = property{name: name, value: value}
}

func (d *Data) setNested(name string, nested *Data) {
	if d.nested == nil {
		d.nested = make(map[string]nestedProperty)
	}
	d.nested[fold(name)] = nestedProperty{name: name, data: nested}
}

// sortedProperties orders by folded name so that the order is stable for equal trees
func (d *Data) sortedProperties() []property {
	keys := make([]string, 0, len(d.properties))
	for k := range d.properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]property, 0, len(keys))
	for _, k := range keys {
		out = append(out, d.properties[k])
	}
	return out
}

func (d *Data) sortedNested() []nestedProperty {
	keys := make([]string, 0, len(d.nested))
	for k := range d.nested {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]nestedProperty, 0, len(keys))
	for _, k := range keys {
		out = append(out, d.nested[k])
	}
	return out
}

type dataJSON struct {
	Properties       map[string]*string         `json:"properties,omitempty"`
	NestedProperties map[string]json.RawMessage `json:"nested_properties,omitempty"`
	CheckSum         string                     `json:"check_sum,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (d *Data) MarshalJSON() ([]byte, error) {
	if d == nil {
		return []byte("null"), nil
	}
	out := dataJSON{CheckSum: d.checkSum}
	if d.properties != nil {
		out.Properties = make(map[string]*string, len(d.properties))
		for _, p := range d.properties {
			v := p.value
			out.Properties[p.name] = &v
		}
	}
	if d.nested != nil {
		out.NestedProperties = make(map[string]json.RawMessage, len(d.nested))
		for _, n := range d.nested {
			raw, err := n.data.MarshalJSON()
			if err != nil {
				return nil, fmt.Errorf("failed to marshal nested property %q: %w", n.name, err)
			}
			out.NestedProperties[n.name] = raw
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
// null values and empty subtrees are dropped.
func (d *Data) UnmarshalJSON(b []byte) error {
	var in dataJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*d = Data{checkSum: in.CheckSum}

	// сортируем, чтобы при дублях "a"/"A" результат был детерминированным
	names := make([]string, 0, len(in.Properties))
	for name := range in.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := in.Properties[name]; v != nil {
			d.setProperty(name, *v)
		}
	}

	names = names[:0]
	for name := range in.NestedProperties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		raw := in.NestedProperties[name]
		if string(raw) == "null" {
			continue
		}
		nested := NewData()
		if err := nested.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("failed to unmarshal nested property %q: %w", name, err)
		}
		if !nested.IsEmpty() {
			d.setNested(name, nested)
		}
	}
	return nil
}
