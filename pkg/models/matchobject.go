package models

import "fmt"

// MatchObject pairs a key with its data. Equality is the key equality.
type MatchObject struct {
	Data *Data `json:"data,omitempty"`
	Key  Key   `json:"key"`
}

// NewMatchObject creates a MatchObject, allocating empty data when nil is passed
func NewMatchObject(key Key, data *Data) *MatchObject {
	if data == nil {
		data = NewData()
	}
	return &MatchObject{Key: key, Data: data}
}

// Equal compares keys
func (m *MatchObject) Equal(other *MatchObject) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.Key.Equal(other.Key)
}

// Property returns a value by dotted path, "" when missing
func (m *MatchObject) Property(path string) string {
	v, _ := m.Data.LookupPath(path)
	return v
}

// SetProperty sets a value by dotted path
func (m *MatchObject) SetProperty(path, value string) {
	if m.Data == nil {
		m.Data = NewData()
	}
	m.Data.SetPropertyValue(path, value)
}

// DeleteProperty removes a value by dotted path
func (m *MatchObject) DeleteProperty(path string) {
	m.Data.DeletePropertyValue(path)
}

func (m *MatchObject) String() string {
	return fmt.Sprintf("%s: %s", m.Key, m.Data)
}
