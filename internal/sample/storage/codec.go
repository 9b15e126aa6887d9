package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iudanet/matchsync/pkg/models"
)

// objectJSON is the serialized form of Object used by key-value backends
type objectJSON struct {
	UpdatedAt     time.Time    `json:"updated_at"`
	Data          *models.Data `json:"data,omitempty"`
	Entity        string       `json:"entity"`
	Value         string       `json:"value"`
	ReservationID string       `json:"reservation_id,omitempty"`
	MovedTo       string       `json:"moved_to,omitempty"`
	Deleted       bool         `json:"deleted,omitempty"`
}

// MarshalObject serializes an object to JSON
func MarshalObject(obj *Object) ([]byte, error) {
	b, err := json.Marshal(objectJSON(*obj))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal object: %w", err)
	}
	return b, nil
}

// UnmarshalObject deserializes an object from JSON
func UnmarshalObject(b []byte) (*Object, error) {
	var raw objectJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal object: %w", err)
	}
	obj := Object(raw)
	return &obj, nil
}

// MarshalData serializes data for SQL backends; nil data is stored as an empty tree
func MarshalData(d *models.Data) ([]byte, error) {
	if d == nil {
		d = models.NewData()
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal data: %w", err)
	}
	return b, nil
}

// UnmarshalData is the inverse of MarshalData
func UnmarshalData(b []byte) (*models.Data, error) {
	d := models.NewData()
	if err := json.Unmarshal(b, d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data: %w", err)
	}
	return d, nil
}
