package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Key identifies one synchronized object.
// ClientName и EntityName обязательны, Value и ReservationID опциональны,
// но хотя бы одно из них должно быть заполнено для маршрутизации.
type Key struct {
	ClientName    string `json:"client_name"`              // ClientName имя клиента, владеющего объектом
	EntityName    string `json:"entity_name"`              // EntityName имя сущности внутри клиента
	Value         string `json:"value,omitempty"`          // Value идентификатор объекта в клиенте
	ReservationID string `json:"reservation_id,omitempty"` // ReservationID предварительный идентификатор, выданный хабом
}

// NewKey creates a key for a client-local object id
func NewKey(clientName, entityName, value string) Key {
	return Key{
		ClientName: clientName,
		EntityName: entityName,
		Value:      value,
	}
}

// WithReservation returns a copy of the key carrying the hub reservation id
func (k Key) WithReservation(reservationID string) Key {
	k.ReservationID = reservationID
	return k
}

// Equal reports whether two keys address the same object.
// Client and entity names compare case-insensitively; then either the
// reservation ids match or the values match.
func (k Key) Equal(other Key) bool {
	if fold(k.ClientName) != fold(other.ClientName) || fold(k.EntityName) != fold(other.EntityName) {
		return false
	}
	if other.ReservationID != "" && other.ReservationID == k.ReservationID {
		return true
	}
	return k.Value == other.Value
}

// HashKey returns a bucket key consistent with Equal: keys that are Equal
// always share it. Only the case-folded client and entity names take part,
// because two equal keys may differ in either Value or ReservationID.
func (k Key) HashKey() string {
	return fold(k.ClientName) + "/" + fold(k.EntityName)
}

// IsRoutable reports whether the key carries an object identity
func (k Key) IsRoutable() bool {
	return k.Value != "" || k.ReservationID != ""
}

// Validate checks that the key can be used as a routing target
func (k Key) Validate() error {
	if strings.TrimSpace(k.ClientName) == "" {
		return fmt.Errorf("%w: client name is empty", ErrInvalidKey)
	}
	if strings.TrimSpace(k.EntityName) == "" {
		return fmt.Errorf("%w: entity name is empty", ErrInvalidKey)
	}
	if !k.IsRoutable() {
		return fmt.Errorf("%w: neither value nor reservation id is set for %s/%s", ErrInvalidKey, k.ClientName, k.EntityName)
	}
	return nil
}

// CompactKey returns Client/Entity/Id where Id is the value, or the reservation id when no value exists
func (k Key) CompactKey() string {
	id := k.Value
	if id == "" {
		id = k.ReservationID
	}
	return strings.Join([]string{k.ClientName, k.EntityName, id}, "/")
}

// String is used for logging and correlation
func (k Key) String() string {
	if strings.TrimSpace(k.Value) == "" {
		return fmt.Sprintf("%s/%s (%s)", k.ClientName, k.EntityName, k.ReservationID)
	}
	return fmt.Sprintf("%s/%s/%s", k.ClientName, k.EntityName, k.Value)
}

// fold приводит имя к регистронезависимой форме
func fold(s string) string {
	return cases.Fold().String(s)
}
