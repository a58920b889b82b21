// Package jsonvalue wraps arbitrary JSON for storage in a text column.
//
// This is where JSON (de)serialization failures for stored entities are
// handled; the one exception is the legacy scheduler-state migration in
// internal/storage/sqlite, which decodes and re-encodes scheduler_data
// itself.
package jsonvalue

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Value holds a JSON document as raw bytes.
// The zero Value marshals to "null" and Scans from SQL NULL into a nil Raw.
type Value struct {
	Raw json.RawMessage
}

// New wraps an already-decoded Go value as a Value, marshaling it immediately
// so that later storage failures are caught at construction time rather than
// at the point the driver happens to flush.
func New(v interface{}) (Value, error) {
	if v == nil {
		return Value{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("jsonvalue: marshal: %w", err)
	}
	return Value{Raw: b}, nil
}

// Decode unmarshals the stored document into dst.
func (v Value) Decode(dst interface{}) error {
	if len(v.Raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(v.Raw, dst); err != nil {
		return fmt.Errorf("jsonvalue: unmarshal: %w", err)
	}
	return nil
}

// IsNull reports whether the value is absent (no document stored).
func (v Value) IsNull() bool {
	return len(v.Raw) == 0
}

// MarshalJSON implements json.Marshaler so a Value nested in a DTO serializes
// as the wrapped document, not as {"Raw": ...}.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.Raw) == 0 {
		return []byte("null"), nil
	}
	return v.Raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		v.Raw = nil
		return nil
	}
	cp := make(json.RawMessage, len(data))
	copy(cp, data)
	v.Raw = cp
	return nil
}

// Value implements driver.Valuer for database/sql.
func (v Value) Value() (driver.Value, error) {
	if len(v.Raw) == 0 {
		return nil, nil
	}
	return string(v.Raw), nil
}

// Scan implements sql.Scanner.
func (v *Value) Scan(src interface{}) error {
	if src == nil {
		v.Raw = nil
		return nil
	}
	switch s := src.(type) {
	case string:
		v.Raw = json.RawMessage(s)
	case []byte:
		cp := make(json.RawMessage, len(s))
		copy(cp, s)
		v.Raw = cp
	default:
		return fmt.Errorf("jsonvalue: unsupported scan source %T", src)
	}
	return nil
}
