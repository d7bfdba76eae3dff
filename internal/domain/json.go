package domain

import (
	"database/sql/driver"
	"encoding/json"
)

// decodeJSONColumn decodes a persisted JSON column value into dst.
// NULL, unexpected driver types and malformed text all report false so the
// caller keeps its fallback; corrupt data must never break a read.
func decodeJSONColumn(src interface{}, dst interface{}) bool {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return false
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return false
	}
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// StringList is a JSON-array column holding an ordered list of tags.
// An empty list is stored as SQL NULL so the storage layer can tell
// "no tags" apart from "no update requested"; the external JSON form is
// always an array, never null.
type StringList []string

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	out := []string{}
	decodeJSONColumn(src, &out)
	*l = out
	return nil
}

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// MarshalJSON renders a nil list as []
func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// JSONMap is a JSON-object column (opaque key/value preferences document)
type JSONMap map[string]interface{}

// Scan implements sql.Scanner
func (m *JSONMap) Scan(src interface{}) error {
	out := map[string]interface{}{}
	decodeJSONColumn(src, &out)
	*m = out
	return nil
}

// Value implements driver.Valuer
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	data, err := json.Marshal(map[string]interface{}(m))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// MarshalJSON renders a nil map as {}
func (m JSONMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]interface{}(m))
}
