package tags

import (
	"bytes"
	"database/sql/driver"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UnmarshalJSON maps a JSON string to Delimited, an array of strings to List,
// and anything else (null, numbers, objects, mixed arrays) to None.
func (r *Raw) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*r = None()
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode tag string: %w", err)
		}
		*r = Delimited(s)
	case '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err != nil {
			*r = None()
			return nil
		}
		*r = List(items...)
	default:
		*r = None()
	}
	return nil
}

// MarshalJSON writes the field back in its original shape.
func (r Raw) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case KindDelimited:
		return json.Marshal(r.text)
	case KindList:
		return json.Marshal(r.list)
	default:
		return []byte("null"), nil
	}
}

// Scan implements sql.Scanner. Text holding a JSON array of strings becomes
// a List; other text is Delimited; NULL and non-text values are None.
func (r *Raw) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = None()
	case string:
		*r = parseText(v)
	case []byte:
		*r = parseText(string(v))
	default:
		*r = None()
	}
	return nil
}

func parseText(s string) Raw {
	if strings.HasPrefix(strings.TrimSpace(s), "[") {
		var items []string
		if err := json.UnmarshalFromString(s, &items); err == nil {
			return List(items...)
		}
	}
	return Delimited(s)
}

// Value implements driver.Valuer.
func (r Raw) Value() (driver.Value, error) {
	switch r.kind {
	case KindDelimited:
		return r.text, nil
	case KindList:
		data, err := json.Marshal(r.list)
		if err != nil {
			return nil, err
		}
		return string(data), nil
	default:
		return nil, nil
	}
}

// GormDataType tells gorm to store the field as text.
func (Raw) GormDataType() string {
	return "text"
}
