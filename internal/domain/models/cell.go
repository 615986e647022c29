package models

import (
	"bytes"
	"encoding/json"
)

// Cell is a single raw value of a result set row. The query service sends
// every value as a JSON string or null; numbers and booleans are kept in
// their textual form.
type Cell struct {
	Value string
	Valid bool
}

// RawRow is one row of a result set in schema order.
type RawRow []Cell

// NewCell returns a non-null cell.
func NewCell(v string) Cell {
	return Cell{Value: v, Valid: true}
}

// NullCell returns a null cell.
func NullCell() Cell {
	return Cell{}
}

func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*c = Cell{}
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = NewCell(s)
		return nil
	}

	*c = NewCell(string(b))
	return nil
}

func (c Cell) MarshalJSON() ([]byte, error) {
	if !c.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.Value)
}
