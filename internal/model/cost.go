package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Cost is an optional badge price. Datasets spell it as a string ("50"), a
// number (50) or null; all forms compare by their string representation.
type Cost struct {
	value string
	valid bool
}

// NewCost returns a present cost with the given representation. An empty
// string yields an absent cost.
func NewCost(s string) Cost {
	if s == "" {
		return Cost{}
	}
	return Cost{value: s, valid: true}
}

// Valid reports whether the cost is present.
func (c Cost) Valid() bool { return c.valid }

// String returns the cost representation, or "" when absent.
func (c Cost) String() string { return c.value }

// UnmarshalJSON accepts null, a JSON string, or a JSON number. Numbers keep
// their literal text so 50 and "50" compare equal.
func (c *Cost) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = Cost{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("cost: %w", err)
		}
		*c = NewCost(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("cost: expected string, number or null: %w", err)
		}
		*c = NewCost(n.String())
	}
	return nil
}

// MarshalJSON writes the cost as a string, or null when absent.
func (c Cost) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.value)
}
