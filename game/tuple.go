package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// The engine encodes most frame records as positional JSON arrays. decodeTuple
// unpacks such an array into dst in order. Trailing elements are ignored so
// newer engines can append fields.
func decodeTuple(data []byte, dst ...any) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) < len(dst) {
		return fmt.Errorf("tuple has %d elements, want %d", len(raw), len(dst))
	}
	for i, d := range dst {
		if err := json.Unmarshal(raw[i], d); err != nil {
			return fmt.Errorf("tuple element %d: %w", i, err)
		}
	}
	return nil
}

func (c *Coords) UnmarshalJSON(data []byte) error {
	var xy [2]float64
	if err := decodeTuple(data, &xy[0], &xy[1]); err != nil {
		return fmt.Errorf("coords: %w", err)
	}
	c.X = int(math.Round(xy[0]))
	c.Y = int(math.Round(xy[1]))
	return nil
}

func (c Coords) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

// UnitID is the engine's identifier of a unit. The engine sends it either as
// a string or as a bare number.
type UnitID string

func (u *UnitID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*u = UnitID(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*u = ""
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("unit id %s: %w", data, err)
	}
	*u = UnitID(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}
