package model

import (
	"encoding/json"
	"fmt"
)

// Link represents a directed, typed edge between one node's output slot and
// another node's input slot. The data type is advisory; the graph model does
// not enforce that origin and target slot types match.
type Link struct {
	ID         int
	OriginID   int
	OriginSlot int
	TargetID   int
	TargetSlot int
	Type       string
}

// MarshalJSON encodes the link in the visual editor's 6-tuple form:
// [id, origin_id, origin_slot, target_id, target_slot, type].
func (l *Link) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{l.ID, l.OriginID, l.OriginSlot, l.TargetID, l.TargetSlot, l.Type})
}

// UnmarshalJSON decodes the 6-tuple link form.
func (l *Link) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid link encoding: %w", err)
	}
	if len(raw) != 6 {
		return fmt.Errorf("invalid link encoding: expected 6 elements, got %d", len(raw))
	}
	fields := []interface{}{&l.ID, &l.OriginID, &l.OriginSlot, &l.TargetID, &l.TargetSlot, &l.Type}
	for i, field := range fields {
		if err := json.Unmarshal(raw[i], field); err != nil {
			return fmt.Errorf("invalid link element %d: %w", i, err)
		}
	}
	return nil
}

// Clone creates a copy of the link.
func (l *Link) Clone() *Link {
	if l == nil {
		return nil
	}
	clone := *l
	return &clone
}
