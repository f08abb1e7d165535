package model

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON adds the enum name to enum-sourced choices. Options are always
// underlying values; dates and times encode as ISO strings.
func (c ChoiceMeta) MarshalJSON() ([]byte, error) {
	type plain ChoiceMeta
	payload := struct {
		plain
		EnumName string `json:"enum,omitempty"`
	}{plain: plain(c)}
	if c.Enum != nil {
		payload.EnumName = c.Enum.Name
	}
	return json.Marshal(payload)
}

// ToMap renders the descriptor as a generic map, omitting every absent
// facet, for consumers across a process boundary.
func (d FieldDescriptor) ToMap() (map[string]any, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("model: encode descriptor %s: %w", d.Name, err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("model: decode descriptor %s: %w", d.Name, err)
	}
	return out, nil
}
