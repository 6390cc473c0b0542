package domain

import (
	"encoding/json"
	"math"
)

// Reading is one soil measurement snapshot. Parameters the device did
// not report are simply absent.
type Reading map[Parameter]float64

// Clone returns an independent copy of the reading.
func (r Reading) Clone() Reading {
	if r == nil {
		return nil
	}
	out := make(Reading, len(r))
	for p, v := range r {
		out[p] = v
	}
	return out
}

// MarshalJSON emits the reading keyed by wire names in display order.
func (r Reading) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	first := true
	for _, p := range Parameters {
		v, ok := r[p]
		if !ok {
			continue
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		key, _ := json.Marshal(p.WireKey())
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON reads a reading keyed by wire or canonical names.
// Unknown keys and non-numeric values are dropped.
func (r *Reading) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Reading, len(raw))
	for key, msg := range raw {
		p, ok := ParameterFromWire(key)
		if !ok {
			continue
		}
		var v float64
		if err := json.Unmarshal(msg, &v); err != nil {
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[p] = v
	}
	*r = out
	return nil
}
