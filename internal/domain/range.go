package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Band is the healthy {min,max} window for one parameter.
type Band struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Valid reports whether the band is finite with Max strictly above Min.
func (b Band) Valid() bool {
	if math.IsNaN(b.Min) || math.IsInf(b.Min, 0) {
		return false
	}
	if math.IsNaN(b.Max) || math.IsInf(b.Max, 0) {
		return false
	}
	return b.Max > b.Min
}

// Contains reports whether v falls inside the band, bounds inclusive.
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// RangeRecord maps parameters to their target bands. Absent parameters
// mean "no target available", never a zero band.
type RangeRecord map[Parameter]Band

// Clone returns an independent copy of the record.
func (r RangeRecord) Clone() RangeRecord {
	if r == nil {
		return nil
	}
	out := make(RangeRecord, len(r))
	for p, b := range r {
		out[p] = b
	}
	return out
}

// Validate checks that every present band is well formed.
func (r RangeRecord) Validate() error {
	if len(r) == 0 {
		return fmt.Errorf("range record has no parameters")
	}
	for p, b := range r {
		if !b.Valid() {
			return fmt.Errorf("parameter %s: invalid band [%v, %v]", p, b.Min, b.Max)
		}
	}
	return nil
}

// MarshalJSON emits the record keyed by device wire names, parameters
// in display order.
func (r RangeRecord) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	first := true
	for _, p := range Parameters {
		b, ok := r[p]
		if !ok {
			continue
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		key, _ := json.Marshal(p.WireKey())
		val, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON reads a record keyed by wire or canonical names.
// Unknown keys are dropped; band validity is not checked here.
func (r *RangeRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]Band
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(RangeRecord, len(raw))
	for key, band := range raw {
		if p, ok := ParameterFromWire(key); ok {
			out[p] = band
		}
	}
	*r = out
	return nil
}
