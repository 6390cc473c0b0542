package domain

import "encoding/json"

// Status is the three-way classification of a reading value against
// its target band.
type Status string

const (
	StatusDeficient Status = "deficient"
	StatusAdequate  Status = "adequate"
	StatusExcess    Status = "excess"
)

// StatusEntry pairs one classified parameter with the evidence behind
// the classification. Entries live only for the duration of a single
// request; they are never persisted by the core.
type StatusEntry struct {
	Parameter Parameter `json:"parameter"`
	Value     float64   `json:"value"`
	Band      Band      `json:"band"`
	Status    Status    `json:"status"`
}

// StatusSummary maps classified parameters to their status. Parameters
// with no target band or no finite value are absent, which callers must
// treat as "insufficient data" rather than any of the three statuses.
type StatusSummary map[Parameter]Status

// MarshalJSON emits the summary keyed by wire names in display order.
func (s StatusSummary) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	first := true
	for _, p := range Parameters {
		st, ok := s[p]
		if !ok {
			continue
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false
		key, _ := json.Marshal(p.WireKey())
		val, _ := json.Marshal(st)
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, val...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON reads a summary keyed by wire or canonical names,
// dropping unknown keys and unrecognized statuses.
func (s *StatusSummary) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(StatusSummary, len(raw))
	for key, val := range raw {
		p, ok := ParameterFromWire(key)
		if !ok {
			continue
		}
		switch Status(val) {
		case StatusDeficient, StatusAdequate, StatusExcess:
			out[p] = Status(val)
		}
	}
	*s = out
	return nil
}
