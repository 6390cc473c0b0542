// Package advisor turns readings and target ranges into per-parameter
// statuses and farmer-facing advisory text.
package advisor

import (
	"math"

	"github.com/haithamsoil/nasgh/internal/domain"
)

// Classify compares one value against its target band. Bounds are
// inclusive: a value sitting exactly on min or max is adequate.
func Classify(value float64, band domain.Band) domain.Status {
	switch {
	case value < band.Min:
		return domain.StatusDeficient
	case value > band.Max:
		return domain.StatusExcess
	default:
		return domain.StatusAdequate
	}
}

// Summarize classifies every parameter of the reading that has both a
// finite value and a target band. Parameters missing either are left
// out of the summary entirely; absence means "insufficient data", not
// any of the three statuses.
func Summarize(reading domain.Reading, targets domain.RangeRecord) domain.StatusSummary {
	summary := make(domain.StatusSummary)
	for param, value := range reading {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		band, ok := targets[param]
		if !ok || !band.Valid() {
			continue
		}
		summary[param] = Classify(value, band)
	}
	return summary
}

// Entries returns the classified parameters as display-ordered entries
// for table rendering.
func Entries(reading domain.Reading, targets domain.RangeRecord) []domain.StatusEntry {
	summary := Summarize(reading, targets)
	entries := make([]domain.StatusEntry, 0, len(summary))
	for _, param := range domain.Parameters {
		status, ok := summary[param]
		if !ok {
			continue
		}
		entries = append(entries, domain.StatusEntry{
			Parameter: param,
			Value:     reading[param],
			Band:      targets[param],
			Status:    status,
		})
	}
	return entries
}
