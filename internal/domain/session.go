package domain

import "time"

// TargetKey identifies one cached range table: a normalized plant slug
// plus a growth stage. Multiple display names (aliases) resolve to the
// same key.
type TargetKey struct {
	PlantKey string
	Stage    Stage
}

// ReadingLogEntry is one ingested device reading with its display
// context, retained in a bounded history.
type ReadingLogEntry struct {
	ID         int64
	DeviceID   string
	Reading    Reading
	StageLabel string
	Advice     string
	RecordedAt time.Time
}

// SoilSession is a complete advisory session: the reading, the resolved
// targets, the per-parameter status summary and the advice shown to the
// farmer.
type SoilSession struct {
	ID            string        `json:"id"`
	CreatedAt     time.Time     `json:"createdAt"`
	Reading       Reading       `json:"soil"`
	PlantName     string        `json:"plantName,omitempty"`
	StageLabel    string        `json:"stage,omitempty"`
	Targets       RangeRecord   `json:"targets,omitempty"`
	StatusSummary StatusSummary `json:"statusSummary,omitempty"`
	Advice        string        `json:"advice,omitempty"`
}
