package domain

import "time"

// EvidenceObject describes one stored proof file.
type EvidenceObject struct {
	Ref      string    `json:"ref"`
	Size     int64     `json:"size"`
	StoredAt time.Time `json:"storedAt"`
}

// SweepResult reports what an orphan sweep removed.
type SweepResult struct {
	Scanned int      `json:"scanned"`
	Removed []string `json:"removed"`
}
