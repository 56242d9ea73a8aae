package model

import "time"

// Change markers recorded by the diff engine. These are fixed strings so
// downstream consumers can match on them.
const (
	ChangeNone            = "no changes"
	ChangeFingerprint     = "fingerprint changed"
	ChangeInitialDownload = "initial download"
)

// SnapshotRecord is the outcome of one diff run against one source.
// Created fresh on every run and never mutated after return.
type SnapshotRecord struct {
	Source         string   `json:"source"`                    // Source display name (e.g. "Japanese Law")
	Timestamp      string   `json:"timestamp"`                 // RFC 3339 time of the run
	HasChanges     bool     `json:"has_changes"`               // False on first run regardless of content
	OldFingerprint string   `json:"old_fingerprint,omitempty"` // Empty when no prior snapshot existed
	NewFingerprint string   `json:"new_fingerprint,omitempty"` // Empty when retrieval failed
	Changes        []string `json:"changes"`                   // Ordered human-readable change notes
	Error          string   `json:"error,omitempty"`           // Retrieval/processing failure reason
}

// Failed reports whether the run ended in a failure rather than a verdict.
func (r SnapshotRecord) Failed() bool {
	return r.Error != ""
}

// CheckRun groups the records of one full check across all sources.
// The cache stores the most recent run under a fixed key, overwriting
// the previous one.
type CheckRun struct {
	Timestamp time.Time        `json:"timestamp"`
	Results   []SnapshotRecord `json:"results"`
}

// AnyChanges reports whether any source detected content changes.
func (c CheckRun) AnyChanges() bool {
	for _, r := range c.Results {
		if r.HasChanges {
			return true
		}
	}
	return false
}

// AnyFailures reports whether any source's run failed outright.
func (c CheckRun) AnyFailures() bool {
	for _, r := range c.Results {
		if r.Failed() {
			return true
		}
	}
	return false
}
