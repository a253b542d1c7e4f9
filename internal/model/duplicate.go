package model

import "time"

// GroupStatus is the lifecycle state of a duplicate group. The detector
// always emits detected; resolve and dismiss are user actions recorded
// by the store.
type GroupStatus string

const (
	// StatusDetected is the initial state produced by detection.
	StatusDetected GroupStatus = "detected"
	// StatusResolved means the user chose an item to keep.
	StatusResolved GroupStatus = "resolved"
	// StatusDismissed means the user decided the overlap is intentional.
	StatusDismissed GroupStatus = "dismissed"
)

// Terminal reports whether the status can no longer change. Repeating a
// resolve or dismiss on a terminal group is a no-op, which makes
// last-write-wins safe for concurrent resolutions.
func (s GroupStatus) Terminal() bool {
	return s == StatusResolved || s == StatusDismissed
}

// DuplicateGroup is a cluster of recurring items judged to serve the
// same purpose, where keeping more than one is likely redundant.
// The id is derived from the cluster key, so re-running detection on an
// unchanged item set reproduces the same identity.
type DuplicateGroup struct {
	CreatedAt        time.Time
	ID               string
	ClusterKey       string
	Purpose          string // human-readable label, e.g. "OTT 영상"
	SuggestedKeepID  string
	ItemIDs          []string // always two or more members
	PotentialSavings float64  // monthly-equivalent savings if only the keeper remains
	Status           GroupStatus
}

// CandidateScore is the cancellation-worthiness of a single item.
// Score is always within [0,1].
type CandidateScore struct {
	ItemID string
	Reason string
	Score  float64
}
