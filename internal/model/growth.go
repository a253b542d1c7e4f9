package model

import "time"

// Goal is a personal goal that recurring spend can be linked to.
type Goal struct {
	CreatedAt  time.Time
	ID         string
	Title      string
	GrowthType string // e.g. "language", "fitness", "career"
}

// LinkWeight expresses how strongly a recurring item supports a goal.
type LinkWeight string

const (
	// WeightPrimary marks the item as essential to the goal. A primary
	// link protects the item from cancellation candidacy.
	WeightPrimary LinkWeight = "primary"
	// WeightSecondary marks the item as helpful but not essential.
	WeightSecondary LinkWeight = "secondary"
)

// GrowthLink relates a recurring item to a goal. An item may carry any
// number of links but at most one primary link; the store enforces that
// on write and the scorer applies the primary reduction at most once.
type GrowthLink struct {
	CreatedAt time.Time
	GoalID    string
	ItemID    string
	Weight    LinkWeight
}
