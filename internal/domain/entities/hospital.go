package entities

// Hospital represents a clinic listed by the directory. Records are produced
// only by the backend; the client never mutates fields, it only replaces
// whole snapshots.
type Hospital struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Address      string `json:"address,omitempty"`
	WaitingTime  int    `json:"waiting_time"`
	CurrentQueue int    `json:"current_queue"`
}

// ListingFilter is the transient search state for the hospital listing.
// It is held only in memory and never persisted.
type ListingFilter struct {
	Query string
	// Type restricts the listing to one hospital category. The value "all"
	// (or empty) imposes no restriction.
	Type string
}

// FilterTypeAll matches every hospital category.
const FilterTypeAll = "all"
