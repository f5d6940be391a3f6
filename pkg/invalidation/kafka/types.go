package kafka

import "time"

// WireEvent is the message published when a route's upstream metadata
// changes. Version is monotonically increasing per route so replays and
// duplicates can be skipped.
type WireEvent struct {
	RouteID string    `json:"route_id"`
	Version uint64    `json:"version"`
	TS      time.Time `json:"ts"`
	Op      string    `json:"op,omitempty"`
}
