package cycle

// Axis selects one of the two key spaces.
type Axis uint8

const (
	// King is the first key space.
	King Axis = iota
	// Queen is the second key space.
	Queen
)

// opposite returns the other axis.
func (a Axis) opposite() Axis { return a ^ 1 }

// String returns a stable lowercase label ("king" or "queen").
func (a Axis) String() string {
	if a == Queen {
		return "queen"
	}
	return "king"
}

// RemoveReason explains why an entry was removed.
type RemoveReason int

const (
	// RemoveReplaced means ReplaceKing/ReplaceQueen dropped the entry
	// because its opposite key was missing from the new mapping.
	RemoveReplaced RemoveReason = iota
	// RemoveBulk means the entry was dropped by RemoveKing/RemoveQueen.
	RemoveBulk
)

// String returns a stable label for the reason.
func (r RemoveReason) String() string {
	if r == RemoveBulk {
		return "bulk"
	}
	return "replaced"
}

// Metrics exposes structure-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	// Hit is reported when Next* returns an entry.
	Hit(axis Axis)
	// Miss is reported when Next* finds no entries for the key.
	Miss(axis Axis)
	// Remove is reported once per removed entry.
	Remove(reason RemoveReason)
	// Size is reported after every mutation.
	Size(entries, kings, queens int)
}

// Options configures a Cycle. Zero values are safe;
// defaults are applied in New():
//   - nil Metrics => NoopMetrics
//   - Capacity 0  => no preallocation
type Options[V any] struct {
	// Capacity preallocates room for this many entries (rounded up to a
	// power of two). It is a hint, not a limit: the arena grows on demand.
	Capacity int

	// Metrics receives Hit/Miss/Remove/Size signals.
	Metrics Metrics

	// OnRemove is called for every entry removed by a replace or a bulk
	// removal, after the entry has been unlinked from both axes. It runs
	// synchronously; it must not call back into the Cycle.
	OnRemove func(king, queen string, data V, reason RemoveReason)
}
