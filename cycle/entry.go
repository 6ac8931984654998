package cycle

// slot addresses an entry inside the arena. Slot 0 is reserved and acts as
// the nil link, so a zero-valued link points nowhere.
type slot uint32

const nilSlot slot = 0

// link is one axis worth of list pointers.
type link struct {
	next slot
	prev slot
}

// entry is a single stored item. It is threaded through two independent
// doubly linked lists at once: one per Axis.
type entry[V any] struct {
	keys  [2]string // indexed by Axis
	data  V
	links [2]link // indexed by Axis
	live  bool
}

// arena owns every entry. Slots are stable for the lifetime of an entry and
// recycled through a free list once the entry is removed.
type arena[V any] struct {
	entries []entry[V]
	free    []slot
}

func newArena[V any](capacity int) arena[V] {
	return arena[V]{entries: make([]entry[V], 1, capacity+1)}
}

// alloc returns a fresh, unlinked slot holding the given keys and data.
func (a *arena[V]) alloc(king, queen string, data V) slot {
	var s slot
	if n := len(a.free); n > 0 {
		s = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.entries = append(a.entries, entry[V]{})
		s = slot(len(a.entries) - 1)
	}
	a.entries[s] = entry[V]{keys: [2]string{king, queen}, data: data, live: true}
	return s
}

// release zeroes the slot so the payload can be collected, then recycles it.
func (a *arena[V]) release(s slot) {
	a.entries[s] = entry[V]{}
	a.free = append(a.free, s)
}

func (a *arena[V]) at(s slot) *entry[V] { return &a.entries[s] }

// len is the number of live entries.
func (a *arena[V]) len() int { return len(a.entries) - 1 - len(a.free) }
