package cycle

import (
	"maps"
	"slices"

	"github.com/IvanBrykalov/doublecycle/internal/util"
)

// Cycle stores entries indexed by a king key and a queen key at the same
// time, and cycles round-robin through the entries sharing either key.
//
// V is the entry payload, M the per-key metadata. A Cycle is not safe for
// concurrent use; callers that share one must serialize access.
type Cycle[V, M any] struct {
	arena  arena[V]
	chains [2]map[string]*chain[M] // indexed by Axis

	opt Options[V]
}

// New constructs a Cycle with the provided Options.
// Defaults:
//   - nil Metrics -> NoopMetrics
//   - Capacity    -> rounded up to the next power of two
func New[V, M any](opt Options[V]) *Cycle[V, M] {
	if opt.Capacity < 0 {
		panic("cycle: Capacity must be >= 0")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	capacity := 0
	if opt.Capacity > 0 {
		capacity = int(util.NextPow2(uint64(opt.Capacity)))
	}
	return &Cycle[V, M]{
		arena: newArena[V](capacity),
		chains: [2]map[string]*chain[M]{
			make(map[string]*chain[M]),
			make(map[string]*chain[M]),
		},
		opt: opt,
	}
}

// ---- mutation ----

// Insert adds a new entry at the head of both its king chain and its queen
// chain, so it is the next one handed out by NextKing(king) and
// NextQueen(queen). Duplicate pairs are kept as independent entries.
func (c *Cycle[V, M]) Insert(king, queen string, data V) *Cycle[V, M] {
	c.insert(king, queen, data)
	c.reportSize()
	return c
}

// ReplaceKing makes the entries under king exactly those described by m,
// which maps queen keys to payloads. Existing entries whose queen is in m
// keep their identity and queen-chain position and only get new data;
// entries whose queen is missing from m are removed from both axes; the
// remaining keys of m are inserted.
func (c *Cycle[V, M]) ReplaceKing(king string, m map[string]V) *Cycle[V, M] {
	c.replace(King, king, m)
	return c
}

// ReplaceQueen is the queen-axis counterpart of ReplaceKing; m maps king
// keys to payloads.
func (c *Cycle[V, M]) ReplaceQueen(queen string, m map[string]V) *Cycle[V, M] {
	c.replace(Queen, queen, m)
	return c
}

// RemoveKing removes every entry under king from both axes and drops the
// king chain together with its metadata.
func (c *Cycle[V, M]) RemoveKing(king string) *Cycle[V, M] {
	c.remove(King, king)
	return c
}

// RemoveQueen removes every entry under queen from both axes and drops the
// queen chain together with its metadata.
func (c *Cycle[V, M]) RemoveQueen(queen string) *Cycle[V, M] {
	c.remove(Queen, queen)
	return c
}

// ---- cycling ----

// NextKing advances the king chain by one position and returns the payload
// of the entry now at its tail. It reports false if king has no entries.
func (c *Cycle[V, M]) NextKing(king string) (V, bool) { return c.next(King, king) }

// NextQueen advances the queen chain by one position and returns the
// payload of the entry now at its tail. It reports false if queen has no
// entries.
func (c *Cycle[V, M]) NextQueen(queen string) (V, bool) { return c.next(Queen, queen) }

// LastKing returns the king of the entry most recently handed out by
// NextQueen(queen), or of the oldest entry if the chain never rotated.
func (c *Cycle[V, M]) LastKing(queen string) (string, bool) { return c.last(Queen, queen) }

// LastQueen returns the queen of the entry most recently handed out by
// NextKing(king), or of the oldest entry if the chain never rotated.
func (c *Cycle[V, M]) LastQueen(king string) (string, bool) { return c.last(King, king) }

// ---- metadata ----

// KingMeta returns the metadata attached to king.
func (c *Cycle[V, M]) KingMeta(king string) (M, bool) { return c.getMeta(King, king) }

// QueenMeta returns the metadata attached to queen.
func (c *Cycle[V, M]) QueenMeta(queen string) (M, bool) { return c.getMeta(Queen, queen) }

// SetKingMeta attaches meta to king, creating an empty chain if needed.
// The metadata is dropped once the last entry under king is removed.
func (c *Cycle[V, M]) SetKingMeta(king string, meta M) *Cycle[V, M] {
	c.setMeta(King, king, meta)
	return c
}

// SetQueenMeta attaches meta to queen, creating an empty chain if needed.
// The metadata is dropped once the last entry under queen is removed.
func (c *Cycle[V, M]) SetQueenMeta(queen string, meta M) *Cycle[V, M] {
	c.setMeta(Queen, queen, meta)
	return c
}

// ---- introspection ----

// Len returns the number of stored entries.
func (c *Cycle[V, M]) Len() int { return c.arena.len() }

// Kings returns the number of king keys, metadata-only keys included.
func (c *Cycle[V, M]) Kings() int { return len(c.chains[King]) }

// Queens returns the number of queen keys, metadata-only keys included.
func (c *Cycle[V, M]) Queens() int { return len(c.chains[Queen]) }

// KingLen returns the number of entries under king.
func (c *Cycle[V, M]) KingLen(king string) int { return c.chainLen(King, king) }

// QueenLen returns the number of entries under queen.
func (c *Cycle[V, M]) QueenLen(queen string) int { return c.chainLen(Queen, queen) }

// RangeKing calls fn for each entry under king, from the next one to be
// handed out to the last one handed out, until fn returns false.
// The chain is not rotated. fn must not mutate the Cycle.
func (c *Cycle[V, M]) RangeKing(king string, fn func(queen string, data V) bool) {
	c.walk(King, king, fn)
}

// RangeQueen is the queen-axis counterpart of RangeKing.
func (c *Cycle[V, M]) RangeQueen(queen string, fn func(king string, data V) bool) {
	c.walk(Queen, queen, fn)
}

// -------------------- internals --------------------

func (c *Cycle[V, M]) insert(king, queen string, data V) {
	s := c.arena.alloc(king, queen, data)
	c.pushFront(King, s)
	c.pushFront(Queen, s)
}

// replace diffs the chain for key against m in a single pass over the
// chain. Keys of m that match no entry are inserted afterwards in sorted
// order, so the largest key ends up at the head.
func (c *Cycle[V, M]) replace(axis Axis, key string, m map[string]V) {
	opp := axis.opposite()
	pending := m

	if ch := c.chains[axis][key]; ch != nil && ch.head != nilSlot {
		pending = maps.Clone(m)
		for s := ch.head; s != nilSlot; {
			e := c.arena.at(s)
			next := e.links[axis].next
			other := e.keys[opp]
			if d, ok := pending[other]; ok {
				e.data = d
				delete(pending, other)
			} else {
				c.removeEntry(s, RemoveReplaced)
			}
			s = next
		}
	}

	for _, other := range slices.Sorted(maps.Keys(pending)) {
		if axis == King {
			c.insert(key, other, pending[other])
		} else {
			c.insert(other, key, pending[other])
		}
	}
	c.reportSize()
}

// remove drops every entry of the chain for key. Entries are unlinked from
// the opposite axis one by one; the chain itself goes in one step.
func (c *Cycle[V, M]) remove(axis Axis, key string) {
	ch := c.chains[axis][key]
	if ch == nil {
		return
	}
	opp := axis.opposite()
	for s := ch.head; s != nilSlot; {
		e := c.arena.at(s)
		next := e.links[axis].next
		king, queen, data := e.keys[King], e.keys[Queen], e.data

		c.detach(opp, s)
		c.arena.release(s)
		c.notifyRemove(king, queen, data, RemoveBulk)
		s = next
	}
	delete(c.chains[axis], key)
	c.reportSize()
}

// removeEntry unlinks s from both axes and frees it.
func (c *Cycle[V, M]) removeEntry(s slot, reason RemoveReason) {
	e := c.arena.at(s)
	king, queen, data := e.keys[King], e.keys[Queen], e.data

	c.detach(King, s)
	c.detach(Queen, s)
	c.arena.release(s)
	c.notifyRemove(king, queen, data, reason)
}

func (c *Cycle[V, M]) next(axis Axis, key string) (V, bool) {
	ch := c.chains[axis][key]
	if ch == nil || ch.head == nilSlot {
		c.opt.Metrics.Miss(axis)
		var zero V
		return zero, false
	}
	c.rotate(axis, ch)
	c.opt.Metrics.Hit(axis)
	return c.arena.at(ch.tail).data, true
}

func (c *Cycle[V, M]) last(axis Axis, key string) (string, bool) {
	ch := c.chains[axis][key]
	if ch == nil || ch.tail == nilSlot {
		return "", false
	}
	return c.arena.at(ch.tail).keys[axis.opposite()], true
}

func (c *Cycle[V, M]) getMeta(axis Axis, key string) (M, bool) {
	ch := c.chains[axis][key]
	if ch == nil {
		var zero M
		return zero, false
	}
	return ch.meta, ch.hasMeta
}

func (c *Cycle[V, M]) setMeta(axis Axis, key string, meta M) {
	ch := c.chains[axis][key]
	if ch == nil {
		ch = &chain[M]{}
		c.chains[axis][key] = ch
	}
	ch.meta = meta
	ch.hasMeta = true
	c.reportSize()
}

func (c *Cycle[V, M]) chainLen(axis Axis, key string) int {
	if ch := c.chains[axis][key]; ch != nil {
		return ch.size
	}
	return 0
}

func (c *Cycle[V, M]) walk(axis Axis, key string, fn func(string, V) bool) {
	ch := c.chains[axis][key]
	if ch == nil {
		return
	}
	opp := axis.opposite()
	for s := ch.head; s != nilSlot; {
		e := c.arena.at(s)
		if !fn(e.keys[opp], e.data) {
			return
		}
		s = e.links[axis].next
	}
}

func (c *Cycle[V, M]) notifyRemove(king, queen string, data V, reason RemoveReason) {
	c.opt.Metrics.Remove(reason)
	if cb := c.opt.OnRemove; cb != nil {
		cb(king, queen, data, reason)
	}
}

func (c *Cycle[V, M]) reportSize() {
	c.opt.Metrics.Size(c.arena.len(), len(c.chains[King]), len(c.chains[Queen]))
}
