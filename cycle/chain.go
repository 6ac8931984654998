package cycle

// chain is the list of entries sharing one key on one axis.
// head is the next entry Next* will hand out; tail is the entry it handed
// out last (or the oldest insert if the chain was never rotated).
//
// A chain with size 0 exists only when it was created by a metadata write.
type chain[M any] struct {
	head slot
	tail slot
	size int

	meta    M
	hasMeta bool
}

// -------------------- list internals --------------------

// pushFront links s at the head of its chain on axis, creating the chain
// if needed. O(1).
func (c *Cycle[V, M]) pushFront(axis Axis, s slot) {
	e := c.arena.at(s)
	key := e.keys[axis]
	ch := c.chains[axis][key]
	if ch == nil {
		ch = &chain[M]{}
		c.chains[axis][key] = ch
	}

	e.links[axis] = link{next: ch.head}
	if ch.head != nilSlot {
		c.arena.at(ch.head).links[axis].prev = s
	}
	ch.head = s
	if ch.tail == nilSlot {
		ch.tail = s
	}
	ch.size++
}

// detach unlinks s from its chain on axis and deletes the chain once it
// holds no entries. Metadata does not keep an emptied chain alive. O(1).
func (c *Cycle[V, M]) detach(axis Axis, s slot) {
	e := c.arena.at(s)
	key := e.keys[axis]
	ch := c.chains[axis][key]
	l := e.links[axis]

	if l.prev != nilSlot {
		c.arena.at(l.prev).links[axis].next = l.next
	} else {
		ch.head = l.next
	}
	if l.next != nilSlot {
		c.arena.at(l.next).links[axis].prev = l.prev
	} else {
		ch.tail = l.prev
	}
	e.links[axis] = link{}

	ch.size--
	if ch.size == 0 {
		delete(c.chains[axis], key)
	}
}

// rotate moves the head of ch to its tail. A single-entry chain is left
// as is. The opposite axis is untouched. O(1).
func (c *Cycle[V, M]) rotate(axis Axis, ch *chain[M]) {
	if ch.head == ch.tail {
		return
	}
	h := ch.head
	he := c.arena.at(h)
	newHead := he.links[axis].next

	c.arena.at(newHead).links[axis].prev = nilSlot
	c.arena.at(ch.tail).links[axis].next = h
	he.links[axis] = link{prev: ch.tail}

	ch.head = newHead
	ch.tail = h
}
