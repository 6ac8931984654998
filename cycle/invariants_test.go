package cycle

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// checkInvariants walks every chain on both axes and verifies the linkage:
// head.prev and tail.next are nil, prev mirrors next, the walk ends at the
// tail after exactly size steps, and every live entry sits on exactly one
// chain per axis.
func checkInvariants[V, M any](tb testing.TB, c *Cycle[V, M]) {
	tb.Helper()

	for _, axis := range []Axis{King, Queen} {
		seen := make(map[slot]bool)
		for key, ch := range c.chains[axis] {
			if ch.size == 0 {
				require.True(tb, ch.hasMeta, "%s %q: empty chain without metadata", axis, key)
				require.Equal(tb, nilSlot, ch.head)
				require.Equal(tb, nilSlot, ch.tail)
				continue
			}
			require.Equal(tb, nilSlot, c.arena.at(ch.head).links[axis].prev, "%s %q: head.prev", axis, key)
			require.Equal(tb, nilSlot, c.arena.at(ch.tail).links[axis].next, "%s %q: tail.next", axis, key)

			prev, n := nilSlot, 0
			for s := ch.head; s != nilSlot; s = c.arena.at(s).links[axis].next {
				e := c.arena.at(s)
				require.True(tb, e.live, "%s %q: dead slot %d", axis, key, s)
				require.Equal(tb, key, e.keys[axis])
				require.Equal(tb, prev, e.links[axis].prev)
				require.False(tb, seen[s], "%s: slot %d on two chains", axis, s)
				seen[s] = true
				prev = s
				n++
				require.LessOrEqual(tb, n, ch.size, "%s %q: walk longer than size", axis, key)
			}
			require.Equal(tb, ch.tail, prev, "%s %q: walk does not end at tail", axis, key)
			require.Equal(tb, ch.size, n)
		}
		require.Len(tb, seen, c.Len(), "%s: entries reachable vs stored", axis)
	}
}

type pair struct{ king, queen string }

// Random operation sequences keep the structure consistent and agree with a
// simple multiset model of (king, queen) pairs.
func TestCycle_RandomOpsKeepInvariants(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewSource(1))
	c := New[int, int](Options[int]{})
	model := map[pair]int{}

	key := func(prefix string) string { return fmt.Sprintf("%s%d", prefix, r.Intn(6)) }
	id := 0

	for step := 0; step < 5_000; step++ {
		k, q := key("k"), key("q")
		switch op := r.Intn(100); {
		case op < 40:
			id++
			c.Insert(k, q, id)
			model[pair{k, q}]++
		case op < 55:
			c.NextKing(k)
			c.NextQueen(q)
		case op < 65:
			m := map[string]int{}
			for i := r.Intn(4); i > 0; i-- {
				id++
				m[key("q")] = id
			}
			c.ReplaceKing(k, m)
			for p := range model {
				if p.king == k {
					delete(model, p)
				}
			}
			for qq := range m {
				model[pair{k, qq}] = 1
			}
		case op < 75:
			m := map[string]int{}
			for i := r.Intn(4); i > 0; i-- {
				id++
				m[key("k")] = id
			}
			c.ReplaceQueen(q, m)
			for p := range model {
				if p.queen == q {
					delete(model, p)
				}
			}
			for kk := range m {
				model[pair{kk, q}] = 1
			}
		case op < 82:
			c.RemoveKing(k)
			for p := range model {
				if p.king == k {
					delete(model, p)
				}
			}
		case op < 89:
			c.RemoveQueen(q)
			for p := range model {
				if p.queen == q {
					delete(model, p)
				}
			}
		case op < 95:
			c.SetKingMeta(k, step)
		default:
			c.SetQueenMeta(q, step)
		}

		checkInvariants(t, c)
	}

	got := map[pair]int{}
	total := 0
	for k := range c.chains[King] {
		c.RangeKing(k, func(q string, _ int) bool {
			got[pair{k, q}]++
			total++
			return true
		})
	}
	require.Equal(t, model, got)
	require.Equal(t, c.Len(), total)
}
