// Package cycle provides a generic in-memory structure that indexes entries
// by two string keys at once, a "king" and a "queen", and cycles round-robin
// through the entries sharing either key.
//
// It is the primitive behind sticky, rotating associations between two
// populations: pick the next backend for a client while remembering which
// backend each client used last, and the other way round.
//
// Design
//
//   - Storage: entries live in an arena (a slice) and are addressed by
//     stable slot indices. Each entry carries two pairs of next/prev links,
//     one per Axis, so every entry sits on exactly one king chain and one
//     queen chain at the same time. Freed slots are recycled.
//
//   - Chains: every key owns a chain with head and tail slots. The head is
//     the next entry NextKing/NextQueen hands out; the tail is the one it
//     handed out last. Insert pushes onto the head, so a fresh entry is
//     served first.
//
//   - Rotation: Next* moves the head to the tail in O(1) and returns it.
//     Only the rotated axis changes order.
//
//   - Replace: ReplaceKing/ReplaceQueen diff the current chain against a
//     mapping in one pass: matching entries keep their identity and get the
//     new payload, the rest are removed from both axes, and missing keys are
//     inserted.
//
//   - Metadata: each key may carry one metadata value. It lives as long as
//     the chain does; removing the last entry under a key drops both.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Remove/Size signals.
//     NoopMetrics is used by default; metrics/prom exports them to Prometheus.
//
// Basic usage
//
//	c := cycle.New[string, string](cycle.Options[string]{})
//	c.Insert("client-1", "backend-a", "10.0.0.1:80")
//	c.Insert("client-1", "backend-b", "10.0.0.2:80")
//	addr, _ := c.NextKing("client-1")   // "10.0.0.2:80"
//	last, _ := c.LastQueen("client-1")  // "backend-b"
//
// Replacing a key's entries
//
//	c.ReplaceKing("client-1", map[string]string{
//	    "backend-b": "10.0.0.2:8080", // updated in place
//	    "backend-c": "10.0.0.3:80",   // inserted
//	}) // backend-a is removed from both axes
//
// Thread-safety & complexity
//
// A Cycle is not safe for concurrent use. Insert, Next*, Last* and the
// metadata accessors are O(1); Replace* and Remove* are linear in the size
// of the chain (and of the mapping).
package cycle
