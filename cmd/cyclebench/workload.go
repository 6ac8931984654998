package main

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/IvanBrykalov/doublecycle/cycle"
)

// result is what one worker observed.
type result struct {
	ops, hits, misses uint64
	drains, leaves    uint64
	removed           uint64
	served            map[string]uint64 // backend -> Next hits
	entries           int
}

func backendName(i int) string { return "backend-" + strconv.Itoa(i) }

// runWorker drives a private Cycle until ctx is done. Clients are kings,
// backends are queens. Each iteration either resolves the next backend for
// a Zipf-distributed client (assigning a fresh set on a miss) or churns:
// a backend drains or a client leaves.
func runWorker(ctx context.Context, id int, cfg Config, m cycle.Metrics) result {
	r := rand.New(rand.NewSource(cfg.Seed + int64(id)*9973))
	zipf := rand.NewZipf(r, cfg.ZipfS, 1, uint64(cfg.Clients-1))

	res := result{served: make(map[string]uint64, cfg.Backends)}
	c := cycle.New[string, time.Time](cycle.Options[string]{
		Capacity: cfg.Clients * cfg.PerClient,
		Metrics:  m,
		OnRemove: func(_, _, _ string, _ cycle.RemoveReason) { res.removed++ },
	})
	churnSplit := cfg.ReadPct + (100-cfg.ReadPct)/2

	for {
		select {
		case <-ctx.Done():
			res.entries = c.Len()
			return res
		default:
		}

		client := "client-" + strconv.FormatUint(zipf.Uint64(), 10)
		res.ops++
		switch p := r.Intn(100); {
		case p < cfg.ReadPct:
			if _, ok := c.NextKing(client); ok {
				res.hits++
				backend, _ := c.LastQueen(client)
				res.served[backend]++
				continue
			}
			res.misses++
			c.ReplaceKing(client, assign(r, client, cfg))
			c.SetKingMeta(client, time.Now())
		case p < churnSplit:
			c.RemoveQueen(backendName(r.Intn(cfg.Backends)))
			res.drains++
		default:
			c.RemoveKing(client)
			res.leaves++
		}
	}
}

// assign picks PerClient distinct backends for a client.
func assign(r *rand.Rand, client string, cfg Config) map[string]string {
	m := make(map[string]string, cfg.PerClient)
	for _, i := range r.Perm(cfg.Backends)[:cfg.PerClient] {
		b := backendName(i)
		m[b] = client + "@" + b
	}
	return m
}

// merge folds worker results into one.
func merge(rs []result) result {
	out := result{served: make(map[string]uint64)}
	for _, r := range rs {
		out.ops += r.ops
		out.hits += r.hits
		out.misses += r.misses
		out.drains += r.drains
		out.leaves += r.leaves
		out.removed += r.removed
		out.entries += r.entries
		for b, n := range r.served {
			out.served[b] += n
		}
	}
	return out
}

// spread returns the least and most served backend counts.
func spread(served map[string]uint64) (lo, hi uint64) {
	first := true
	for _, n := range served {
		if first || n < lo {
			lo = n
		}
		if first || n > hi {
			hi = n
		}
		first = false
	}
	return lo, hi
}
