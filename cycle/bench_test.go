package cycle

import (
	"strconv"
	"testing"
)

// benchmarkNext rotates a warm chain of the given size.
func benchmarkNext(b *testing.B, size int) {
	c := New[int, struct{}](Options[int]{Capacity: size})
	for i := 0; i < size; i++ {
		c.Insert("client", "backend-"+strconv.Itoa(i), i)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.NextKing("client")
	}
}

func BenchmarkCycle_Next_8(b *testing.B)    { benchmarkNext(b, 8) }
func BenchmarkCycle_Next_1024(b *testing.B) { benchmarkNext(b, 1024) }

// BenchmarkCycle_ReplaceKing alternates between two overlapping backend
// sets so every call updates, removes and inserts entries.
func BenchmarkCycle_ReplaceKing(b *testing.B) {
	c := New[int, struct{}](Options[int]{Capacity: 64})
	sets := [2]map[string]int{{}, {}}
	for i := 0; i < 32; i++ {
		sets[0]["backend-"+strconv.Itoa(i)] = i
		sets[1]["backend-"+strconv.Itoa(i+16)] = i
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.ReplaceKing("client", sets[i&1])
	}
}

// BenchmarkCycle_InsertRemove measures the insert/bulk-remove churn with
// slot recycling.
func BenchmarkCycle_InsertRemove(b *testing.B) {
	c := New[int, struct{}](Options[int]{Capacity: 16})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Insert("client", "a", i).Insert("client", "b", i)
		c.RemoveKing("client")
	}
}
