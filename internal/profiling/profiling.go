package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Lightweight per-frame CPU profiler. Totals accumulate between ResetFrame calls.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
)

// Track returns a stop function that records the elapsed time under name.
// Usage: defer profiling.Track("scene.Update")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		mu.Unlock()
	}
}

// ResetFrame clears the current totals. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// SumWithPrefix adds up every total whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, v := range frameTotals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n largest totals of the current frame, slowest first.
// Example: "scene.Update:4.2ms, scene.Render:2.1ms"
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur == list[j].dur {
			return list[i].name < list[j].name
		}
		return list[i].dur > list[j].dur
	})
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		ms := float64(p.dur.Microseconds()) / 1000.0
		parts = append(parts, p.name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms")
	}
	return strings.Join(parts, ", ")
}
