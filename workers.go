package rep2html

import "runtime"

// Worker count bounds.
const (
	// MinWorkers ensures at least one document is converted at a time.
	MinWorkers = 1

	// MaxWorkers caps automatic sizing; conversion is CPU bound and pages are small.
	MaxWorkers = 8
)

// ResolveWorkers determines how many documents a batch converts in parallel.
// An explicit positive count wins; otherwise GOMAXPROCS (container-aware
// once automaxprocs has run) is clamped to [MinWorkers, MaxWorkers].
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return workers
	}
	return min(max(runtime.GOMAXPROCS(0), MinWorkers), MaxWorkers)
}
