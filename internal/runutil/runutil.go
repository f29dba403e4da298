// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"runtime"
)

// EffectiveWorkers maps 0 (or negative) to all CPUs.
func EffectiveWorkers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ValidateBatch checks the sample fan-out against the host and returns
// (workers, warnings). Rules:
//   - workers <= 0 → all CPUs
//   - more workers than samples → clamp to the sample count
//   - workers × search threads above the CPU count → warn (still allowed)
func ValidateBatch(workers, searchThreads, samples, cpus int) (int, []string) {
	var warns []string
	if workers <= 0 {
		workers = cpus
	}
	if samples > 0 && workers > samples {
		workers = samples
	}
	if searchThreads > 0 && workers*searchThreads > cpus {
		warns = append(warns, fmt.Sprintf(
			"%d workers × %d search threads oversubscribes %d CPUs",
			workers, searchThreads, cpus))
	}
	return workers, warns
}
