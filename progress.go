package polarprimes

import (
	"fmt"
	"io"
	"math"
	"time"
)

// EstimateRemaining extrapolates the time left to find target primes after
// found primes took elapsed, assuming generation cost grows as n^1.5.
func EstimateRemaining(elapsed time.Duration, found, target int) time.Duration {
	if found <= 0 || target <= found {
		return 0
	}
	scale := nsqrtn(target) / nsqrtn(found)
	total := time.Duration(float64(elapsed) * scale)
	return total - elapsed
}

func nsqrtn(n int) float64 {
	fn := float64(n)
	return fn * math.Sqrt(fn)
}

func writeProgress(w io.Writer, found, target int, elapsed time.Duration) {
	remaining := EstimateRemaining(elapsed, found, target)
	pct := 100 * float32(found) / float32(target)
	fmt.Fprintf(w, "\r%d / %d (%.2f%%) primes calculated. %.2fs elapsed %.2fs remaining.",
		found, target, pct, elapsed.Seconds(), remaining.Seconds())
}
