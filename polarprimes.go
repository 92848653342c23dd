package polarprimes

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
)

// DefaultCount is the number of primes generated when no count is given.
const DefaultCount = 1000000

// DefaultReportEvery is the progress reporting cadence in accepted primes.
const DefaultReportEvery = 1000

const tau = 2 * math32.Pi

// angleStep is added to the angle accumulator for every candidate tested.
const angleStep = 1

// Config controls prime generation.
type Config struct {
	// Count is the number of primes to generate.
	Count int
	// ReportEvery sets how many accepted primes pass between progress lines.
	// Zero uses DefaultReportEvery.
	ReportEvery int
	// Progress receives progress lines. A nil Progress generates silently.
	Progress io.Writer
	// Clock returns time elapsed since generation started. If nil a wall clock stopwatch is used.
	Clock func() time.Duration
}

// Generate returns the first cfg.Count primes in increasing order along with
// their polar angles. The angle accumulator starts at 1 radian and advances
// one radian, wrapped to [0,2π), for every integer candidate tested, prime or not.
// Prime 2 therefore has angle 2 and in general the angle is the prime's value modulo 2π.
func Generate(cfg Config) (values []int, angles []float32, err error) {
	if cfg.Count < 0 {
		return nil, nil, fmt.Errorf("negative prime count %d", cfg.Count)
	}
	reportEvery := cfg.ReportEvery
	if reportEvery <= 0 {
		reportEvery = DefaultReportEvery
	}
	clock := cfg.Clock
	if clock == nil {
		clock = stopwatch()
	}
	N := cfg.Count
	values = make([]int, 0, N)
	angles = make([]float32, 0, N)
	var theta float32 = angleStep
	candidate := 1
	for len(values) < N {
		candidate++
		theta = math32.Mod(theta+angleStep, tau)
		if !isPrimeByWitnesses(candidate, values) {
			continue
		}
		values = append(values, candidate)
		angles = append(angles, theta)
		if cfg.Progress != nil && len(values)%reportEvery == 0 {
			writeProgress(cfg.Progress, len(values), N, clock())
		}
	}
	return values, angles, nil
}

// isPrimeByWitnesses tests n against the ascending list of all primes smaller than n.
func isPrimeByWitnesses(n int, primes []int) bool {
	root := isqrt(n)
	for _, p := range primes {
		if p > root {
			break
		}
		if n%p == 0 {
			return false
		}
	}
	return true
}

// isqrt returns floor(sqrt(n)) for n >= 0.
func isqrt(n int) int {
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

// Points packs parallel value and angle slices into the instance layout
// consumed by renderers: X is the radius (prime value) and Y the angle.
func Points(values []int, angles []float32) ([]ms2.Vec, error) {
	if len(values) != len(angles) {
		return nil, errors.New("values and angles length mismatch")
	}
	points := make([]ms2.Vec, len(values))
	for i := range points {
		points[i] = ms2.Vec{X: float32(values[i]), Y: angles[i]}
	}
	return points, nil
}

// ReservedBytes returns the bytes held by Generate's output and its packed points for n primes.
func ReservedBytes(n int) int {
	// Prime value, angle and packed point.
	const perPrime = 8 + 4 + 8
	return perPrime * n
}

// IsPrime is a reference primality check.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	} else if n%2 == 0 {
		return n == 2
	}
	for f := 3; f*f <= n; f += 2 {
		if n%f == 0 {
			return false
		}
	}
	return true
}

// Sieve returns the first n primes using a sieve of Eratosthenes.
func Sieve(n int) []int {
	if n <= 0 {
		return nil
	}
	// Upper bound for the n-th prime: n(ln n + ln ln n) holds for n >= 6.
	limit := 15
	if n >= 6 {
		fn := float64(n)
		limit = int(fn*(math.Log(fn)+math.Log(math.Log(fn)))) + 1
	}
	composite := make([]bool, limit+1)
	primes := make([]int, 0, n)
	for i := 2; i <= limit && len(primes) < n; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, i)
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}
	return primes
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
