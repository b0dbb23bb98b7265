package transport

import (
	"math/rand"
	"time"
)

// backoffDelay implements the retry schedule: on attempt k (0-indexed),
// sleep min(base << min(k, 6), maxBackoff) * jitter / 100, with jitter
// drawn uniformly from [80, 120]. Shifting is capped at 6 so a long retry
// sequence can't overflow the duration before the min() clamps it anyway.
func backoffDelay(k int, base, maxBackoff time.Duration) time.Duration {
	shift := k
	if shift > 6 {
		shift = 6
	}
	d := base << shift
	if d > maxBackoff || d <= 0 {
		d = maxBackoff
	}
	jitter := 80 + rand.Intn(41) // [80, 120]
	return time.Duration(int64(d) * int64(jitter) / 100)
}
