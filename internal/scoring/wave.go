// internal/scoring/wave.go
package scoring

// WaveBucket partitions roles into transformation-execution cohorts.
type WaveBucket string

const (
	Wave1    WaveBucket = "wave1"    // automate now, months 1-6
	Wave2    WaveBucket = "wave2"    // augment, months 7-12
	Retained WaveBucket = "retained" // human-critical, ongoing
)

// Wave buckets a role by its current composite score. Band lower bounds are
// inclusive: exactly 65 is Wave 1, exactly 40 is Wave 2.
func Wave(nowScore int) WaveBucket {
	switch {
	case nowScore >= 65:
		return Wave1
	case nowScore >= 40:
		return Wave2
	default:
		return Retained
	}
}
