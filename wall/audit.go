package wall

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// AuditShuffle runs n independent shuffles through newRNG (a factory so
// each run gets an independent stream) and checks that the tile kind of
// each run's first live draw is approximately uniform over the 34 kinds
// (grouped into 8 coarse buckets of keys) via a chi-squared
// goodness-of-fit statistic against the counts a uniform shuffle gives.
// Grounded on zintix-labs-problab's use of gonum for distribution
// sampling in its simulation harness — here repurposed as a one-shot
// statistical self-check for the wall's construction algorithm rather
// than a runtime dependency of dealing itself.
func AuditShuffle(n int, newRNG func() RNG, red RedFiveCounts) (chiSquare float64, err error) {
	if n <= 0 {
		return 0, fmt.Errorf("wall: AuditShuffle needs n > 0, got %d", n)
	}
	const buckets = 8 // coarse buckets over the 34 tile kinds
	bucketWidth := float64(totalTiles) / float64(buckets)
	observed := make([]float64, buckets)

	for i := 0; i < n; i++ {
		w, err := New(newRNG(), red, true, true, true, true)
		if err != nil {
			return 0, err
		}
		// Tracking the fixed tile that started at index 0 of the unshuffled
		// deck is impractical post-shuffle (New does not expose the raw
		// pre-shuffle order); instead sample the kind of the first live
		// draw each run: every kind has 4 of the 136 tiles, so under a
		// correct shuffle each of the 34 kinds is equally likely.
		t, err := w.Draw()
		if err != nil {
			return 0, err
		}
		bucket := int(float64(t.Key()) * float64(buckets) / 34.0)
		if bucket >= buckets {
			bucket = buckets - 1
		}
		observed[bucket]++
		_ = bucketWidth
	}

	expected := make([]float64, buckets)
	for key := 0; key < 34; key++ {
		expected[key*buckets/34] += float64(n) / 34.0 // buckets hold 5 or 4 kinds
	}
	return stat.ChiSquare(observed, expected), nil
}
