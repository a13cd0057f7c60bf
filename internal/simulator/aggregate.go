package simulator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of one side's fantasy-point
// samples across a batch.
type Summary struct {
	Trials       int     `json:"trials"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile25 float64 `json:"percentile_25"`
	Percentile75 float64 `json:"percentile_75"`
	Percentile90 float64 `json:"percentile_90"`
}

// HistogramBin is one half-open bucket [Lower, Upper) of a sample
// histogram. The last bin includes its upper bound.
type HistogramBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// BatchSummary is the aggregated, cacheable view of a finished batch:
// both sides' distributions, the empirical win probability, and a
// fixed-width histogram per side.
type BatchSummary struct {
	ID               string         `json:"id"`
	Request          BatchRequest   `json:"request"`
	Seed             int64          `json:"seed"`
	Completed        int            `json:"completed"`
	Failed           int            `json:"failed"`
	Player1WinProb   float64        `json:"player1_win_probability"`
	Player1          Summary        `json:"player1"`
	Player2          Summary        `json:"player2"`
	Player1Histogram []HistogramBin `json:"player1_histogram,omitempty"`
	Player2Histogram []HistogramBin `json:"player2_histogram,omitempty"`
	ExecutionTimeMs  int64          `json:"execution_time_ms"`
}

// Summarize computes the descriptive statistics of a sample set. An
// empty sample yields the zero Summary.
func Summarize(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	summary := Summary{
		Trials:       len(sorted),
		Mean:         stat.Mean(sorted, nil),
		Median:       stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Min:          sorted[0],
		Max:          sorted[len(sorted)-1],
		Percentile25: stat.Quantile(0.25, stat.Empirical, sorted, nil),
		Percentile75: stat.Quantile(0.75, stat.Empirical, sorted, nil),
		Percentile90: stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
	if len(sorted) > 1 {
		summary.StdDev = stat.StdDev(sorted, nil)
	}
	return summary
}

// Histogram buckets the samples into the requested number of
// fixed-width bins spanning [min, max]. Degenerate inputs (no samples,
// or all samples equal) produce a single bin.
func Histogram(samples []float64, bins int) []HistogramBin {
	if len(samples) == 0 {
		return nil
	}
	if bins < 1 {
		bins = 1
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	min := sorted[0]
	max := sorted[len(sorted)-1]
	if min == max {
		return []HistogramBin{{Lower: min, Upper: max, Count: len(sorted)}}
	}

	dividers := make([]float64, bins+1)
	width := (max - min) / float64(bins)
	for i := range dividers {
		dividers[i] = min + width*float64(i)
	}
	// stat.Histogram buckets half-open intervals; nudge the last divider
	// past max so the maximum sample lands in the final bin.
	dividers[bins] = math.Nextafter(max, math.Inf(1))

	counts := stat.Histogram(nil, dividers, sorted, nil)

	result := make([]HistogramBin, bins)
	for i := 0; i < bins; i++ {
		result[i] = HistogramBin{
			Lower: dividers[i],
			Upper: min + width*float64(i+1),
			Count: int(math.Round(counts[i])),
		}
	}
	result[bins-1].Upper = max
	return result
}

// Summarize builds the aggregated view of a finished batch, including
// per-side histograms with the given bin count.
func (b *BatchResult) Summarize(histogramBins int) *BatchSummary {
	summary := &BatchSummary{
		ID:              b.ID,
		Request:         b.Request,
		Seed:            b.Seed,
		Completed:       b.Completed,
		Failed:          b.Failed,
		Player1:         Summarize(b.Player1Points),
		Player2:         Summarize(b.Player2Points),
		ExecutionTimeMs: b.ExecutionTime.Milliseconds(),
	}
	if b.Completed > 0 {
		summary.Player1WinProb = float64(b.Player1Wins) / float64(b.Completed)
	}
	if histogramBins > 0 {
		summary.Player1Histogram = Histogram(b.Player1Points, histogramBins)
		summary.Player2Histogram = Histogram(b.Player2Points, histogramBins)
	}
	return summary
}
