package calculation

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ReportedPercentiles are the percentiles published for final balances and
// for every yearly band.
var ReportedPercentiles = []int{10, 25, 50, 75, 90}

// NearestRank returns the value at index floor(n*p/100) of an ascending
// slice, clamped to the last element. It does not interpolate. An empty
// slice yields zero.
func NearestRank(sorted []float64, p int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := n * p / 100
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

// PercentileSet holds the reported percentiles of one distribution
type PercentileSet struct {
	P10, P25, P50, P75, P90 float64
}

// Percentiles sorts values in place and extracts the reported percentiles
func Percentiles(values []float64) PercentileSet {
	sort.Float64s(values)
	return PercentileSet{
		P10: NearestRank(values, 10),
		P25: NearestRank(values, 25),
		P50: NearestRank(values, 50),
		P75: NearestRank(values, 75),
		P90: NearestRank(values, 90),
	}
}

// At returns the value for one of the reported percentiles
func (ps PercentileSet) At(p int) float64 {
	switch p {
	case 10:
		return ps.P10
	case 25:
		return ps.P25
	case 50:
		return ps.P50
	case 75:
		return ps.P75
	case 90:
		return ps.P90
	}
	return 0
}

// meanStdDev returns the sample mean and standard deviation, with zero
// spread when fewer than two values are present
func meanStdDev(values []float64) (float64, float64) {
	switch len(values) {
	case 0:
		return 0, 0
	case 1:
		return values[0], 0
	}
	return stat.MeanStdDev(values, nil)
}
