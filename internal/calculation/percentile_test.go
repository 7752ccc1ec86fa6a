package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNearestRank(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	tests := []struct {
		p        int
		expected float64
	}{
		{0, 1},
		{10, 2},
		{25, 3},
		{50, 6},
		{75, 8},
		{90, 10},
		{100, 10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, NearestRank(sorted, tt.p), "p%d", tt.p)
	}
}

func TestNearestRank_Small(t *testing.T) {
	assert.Equal(t, 0.0, NearestRank(nil, 50))
	assert.Equal(t, 42.0, NearestRank([]float64{42}, 90))
	assert.Equal(t, 7.0, NearestRank([]float64{3, 7}, 50))
}

func TestPercentiles_SortsAndOrders(t *testing.T) {
	values := []float64{9, 1, 8, 2, 7, 3, 6, 4, 5, 0}
	ps := Percentiles(values)

	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, values)
	assert.Equal(t, 1.0, ps.P10)
	assert.Equal(t, 5.0, ps.P50)
	assert.Equal(t, 9.0, ps.P90)
	assert.LessOrEqual(t, ps.P10, ps.P25)
	assert.LessOrEqual(t, ps.P25, ps.P50)
	assert.LessOrEqual(t, ps.P50, ps.P75)
	assert.LessOrEqual(t, ps.P75, ps.P90)
	assert.Equal(t, ps.P75, ps.At(75))
	assert.Equal(t, 0.0, ps.At(33))
}

func TestMeanStdDev(t *testing.T) {
	m, sd := meanStdDev(nil)
	assert.Equal(t, 0.0, m)
	assert.Equal(t, 0.0, sd)

	m, sd = meanStdDev([]float64{5})
	assert.Equal(t, 5.0, m)
	assert.Equal(t, 0.0, sd)

	m, sd = meanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5.0, m, 1e-12)
	assert.InDelta(t, 2.138, sd, 1e-3)
}
