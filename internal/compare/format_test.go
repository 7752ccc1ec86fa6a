package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(createTestComparisonSet())

	assert.Contains(t, out, "RETIREMENT PLAN COMPARISON")
	assert.Contains(t, out, "Base Plan:     Base Plan")
	assert.Contains(t, out, "Configuration: plan.yaml")
	assert.Contains(t, out, "Simulations:   1000 (seed 42)")
	assert.Contains(t, out, "Base Plan (base)")
	assert.Contains(t, out, "72.5%")
	assert.Contains(t, out, "age 84")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "COMPARISON TO BASE")
	assert.Contains(t, out, "Success:          +8.5 points")
	assert.Contains(t, out, "Success:          -2.5 points")
	assert.Contains(t, out, "Median Final:     +$150.0K (33.3%)")
	assert.Contains(t, out, "Median Final:     -$20.0K (-4.4%)")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestTableFormatter_FormatDecimal(t *testing.T) {
	tf := &TableFormatter{}
	set := createTestComparisonSet()

	assert.Equal(t, "450.0K", tf.formatDecimal(set.BaseResult.MedianOutcome))
	assert.Equal(t, "1.80M", tf.formatDecimal(set.BaseResult.Percentile90Outcome))
	assert.Equal(t, "0", tf.formatDecimal(set.BaseResult.Percentile10Outcome))
}

func TestTableFormatter_Truncate(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(createTestComparisonSet())
	assert.Equal(t, "Base: Base Plan (72.5%) | save_500_more: +8.5pt | replace_70pct: -2.5pt", out)
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(createTestComparisonSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"Base Plan", "base", "65", "800.00", "72.50", "450000.00", "0.00", "1800000.00", "84", "0.00", "0.00", "0.00"}, records[1])
	assert.Equal(t, "save_500_more", records[2][0])
	assert.Equal(t, "alternative", records[2][1])
	assert.Equal(t, "", records[2][8])
	assert.Equal(t, "8.50", records[2][9])
	assert.Equal(t, "33.33", records[2][11])
}

func TestJSONFormatter_Format(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		out, err := (&JSONFormatter{Pretty: pretty}).Format(createTestComparisonSet())
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &decoded))
		assert.Equal(t, "Base Plan", decoded["baseScenarioName"])
		assert.Len(t, decoded["alternativeResults"], 2)
		assert.Equal(t, pretty, strings.Contains(out, "\n  "))
	}
}
