package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jon5th5n/neuralcellularautomata/internal/config"
)

func smallBase() *config.Config {
	base := config.Default()
	base.Grid.Width, base.Grid.Height = 16, 16
	return base
}

func TestBuildScenariosClampsAndDedupes(t *testing.T) {
	sets, err := buildScenarios(smallBase(), []string{"pathways", " waves"}, []float32{-0.5, 0, 0.5})
	require.NoError(t, err)

	// Centers past 1 clamp and collapse onto the existing 1.
	waves := float32(0.627)
	assert.Equal(t, []scenario{
		{Preset: "pathways", Center: 0.5},
		{Preset: "pathways", Center: 1},
		{Preset: "waves", Center: waves - 0.5},
		{Preset: "waves", Center: waves},
		{Preset: "waves", Center: 1},
	}, sets)

	_, err = buildScenarios(smallBase(), []string{"lenia"}, []float32{0})
	assert.Error(t, err)
}

func TestSweepRanksAllScenarios(t *testing.T) {
	base := smallBase()
	sets, err := buildScenarios(base, []string{"waves", "worms"}, []float32{-0.1, 0, 0.1})
	require.NoError(t, err)

	results := sweep(base, sets, 5, 3)
	require.Len(t, results, len(sets))
	for i, res := range results {
		assert.Empty(t, res.Err)
		if i > 0 {
			assert.GreaterOrEqual(t, results[i-1].StdDev, res.StdDev)
		}
	}

	// Same inputs, same ranking regardless of worker count.
	assert.Equal(t, results, sweep(base, sets, 5, 1))
}

func TestParseOffsets(t *testing.T) {
	got, err := parseOffsets("-0.1, 0,0.25")
	require.NoError(t, err)
	assert.Equal(t, []float32{-0.1, 0, 0.25}, got)

	_, err = parseOffsets("a")
	assert.Error(t, err)
}
