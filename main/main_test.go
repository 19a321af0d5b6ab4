package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGenConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("GRAPHGEN_SOURCES", "500")
	t.Setenv("GRAPHGEN_AVG_DEGREE", "7")

	require.NoError(t, statsCmd.Flags().Set("avg-degree", "3.5"))
	require.NoError(t, statsCmd.Flags().Set("seed", "11"))

	cfg, err := loadGenConfig(statsCmd)
	require.NoError(t, err)
	assert.Equal(t, int64(500), cfg.Sources)
	assert.Equal(t, 3.5, cfg.AvgDegree)
	assert.Equal(t, int64(11), cfg.Seed)
}

func TestStatsCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"stats",
		"--sources", "40",
		"--dest-size", "200",
		"--distribution", "uniform",
		"--avg-degree", "4",
		"--edge-label", "Colleagues",
		"--seed", "3",
		"--top", "2",
	})
	require.NoError(t, rootCmd.Execute())

	s := out.String()
	assert.Contains(t, s, "distribution: uniform  seed: 3")
	assert.Contains(t, s, "nodes: 40")
	assert.Contains(t, s, "top 2 targets by in-degree:")
}

func TestStatsCommandRejectsBadConfig(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"stats", "--edge-label", "Friends"})
	assert.Error(t, rootCmd.Execute())
}
