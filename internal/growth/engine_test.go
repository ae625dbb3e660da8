package growth_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PrajithS20/SENTINEL/internal/growth"
	"github.com/PrajithS20/SENTINEL/internal/model"
)

func project(current, total int) model.Project {
	return model.Project{CurrentPhase: current, TotalPhases: total}
}

func TestCompletedPhases(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    int
	}{
		{"fresh project", 1, 6, 0},
		{"mid project", 4, 6, 3},
		{"last phase active", 6, 6, 5},
		{"complete", 7, 6, 6},
		{"cursor far past end", 99, 6, 6},
		{"zero total falls back to six", 4, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, growth.CompletedPhases(tt.current, tt.total))
		})
	}
}

func TestIsComplete(t *testing.T) {
	require.False(t, growth.IsComplete(6, 6))
	require.True(t, growth.IsComplete(7, 6))
	require.False(t, growth.IsComplete(1, 0))
	require.True(t, growth.IsComplete(7, 0))
}

func TestTrees(t *testing.T) {
	// One complete six-phase project: 1 for completion + 6/6 phases.
	require.Equal(t, 2, growth.Trees([]model.Project{project(7, 6)}))

	// Three phases done across two projects: no full tree yet.
	require.Equal(t, 0, growth.Trees([]model.Project{project(2, 6), project(3, 6)}))

	require.Equal(t, 0, growth.Trees(nil))
}

func TestStage(t *testing.T) {
	tests := []struct {
		trees int
		want  string
	}{
		{0, growth.StageSprout},
		{4, growth.StageSprout},
		{5, growth.StageGroveGuardian},
		{14, growth.StageGroveGuardian},
		{15, growth.StageForestRanger},
		{29, growth.StageForestRanger},
		{30, growth.StageTerraformer},
		{49, growth.StageTerraformer},
		{50, growth.StageGaiasLegacy},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, growth.Stage(tt.trees), "trees=%d", tt.trees)
	}
}

func TestStageFor(t *testing.T) {
	// One project on phase 4 of 6: three completed phases, zero trees.
	require.Equal(t, growth.StageSprout, growth.StageFor([]model.Project{project(4, 6)}))

	// Five complete six-phase projects: 5 completions + 30/6 = 10 trees.
	var five []model.Project
	for i := 0; i < 5; i++ {
		five = append(five, project(7, 6))
	}
	require.Equal(t, growth.StageGroveGuardian, growth.StageFor(five))
}
