// Package growth derives a user's progression stage from the phase state of
// their projects. The computation is pure: persistence of the resulting
// stage is the caller's job.
package growth

import "github.com/PrajithS20/SENTINEL/internal/model"

// defaultPhaseCount stands in for projects whose curriculum was never
// generated; it keeps the tree formula meaningful for an empty phase list.
const defaultPhaseCount = 6

const phasesPerTree = 6

const (
	StageSprout        = "Sprout"
	StageGroveGuardian = "Grove Guardian"
	StageForestRanger  = "Forest Ranger"
	StageTerraformer   = "Terraformer"
	StageGaiasLegacy   = "Gaia's Legacy"
)

// CompletedPhases reports how many phases of a project are behind the
// cursor. A cursor past the last phase means every phase is complete.
func CompletedPhases(currentPhase, totalPhases int) int {
	if totalPhases <= 0 {
		totalPhases = defaultPhaseCount
	}
	if currentPhase > totalPhases {
		return totalPhases
	}
	return currentPhase - 1
}

// IsComplete reports whether the cursor has moved past the final phase.
func IsComplete(currentPhase, totalPhases int) bool {
	if totalPhases <= 0 {
		totalPhases = defaultPhaseCount
	}
	return currentPhase > totalPhases
}

// Trees counts one tree per fully completed project plus one tree per six
// completed phases across the whole set (integer floor).
func Trees(projects []model.Project) int {
	completedProjects := 0
	completedPhases := 0

	for _, p := range projects {
		if IsComplete(p.CurrentPhase, p.TotalPhases) {
			completedProjects++
		}
		completedPhases += CompletedPhases(p.CurrentPhase, p.TotalPhases)
	}

	return completedProjects + completedPhases/phasesPerTree
}

// Stage maps a tree count onto the named progression tiers.
func Stage(trees int) string {
	switch {
	case trees < 5:
		return StageSprout
	case trees < 15:
		return StageGroveGuardian
	case trees < 30:
		return StageForestRanger
	case trees < 50:
		return StageTerraformer
	default:
		return StageGaiasLegacy
	}
}

// StageFor is the full rescan: always recomputed from every project rather
// than incrementally, trading a few extra rows for correctness.
func StageFor(projects []model.Project) string {
	return Stage(Trees(projects))
}
