package agent

import "encoding/json"

// analysisSkills is the only typed window into the otherwise opaque analysis
// document: the fields downstream prompts actually read.
type analysisSkills struct {
	CurrentSkills []string `json:"current_skills"`
	SkillGaps     []string `json:"skill_gaps"`
}

// SkillsFrom extracts current skills and skill gaps from an analysis
// payload. Unparseable payloads yield empty slices, never an error.
func SkillsFrom(analysis json.RawMessage) (current []string, gaps []string) {
	var parsed analysisSkills
	if err := json.Unmarshal(analysis, &parsed); err != nil {
		return nil, nil
	}
	return parsed.CurrentSkills, parsed.SkillGaps
}
