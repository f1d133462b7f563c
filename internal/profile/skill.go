package profile

import "strings"

// Proficiency is the ordinal skill-strength label reported by extraction.
type Proficiency string

const (
	ProficiencyExpert       Proficiency = "expert"
	ProficiencyAdvanced     Proficiency = "advanced"
	ProficiencyIntermediate Proficiency = "intermediate"
	ProficiencyBeginner     Proficiency = "beginner"
)

// ParseProficiency normalizes a raw proficiency string, defaulting to
// intermediate when the value is missing or unrecognized.
func ParseProficiency(raw string) Proficiency {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "expert":
		return ProficiencyExpert
	case "advanced":
		return ProficiencyAdvanced
	case "intermediate":
		return ProficiencyIntermediate
	case "beginner", "basic", "novice":
		return ProficiencyBeginner
	default:
		return ProficiencyIntermediate
	}
}

// Rank orders proficiencies: beginner < intermediate < advanced < expert.
func (p Proficiency) Rank() int {
	switch p {
	case ProficiencyExpert:
		return 4
	case ProficiencyAdvanced:
		return 3
	case ProficiencyIntermediate:
		return 2
	case ProficiencyBeginner:
		return 1
	default:
		return 2
	}
}

// CandidateSkill is a single declared skill with proficiency and tenure.
type CandidateSkill struct {
	Name            string      `json:"name"`
	Proficiency     Proficiency `json:"proficiency"`
	YearsExperience float64     `json:"years_experience"`
}
