package scoring

import "screening-backend/internal/profile"

// Methodology describes the scoring configuration so API clients can see how
// scores are assembled. Everything here mirrors the package-level tables.
func Methodology() map[string]any {
	roles := make(map[string]any, len(pillarAdjustments))
	for role := range pillarAdjustments {
		weights := normalizedPillarWeights(role)
		roles[string(role)] = map[string]any{
			"required_skills":           round2(weights.RequiredSkills * 100),
			"experience_level":          round2(weights.ExperienceLevel * 100),
			"education":                 round2(weights.Education * 100),
			"additional_qualifications": round2(weights.AdditionalQualifications * 100),
		}
	}

	categories := make(map[string]any, len(categoryWeights))
	for role, weights := range categoryWeights {
		byCategory := make(map[string]float64, len(weights))
		for category, weight := range weights {
			byCategory[string(category)] = weight
		}
		categories[string(role)] = byCategory
	}

	return map[string]any{
		"pillar_weights": map[string]any{
			"base": map[string]float64{
				"required_skills":           basePillarWeights.RequiredSkills,
				"experience_level":          basePillarWeights.ExperienceLevel,
				"education":                 basePillarWeights.Education,
				"additional_qualifications": basePillarWeights.AdditionalQualifications,
			},
			"by_role": roles,
		},
		"category_weights": categories,
		"match_multipliers": map[string]float64{
			"exact":   exactMultiplier,
			"synonym": synonymMultiplier,
			"related": relatedMultiplier,
		},
		"proficiency_base": map[string]float64{
			"expert":       proficiencyBase[profile.ProficiencyExpert],
			"advanced":     proficiencyBase[profile.ProficiencyAdvanced],
			"intermediate": proficiencyBase[profile.ProficiencyIntermediate],
			"beginner":     proficiencyBase[profile.ProficiencyBeginner],
		},
		"red_flag_penalties": map[string]float64{
			"job_hopping":        jobHoppingPenalty,
			"employment_gap":     employmentGapPenalty,
			"over_qualification": overQualificationPenalty,
			"ceiling":            redFlagPenaltyCeiling,
		},
		"recommendation_thresholds": map[string]float64{
			"exceptional": exceptionalThreshold,
			"strong":      strongThreshold,
			"good":        goodThreshold,
			"moderate":    moderateThreshold,
		},
	}
}
