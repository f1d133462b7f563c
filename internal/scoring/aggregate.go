package scoring

import (
	"math"

	"screening-backend/internal/profile"
)

// Breakdown holds the four pillar scores before red-flag adjustment.
type Breakdown struct {
	RequiredSkills           float64 `json:"required_skills"`
	ExperienceLevel          float64 `json:"experience_level"`
	Education                float64 `json:"education"`
	AdditionalQualifications float64 `json:"additional_qualifications"`
}

// Recommendation is the tiered verdict derived from the overall score.
type Recommendation struct {
	Tier  string `json:"tier"`
	Label string `json:"label"`
}

// ScoreResult is the complete outcome of scoring one resume against one job.
type ScoreResult struct {
	OverallScore   float64          `json:"overall_score"`
	Breakdown      Breakdown        `json:"score_breakdown"`
	Recommendation Recommendation   `json:"recommendation"`
	RedFlagPenalty float64          `json:"red_flag_penalty"`
	RedFlags       []RedFlag        `json:"red_flags,omitempty"`
	RiskLevel      string           `json:"risk_level"`
	DetectedRole   RoleArchetype    `json:"detected_role"`
	Skills         SkillMatchReport `json:"skills"`
	Experience     ExperienceReport `json:"experience"`
	Education      EducationReport  `json:"education"`
}

// ScoreOne runs the full pipeline for one resume/job pair: classify the
// role, score the four pillars, detect red flags, and aggregate. It is a
// pure function; identical inputs always produce identical results.
func ScoreOne(resume profile.ResumeProfile, job profile.JobProfile) ScoreResult {
	role := ClassifyRole(job)

	skills := MatchSkills(resume, job, role)
	experience := ScoreExperience(resume, job)
	education := ScoreEducation(resume, job)
	additional := scoreAdditional(resume, job, role)
	redFlags := DetectRedFlags(resume, job)

	breakdown := Breakdown{
		RequiredSkills:           round2(skills.OverallScore),
		ExperienceLevel:          round2(experience.Score),
		Education:                round2(education.Score),
		AdditionalQualifications: round2(additional),
	}

	weights := normalizedPillarWeights(role)
	weighted := breakdown.RequiredSkills*weights.RequiredSkills +
		breakdown.ExperienceLevel*weights.ExperienceLevel +
		breakdown.Education*weights.Education +
		breakdown.AdditionalQualifications*weights.AdditionalQualifications

	overall := clamp(weighted*(1-redFlags.TotalPenalty), 0, 100)
	overall = round2(overall)

	return ScoreResult{
		OverallScore:   overall,
		Breakdown:      breakdown,
		Recommendation: recommend(overall),
		RedFlagPenalty: redFlags.TotalPenalty,
		RedFlags:       redFlags.Flags,
		RiskLevel:      redFlags.RiskLevel,
		DetectedRole:   role,
		Skills:         skills,
		Experience:     experience,
		Education:      education,
	}
}

// scoreAdditional scores the preferred-skills pillar by running the matcher
// over the job's preferred set. A job that states no preferences gets a
// neutral score rather than free full marks.
func scoreAdditional(resume profile.ResumeProfile, job profile.JobProfile, role RoleArchetype) float64 {
	if !job.HasPreferred() {
		return 70
	}
	preferredAsRequired := profile.JobProfile{RequiredSkills: job.PreferredSkills}
	report := MatchSkills(resume, preferredAsRequired, role)
	return report.OverallScore
}

// normalizedPillarWeights applies the archetype's pillar multipliers to the
// base weights and rescales them to sum to 1.
func normalizedPillarWeights(role RoleArchetype) pillarWeights {
	adj, ok := pillarAdjustments[role]
	if !ok {
		adj = pillarAdjustments[RoleGeneral]
	}
	w := pillarWeights{
		RequiredSkills:           basePillarWeights.RequiredSkills * adj.RequiredSkills,
		ExperienceLevel:          basePillarWeights.ExperienceLevel * adj.ExperienceLevel,
		Education:                basePillarWeights.Education * adj.Education,
		AdditionalQualifications: basePillarWeights.AdditionalQualifications * adj.AdditionalQualifications,
	}
	sum := w.RequiredSkills + w.ExperienceLevel + w.Education + w.AdditionalQualifications
	if sum <= 0 {
		return basePillarWeights
	}
	w.RequiredSkills /= sum
	w.ExperienceLevel /= sum
	w.Education /= sum
	w.AdditionalQualifications /= sum
	return w
}

func recommend(score float64) Recommendation {
	switch {
	case score >= exceptionalThreshold:
		return Recommendation{Tier: "exceptional", Label: "Exceptional match - interview immediately"}
	case score >= strongThreshold:
		return Recommendation{Tier: "strong", Label: "Strong match - high priority"}
	case score >= goodThreshold:
		return Recommendation{Tier: "good", Label: "Good match - worth considering"}
	case score >= moderateThreshold:
		return Recommendation{Tier: "moderate", Label: "Moderate match - review carefully"}
	default:
		return Recommendation{Tier: "weak", Label: "Weak match - not recommended"}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
