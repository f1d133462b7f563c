package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screening-backend/internal/profile"
)

func strongBackendResume() profile.ResumeProfile {
	team := 6
	return profile.ResumeProfile{
		SkillsByCategory: map[profile.Category][]profile.CandidateSkill{
			profile.CategoryProgrammingLanguages: {
				{Name: "Python", Proficiency: profile.ProficiencyExpert, YearsExperience: 6},
				{Name: "Go", Proficiency: profile.ProficiencyAdvanced, YearsExperience: 3},
			},
			profile.CategoryDatabases: {
				{Name: "PostgreSQL", Proficiency: profile.ProficiencyAdvanced, YearsExperience: 5},
			},
			profile.CategoryWebFrameworks: {
				{Name: "Django", Proficiency: profile.ProficiencyAdvanced, YearsExperience: 4},
			},
			profile.CategoryCloudPlatforms: {
				{Name: "AWS", Proficiency: profile.ProficiencyIntermediate, YearsExperience: 3},
			},
			profile.CategoryVersionControl: {
				{Name: "Git", Proficiency: profile.ProficiencyAdvanced, YearsExperience: 6},
			},
		},
		Experience: profile.ExperienceAnalysis{TotalYears: 8, RelevantYears: 7},
		WorkHistory: []profile.WorkEntry{
			{
				Company:        "Acme",
				Title:          "Senior Backend Engineer",
				StartDate:      "2021-03",
				EndDate:        "present",
				DurationMonths: 48,
				KeyAchievements: []string{
					"Led a team of 6 engineers",
					"Reduced API latency by 45%",
				},
				TeamSize: &team,
			},
			{
				Company:        "Initech",
				Title:          "Backend Engineer",
				StartDate:      "2017-06",
				EndDate:        "2021-02",
				DurationMonths: 44,
			},
		},
		Education: profile.Education{
			Degrees: []profile.Degree{{Level: "Bachelor's", Field: "Computer Science"}},
		},
	}
}

func backendJob() profile.JobProfile {
	minimum := 5.0
	return profile.JobProfile{
		Title:   "Senior Backend Engineer",
		Summary: "Design and operate APIs, server components and SQL databases.",
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryProgrammingLanguages: {"Python"},
			profile.CategoryDatabases:            {"PostgreSQL"},
			profile.CategoryWebFrameworks:        {"Django"},
		},
		PreferredSkills: map[profile.Category][]string{
			profile.CategoryCloudPlatforms: {"AWS"},
		},
		MinimumExperience: &minimum,
		Education: profile.EducationRequirements{
			RequiredDegree: "Bachelor's",
			FieldOfStudy:   []string{"Computer Science"},
		},
	}
}

func TestScoreOneStrongCandidate(t *testing.T) {
	result := ScoreOne(strongBackendResume(), backendJob())

	assert.Equal(t, RoleBackend, result.DetectedRole)
	assert.GreaterOrEqual(t, result.OverallScore, 75.0)
	assert.LessOrEqual(t, result.OverallScore, 100.0)
	assert.Equal(t, 0.0, result.RedFlagPenalty)
	assert.Contains(t, []string{"exceptional", "strong"}, result.Recommendation.Tier)
}

func TestScoreOneIsIdempotent(t *testing.T) {
	resume, job := strongBackendResume(), backendJob()

	first := ScoreOne(resume, job)
	second := ScoreOne(resume, job)

	assert.Equal(t, first, second)
}

func TestScoreOneAlwaysInRange(t *testing.T) {
	cases := []struct {
		name   string
		resume profile.ResumeProfile
		job    profile.JobProfile
	}{
		{"empty both", profile.ResumeProfile{}, profile.JobProfile{}},
		{"fallback resume", profile.FallbackResumeProfile(), backendJob()},
		{"fallback job", strongBackendResume(), profile.FallbackJobProfile()},
		{"strong pair", strongBackendResume(), backendJob()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := ScoreOne(tc.resume, tc.job)
			assert.GreaterOrEqual(t, result.OverallScore, 0.0)
			assert.LessOrEqual(t, result.OverallScore, 100.0)
		})
	}
}

func TestScoreOneRedFlagPenaltyIsMultiplicative(t *testing.T) {
	resume := strongBackendResume()
	resume.WorkHistory = shortStints(4, 5)
	job := backendJob()

	result := ScoreOne(resume, job)

	require.Equal(t, jobHoppingPenalty, result.RedFlagPenalty)
	weights := normalizedPillarWeights(result.DetectedRole)
	weighted := result.Breakdown.RequiredSkills*weights.RequiredSkills +
		result.Breakdown.ExperienceLevel*weights.ExperienceLevel +
		result.Breakdown.Education*weights.Education +
		result.Breakdown.AdditionalQualifications*weights.AdditionalQualifications
	assert.InDelta(t, round2(weighted*(1-jobHoppingPenalty)), result.OverallScore, 1e-9)
}

func TestScoreOneFallbackProfilesStillScore(t *testing.T) {
	result := ScoreOne(profile.FallbackResumeProfile(), backendJob())

	assert.Equal(t, "weak", result.Recommendation.Tier)
	assert.NotEmpty(t, result.Skills.Missing)
}

func TestNormalizedPillarWeightsSumToOne(t *testing.T) {
	for role := range pillarAdjustments {
		w := normalizedPillarWeights(role)
		sum := w.RequiredSkills + w.ExperienceLevel + w.Education + w.AdditionalQualifications
		assert.InDelta(t, 1.0, sum, 1e-6, "role %s", role)
	}
}

func TestRecommendTiers(t *testing.T) {
	cases := map[float64]string{
		95: "exceptional",
		90: "exceptional",
		80: "strong",
		75: "strong",
		65: "good",
		50: "moderate",
		30: "weak",
	}
	for score, tier := range cases {
		assert.Equal(t, tier, recommend(score).Tier, "score=%v", score)
	}
}
