package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screening-backend/internal/profile"
)

func resumeWithSkills(skills map[profile.Category][]profile.CandidateSkill) profile.ResumeProfile {
	r := profile.FallbackResumeProfile()
	for c, list := range skills {
		r.SkillsByCategory[c] = list
	}
	return r
}

func TestMatchSkillsExactMatchFullMarks(t *testing.T) {
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryProgrammingLanguages: {"python"},
		},
	}
	resume := resumeWithSkills(map[profile.Category][]profile.CandidateSkill{
		profile.CategoryProgrammingLanguages: {
			{Name: "python", Proficiency: profile.ProficiencyExpert, YearsExperience: 5},
		},
	})

	report := MatchSkills(resume, job, RoleBackend)

	// (100 base + 10 years bonus) * 1.0 clamps to 100.
	assert.Equal(t, 100.0, report.CategoryScores[profile.CategoryProgrammingLanguages])
	require.Len(t, report.Matches, 1)
	assert.Equal(t, MatchExact, report.Matches[0].MatchType)
	assert.Equal(t, 100.0, report.Matches[0].Score)
	assert.Empty(t, report.Missing)
}

func TestMatchSkillsSynonymMatch(t *testing.T) {
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryProgrammingLanguages: {"js"},
		},
	}
	resume := resumeWithSkills(map[profile.Category][]profile.CandidateSkill{
		profile.CategoryProgrammingLanguages: {
			{Name: "JavaScript", Proficiency: profile.ProficiencyIntermediate},
		},
	})

	report := MatchSkills(resume, job, RoleBackend)

	require.Len(t, report.Matches, 1)
	assert.Equal(t, MatchSynonym, report.Matches[0].MatchType)
	// (80 + 0) * 0.95
	assert.InDelta(t, 76.0, report.Matches[0].Score, 1e-9)
	assert.InDelta(t, 76.0, report.CategoryScores[profile.CategoryProgrammingLanguages], 1e-9)
}

func TestMatchSkillsRelatedMatch(t *testing.T) {
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryDatabases: {"PostgreSQL"},
		},
	}
	resume := resumeWithSkills(map[profile.Category][]profile.CandidateSkill{
		profile.CategoryDatabases: {
			{Name: "MySQL", Proficiency: profile.ProficiencyAdvanced, YearsExperience: 2},
		},
	})

	report := MatchSkills(resume, job, RoleBackend)

	require.Len(t, report.Matches, 1)
	assert.Equal(t, MatchRelated, report.Matches[0].MatchType)
	// (90 + 4) * 0.85
	assert.InDelta(t, 79.9, report.Matches[0].Score, 1e-9)
}

func TestMatchSkillsEmptyRequirementGivesFullMarks(t *testing.T) {
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryProgrammingLanguages: {"python"},
		},
	}
	resume := profile.FallbackResumeProfile()

	report := MatchSkills(resume, job, RoleBackend)

	// Nothing demanded in databases: full marks, no penalty.
	assert.Equal(t, 100.0, report.CategoryScores[profile.CategoryDatabases])
}

func TestMatchSkillsCriticalCategoryZeroCredit(t *testing.T) {
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryProgrammingLanguages: {"python", "java"},
		},
	}
	resume := resumeWithSkills(map[profile.Category][]profile.CandidateSkill{
		profile.CategorySoftSkills: {
			{Name: "communication", Proficiency: profile.ProficiencyAdvanced},
		},
	})

	report := MatchSkills(resume, job, RoleBackend)

	assert.Equal(t, 0.0, report.CategoryScores[profile.CategoryProgrammingLanguages])
	require.Len(t, report.Missing, 2)
	for _, m := range report.Missing {
		assert.True(t, m.Critical, "missing %q should be critical", m.Name)
		assert.Equal(t, profile.CategoryProgrammingLanguages, m.Category)
	}
}

func TestMatchSkillsImportantCategoryFloor(t *testing.T) {
	// web_frameworks carries weight 0.15 for backend: important tier.
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryWebFrameworks: {"Django"},
		},
	}
	resume := profile.FallbackResumeProfile()

	report := MatchSkills(resume, job, RoleBackend)

	assert.Equal(t, importantCategoryFloor, report.CategoryScores[profile.CategoryWebFrameworks])
}

func TestMatchSkillsOptionalCategoryFloor(t *testing.T) {
	// devops_tools carries weight 0.05 for backend: optional tier.
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryDevOpsTools: {"Jenkins"},
		},
	}
	resume := profile.FallbackResumeProfile()

	report := MatchSkills(resume, job, RoleBackend)

	assert.Equal(t, optionalCategoryFloor, report.CategoryScores[profile.CategoryDevOpsTools])
}

func TestMatchSkillsUnmatchedCriticalSkillFlagged(t *testing.T) {
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryDevOpsTools: {"Docker", "Jenkins"},
		},
	}
	resume := resumeWithSkills(map[profile.Category][]profile.CandidateSkill{
		profile.CategoryDevOpsTools: {
			{Name: "Terraform", Proficiency: profile.ProficiencyIntermediate},
		},
	})

	report := MatchSkills(resume, job, RoleDevOps)

	var docker, jenkins *MissingSkill
	for i := range report.Missing {
		switch report.Missing[i].Name {
		case "Docker":
			docker = &report.Missing[i]
		case "Jenkins":
			jenkins = &report.Missing[i]
		}
	}
	require.NotNil(t, docker)
	assert.True(t, docker.Critical)
	require.NotNil(t, jenkins)
	assert.False(t, jenkins.Critical)
}

func TestMatchSkillsCrossCategoryFallback(t *testing.T) {
	// The job files docker under cloud_platforms; the candidate declares it
	// under devops_tools. The match still lands.
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryCloudPlatforms: {"AWS", "Docker"},
		},
	}
	resume := resumeWithSkills(map[profile.Category][]profile.CandidateSkill{
		profile.CategoryCloudPlatforms: {
			{Name: "AWS", Proficiency: profile.ProficiencyAdvanced, YearsExperience: 3},
		},
		profile.CategoryDevOpsTools: {
			{Name: "Docker", Proficiency: profile.ProficiencyAdvanced, YearsExperience: 3},
		},
	})

	report := MatchSkills(resume, job, RoleDevOps)

	assert.Len(t, report.Matches, 2)
	assert.Empty(t, report.Missing)
}

func TestMatchSkillsProficiencyMonotonicity(t *testing.T) {
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryProgrammingLanguages: {"go"},
		},
	}
	ladder := []profile.Proficiency{
		profile.ProficiencyBeginner,
		profile.ProficiencyIntermediate,
		profile.ProficiencyAdvanced,
		profile.ProficiencyExpert,
	}

	prev := -1.0
	for _, p := range ladder {
		resume := resumeWithSkills(map[profile.Category][]profile.CandidateSkill{
			profile.CategoryProgrammingLanguages: {{Name: "golang", Proficiency: p}},
		})
		report := MatchSkills(resume, job, RoleBackend)
		score := report.CategoryScores[profile.CategoryProgrammingLanguages]
		assert.GreaterOrEqual(t, score, prev, "proficiency %s", p)
		prev = score
	}
}

func TestMatchSkillsSynergyBonus(t *testing.T) {
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryDevOpsTools: {"Docker", "Kubernetes"},
		},
	}
	resume := resumeWithSkills(map[profile.Category][]profile.CandidateSkill{
		profile.CategoryDevOpsTools: {
			{Name: "Docker", Proficiency: profile.ProficiencyAdvanced, YearsExperience: 4},
			{Name: "k8s", Proficiency: profile.ProficiencyIntermediate, YearsExperience: 2},
		},
	})

	report := MatchSkills(resume, job, RoleDevOps)

	assert.Greater(t, report.SynergyBonus, 1.0)
	assert.LessOrEqual(t, report.OverallScore, 100.0)
}

func TestNormalizedCategoryWeightsSumToOne(t *testing.T) {
	roles := []RoleArchetype{
		RoleFrontend, RoleBackend, RoleFullstack, RoleDevOps,
		RoleData, RoleMobile, RoleGeneral,
	}
	for _, role := range roles {
		weights := normalizedCategoryWeights(role)
		var sum float64
		for _, w := range weights {
			sum += w
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "role %s", role)
	}
}

func TestMatchSkillsPrefersStrongestDuplicate(t *testing.T) {
	// The same skill declared twice takes the stronger proficiency.
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryProgrammingLanguages: {"python"},
		},
	}
	resume := resumeWithSkills(map[profile.Category][]profile.CandidateSkill{
		profile.CategoryProgrammingLanguages: {
			{Name: "python", Proficiency: profile.ProficiencyBeginner},
			{Name: "Python", Proficiency: profile.ProficiencyExpert, YearsExperience: 4},
		},
	})

	report := MatchSkills(resume, job, RoleBackend)

	require.Len(t, report.Matches, 1)
	assert.Equal(t, MatchExact, report.Matches[0].MatchType)
	assert.Equal(t, profile.ProficiencyExpert, report.Matches[0].Proficiency)
}
