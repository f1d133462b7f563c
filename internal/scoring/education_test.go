package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"screening-backend/internal/profile"
)

func TestScoreEducationDegreeMetWithFieldMatch(t *testing.T) {
	resume := profile.ResumeProfile{
		Education: profile.Education{
			Degrees: []profile.Degree{
				{Level: "Master's", Field: "Computer Science", Institution: "State University"},
			},
		},
	}
	job := profile.JobProfile{
		Education: profile.EducationRequirements{
			RequiredDegree: "Bachelor's",
			FieldOfStudy:   []string{"Computer Science"},
		},
	}

	report := ScoreEducation(resume, job)

	assert.Equal(t, 70.0, report.DegreeScore)
	assert.Equal(t, 20.0, report.FieldBonus)
	assert.Equal(t, 90.0, report.Score)
}

func TestScoreEducationNoDegreeWhenRequired(t *testing.T) {
	job := profile.JobProfile{
		Education: profile.EducationRequirements{RequiredDegree: "Bachelor's"},
	}

	report := ScoreEducation(profile.ResumeProfile{}, job)

	assert.Equal(t, 10.0, report.DegreeScore)
	assert.Equal(t, 0.0, report.FieldBonus)
}

func TestScoreEducationDegreeGapDecays(t *testing.T) {
	resume := profile.ResumeProfile{
		Education: profile.Education{
			Degrees: []profile.Degree{{Level: "Bachelor's", Field: "Physics"}},
		},
	}
	job := profile.JobProfile{
		Education: profile.EducationRequirements{RequiredDegree: "PhD"},
	}

	report := ScoreEducation(resume, job)

	// Two ordinal steps below requirement: 70 - 2*25.
	assert.Equal(t, 20.0, report.DegreeScore)
}

func TestScoreEducationNothingRequiredNothingHeld(t *testing.T) {
	report := ScoreEducation(profile.ResumeProfile{}, profile.JobProfile{})
	assert.Equal(t, 70.0, report.DegreeScore)
}

func TestScoreEducationNothingRequiredDegreeHeld(t *testing.T) {
	resume := profile.ResumeProfile{
		Education: profile.Education{Degrees: []profile.Degree{{Level: "Bachelor's"}}},
	}
	report := ScoreEducation(resume, profile.JobProfile{})
	assert.Equal(t, 50.0, report.DegreeScore)
}

func TestScoreEducationCertificationCoverage(t *testing.T) {
	resume := profile.ResumeProfile{
		Education: profile.Education{
			Certifications: []profile.Certification{
				{Name: "AWS Certified Solutions Architect - Associate", Issuer: "AWS"},
			},
		},
	}
	job := profile.JobProfile{
		Education: profile.EducationRequirements{
			Certifications: []string{"AWS Certified Solutions Architect", "CKA"},
		},
	}

	report := ScoreEducation(resume, job)

	// One of two required certifications covered.
	assert.InDelta(t, 15.0, report.CertificationBonus, 1e-9)
}

func TestScoreEducationCapsAtHundred(t *testing.T) {
	resume := profile.ResumeProfile{
		Education: profile.Education{
			Degrees: []profile.Degree{{Level: "PhD", Field: "Computer Science"}},
			Certifications: []profile.Certification{
				{Name: "AWS Certified Developer"},
				{Name: "Certified Kubernetes Administrator"},
			},
		},
	}
	job := profile.JobProfile{
		Education: profile.EducationRequirements{
			RequiredDegree: "Master's",
			FieldOfStudy:   []string{"Computer Science"},
			Certifications: []string{"AWS Certified Developer", "Certified Kubernetes Administrator"},
		},
	}

	report := ScoreEducation(resume, job)

	assert.Equal(t, 100.0, report.Score)
	assert.Equal(t, 30.0, report.CertificationBonus)
}

func TestDegreeOrdinal(t *testing.T) {
	cases := map[string]int{
		"":                        0,
		"PhD":                     5,
		"Doctorate":               5,
		"Master of Science":       4,
		"MBA":                     4,
		"Bachelor of Engineering": 3,
		"BSc":                     3,
		"Associate Degree":        2,
		"Bootcamp Certificate":    1,
	}
	for level, want := range cases {
		assert.Equal(t, want, degreeOrdinal(level), "level=%q", level)
	}
}
