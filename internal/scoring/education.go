package scoring

import (
	"math"
	"strings"

	"screening-backend/internal/profile"
)

// EducationReport carries the education pillar score and its composition.
type EducationReport struct {
	Score              float64 `json:"score"`
	DegreeScore        float64 `json:"degree_score"`
	FieldBonus         float64 `json:"field_bonus"`
	CertificationBonus float64 `json:"certification_bonus"`
}

const (
	degreeMetBase      = 70.0
	degreeGapDecay     = 25.0
	noDegreeWhenNeeded = 10.0
	degreeNotRequired  = 50.0
	nothingEitherSide  = 70.0
	fieldMatchBonus    = 20.0
	certificationCap   = 30.0
)

// ScoreEducation scores degree adequacy, field-of-study match, and
// certification coverage against the job's stated requirements.
func ScoreEducation(resume profile.ResumeProfile, job profile.JobProfile) EducationReport {
	required := degreeOrdinal(job.Education.RequiredDegree)
	highest, highestField := highestDegree(resume.Education.Degrees)

	var degreeScore float64
	switch {
	case required == 0 && highest == 0:
		degreeScore = nothingEitherSide
	case required == 0:
		degreeScore = degreeNotRequired
	case highest == 0:
		// Some credit survives for possible self-taught candidates.
		degreeScore = noDegreeWhenNeeded
	case highest >= required:
		degreeScore = degreeMetBase
	default:
		degreeScore = math.Max(0, degreeMetBase-degreeGapDecay*float64(required-highest))
	}

	var fieldBonus float64
	if highest > 0 && fieldMatches(highestField, job.Education.FieldOfStudy) {
		fieldBonus = fieldMatchBonus
	}

	certBonus := certificationBonus(resume.Education.Certifications, job.Education.Certifications)

	return EducationReport{
		Score:              math.Min(100, degreeScore+fieldBonus+certBonus),
		DegreeScore:        degreeScore,
		FieldBonus:         fieldBonus,
		CertificationBonus: certBonus,
	}
}

// degreeOrdinal maps a degree-level string onto the ordinal scale used for
// adequacy comparison. Unrecognized non-empty levels rank lowest.
func degreeOrdinal(level string) int {
	l := strings.ToLower(strings.TrimSpace(level))
	switch {
	case l == "":
		return 0
	case strings.Contains(l, "phd"), strings.Contains(l, "doctor"):
		return 5
	case strings.Contains(l, "master"), strings.Contains(l, "mba"),
		strings.Contains(l, "msc"), strings.Contains(l, "m.s"):
		return 4
	case strings.Contains(l, "bachelor"), strings.Contains(l, "bsc"),
		strings.Contains(l, "b.s"), strings.Contains(l, "b.a"):
		return 3
	case strings.Contains(l, "associate"):
		return 2
	default:
		return 1
	}
}

func highestDegree(degrees []profile.Degree) (int, string) {
	best := 0
	field := ""
	for _, d := range degrees {
		if ord := degreeOrdinal(d.Level); ord > best {
			best = ord
			field = d.Field
		}
	}
	return best, field
}

func fieldMatches(field string, requiredFields []string) bool {
	f := strings.ToLower(field)
	if f == "" {
		return false
	}
	for _, want := range requiredFields {
		w := strings.ToLower(strings.TrimSpace(want))
		if w != "" && strings.Contains(f, w) {
			return true
		}
	}
	return false
}

// certificationBonus scales the cap by the fraction of required
// certifications found among the candidate's, matched by substring in either
// direction.
func certificationBonus(held []profile.Certification, required []string) float64 {
	if len(required) == 0 {
		return 0
	}
	found := 0
	for _, want := range required {
		w := strings.ToLower(strings.TrimSpace(want))
		if w == "" {
			continue
		}
		for _, cert := range held {
			name := strings.ToLower(strings.TrimSpace(cert.Name))
			if name == "" {
				continue
			}
			if strings.Contains(name, w) || strings.Contains(w, name) {
				found++
				break
			}
		}
	}
	return certificationCap * float64(found) / float64(len(required))
}
