package scoring

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"screening-backend/internal/profile"
)

// ExperienceReport carries the experience pillar score and its composition.
type ExperienceReport struct {
	Score        float64 `json:"score"`
	BaseScore    float64 `json:"base_score"`
	QualityBonus float64 `json:"quality_bonus"`
	QualityTier  string  `json:"quality_tier"`
}

var teamSizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`team of (\d+)`),
	regexp.MustCompile(`(\d+)[ -](?:person|member|engineer|developer)s?\b`),
}

// ScoreExperience computes the experience pillar: a staircase base from
// years-vs-requirement, plus quality bonuses mined from the work-history
// narrative.
func ScoreExperience(resume profile.ResumeProfile, job profile.JobProfile) ExperienceReport {
	years := resume.Experience.RelevantYears
	if years == 0 {
		years = resume.Experience.TotalYears
	}

	base := experienceBase(years, job.MinimumExperience)
	bonus, tier := qualityBonus(resume)

	return ExperienceReport{
		Score:        math.Min(base+bonus, 100),
		BaseScore:    base,
		QualityBonus: bonus,
		QualityTier:  tier,
	}
}

func experienceBase(years float64, minimum *float64) float64 {
	if minimum == nil || *minimum <= 0 {
		return 85
	}
	required := *minimum
	switch {
	case years >= required+3:
		return 95
	case years >= required+1:
		return 90
	case years >= required:
		return 85
	case years >= required*0.8:
		return 75
	case years >= required*0.6:
		return 65
	default:
		return 45
	}
}

// qualityBonus scans the concatenated work-history narrative against four
// keyword families. Each family's raw hit score is capped at 100 and scaled
// to its bonus budget; the scaled bonuses sum to the total.
func qualityBonus(resume profile.ResumeProfile) (float64, string) {
	narrative := workNarrative(resume)
	if narrative == "" {
		return 0, "basic"
	}

	leadershipRaw := keywordScore(narrative, leadershipKeywords, leadershipHitPoints)
	leadershipRaw = math.Min(leadershipRaw+teamSizeScore(resume, narrative), 100)
	impactRaw := keywordScore(narrative, impactKeywords, impactHitPoints)
	innovationRaw := keywordScore(narrative, innovationKeywords, innovationHitPoints)
	scaleRaw := keywordScore(narrative, scaleKeywords, scaleHitPoints)

	total := leadershipRaw/100*leadershipBonusCap +
		impactRaw/100*impactBonusCap +
		innovationRaw/100*innovationBonusCap +
		scaleRaw/100*scaleBonusCap

	return total, qualityTier(total)
}

func qualityTier(bonus float64) string {
	switch {
	case bonus >= 35:
		return "exceptional"
	case bonus >= 25:
		return "excellent"
	case bonus >= 15:
		return "good"
	case bonus >= 7:
		return "moderate"
	default:
		return "basic"
	}
}

func workNarrative(resume profile.ResumeProfile) string {
	var b strings.Builder
	for _, entry := range resume.WorkHistory {
		b.WriteString(entry.Title)
		b.WriteByte(' ')
		for _, a := range entry.KeyAchievements {
			b.WriteString(a)
			b.WriteByte(' ')
		}
		for _, t := range entry.TechnologiesUsed {
			b.WriteString(t)
			b.WriteByte(' ')
		}
	}
	for _, e := range resume.Leadership.Evidence {
		b.WriteString(e)
		b.WriteByte(' ')
	}
	return strings.ToLower(strings.TrimSpace(b.String()))
}

func keywordScore(narrative string, keywords []string, perHit float64) float64 {
	var score float64
	for _, kw := range keywords {
		score += float64(countTerm(narrative, kw)) * perHit
	}
	return math.Min(score, 100)
}

// countTerm counts whole-word occurrences for single-word terms and plain
// substring occurrences for phrases. Word boundaries keep "led" from
// matching inside "compiled".
func countTerm(narrative, term string) int {
	if strings.ContainsAny(term, " -/") {
		return strings.Count(narrative, term)
	}
	count := 0
	start := 0
	for {
		i := strings.Index(narrative[start:], term)
		if i < 0 {
			return count
		}
		at := start + i
		end := at + len(term)
		if boundaryBefore(narrative, at) && boundaryAfter(narrative, end) {
			count++
		}
		start = end
	}
}

func boundaryBefore(s string, i int) bool {
	return i == 0 || !isWordByte(s[i-1])
}

func boundaryAfter(s string, i int) bool {
	return i >= len(s) || !isWordByte(s[i])
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9'
}

// teamSizeScore extracts the largest team size mentioned either in the
// structured history or the narrative and converts it to points.
func teamSizeScore(resume profile.ResumeProfile, narrative string) float64 {
	largest := 0
	for _, entry := range resume.WorkHistory {
		if entry.TeamSize != nil && *entry.TeamSize > largest {
			largest = *entry.TeamSize
		}
	}
	for _, size := range resume.Leadership.TeamSizesManaged {
		if size > largest {
			largest = size
		}
	}
	for _, pattern := range teamSizePatterns {
		for _, m := range pattern.FindAllStringSubmatch(narrative, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > largest {
				largest = n
			}
		}
	}
	if largest == 0 {
		return 0
	}
	return math.Min(float64(largest)*teamSizePointsPer, teamSizePointsCap)
}
