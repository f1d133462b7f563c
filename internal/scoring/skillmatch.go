package scoring

import (
	"math"

	"screening-backend/internal/profile"
)

// MatchType classifies how a required skill was satisfied.
type MatchType string

const (
	MatchExact   MatchType = "exact"
	MatchSynonym MatchType = "synonym"
	MatchRelated MatchType = "related"
	MatchNone    MatchType = "none"
)

// MatchResult records the outcome for one required skill.
type MatchResult struct {
	RequiredSkill string              `json:"required_skill"`
	MatchedWith   string              `json:"matched_with,omitempty"`
	MatchType     MatchType           `json:"match_type"`
	Proficiency   profile.Proficiency `json:"proficiency,omitempty"`
	Score         float64             `json:"score"`
	Category      profile.Category    `json:"category"`
}

// MissingSkill records an unsatisfied requirement.
type MissingSkill struct {
	Name     string           `json:"name"`
	Category profile.Category `json:"category"`
	Critical bool             `json:"critical"`
}

// SkillMatchReport is the full output of skill matching for one resume/job
// pair under one role archetype.
type SkillMatchReport struct {
	OverallScore   float64                      `json:"overall_score"`
	CategoryScores map[profile.Category]float64 `json:"category_scores"`
	Matches        []MatchResult                `json:"matches,omitempty"`
	Missing        []MissingSkill               `json:"missing_skills,omitempty"`
	SynergyBonus   float64                      `json:"synergy_bonus"`
}

// MatchSkills scores the candidate's declared skills against the job's
// required skills under the given archetype's category weights. It never
// fails: absent data degrades to tiered floor scores.
func MatchSkills(resume profile.ResumeProfile, job profile.JobProfile, role RoleArchetype) SkillMatchReport {
	weights := normalizedCategoryWeights(role)
	report := SkillMatchReport{
		CategoryScores: make(map[profile.Category]float64, len(weights)),
		SynergyBonus:   1.0,
	}

	// Categories are visited in their fixed declaration order so that match
	// and missing-skill lists come out identical across runs.
	var weightedSum, weightTotal float64
	for _, category := range profile.Categories() {
		weight := weights[category]
		if weight <= 0 {
			continue
		}
		score := report.scoreCategory(resume, job, category, weight)
		report.CategoryScores[category] = score
		weightedSum += score * weight
		weightTotal += weight
	}

	if weightTotal > 0 {
		report.OverallScore = weightedSum / weightTotal
	}

	report.SynergyBonus = synergyMultiplier(report.Matches)
	report.OverallScore = clamp(report.OverallScore*report.SynergyBonus, 0, 100)
	return report
}

func (r *SkillMatchReport) scoreCategory(resume profile.ResumeProfile, job profile.JobProfile, category profile.Category, weight float64) float64 {
	required := job.RequiredSkills[category]
	if len(required) == 0 {
		// Nothing demanded here: full marks, no bonus for absence.
		return 100
	}

	declared := resume.SkillsIn(category)
	if len(declared) == 0 {
		critical := weight >= criticalCategoryWeight
		for _, name := range required {
			r.Missing = append(r.Missing, MissingSkill{
				Name:     name,
				Category: category,
				Critical: critical,
			})
		}
		switch {
		case critical:
			return 0
		case weight >= importantCategoryWeight:
			return importantCategoryFloor
		default:
			return optionalCategoryFloor
		}
	}

	pool := allSkills(resume)
	var total float64
	for _, name := range required {
		match, ok := bestMatch(name, declared)
		if !ok {
			// A requirement the extraction filed under a different
			// category still counts; check the whole pool.
			match, ok = bestMatch(name, pool)
		}
		if !ok {
			r.Missing = append(r.Missing, MissingSkill{
				Name:     name,
				Category: category,
				Critical: criticalSkills[Normalize(name)],
			})
			continue
		}
		match.Category = category
		r.Matches = append(r.Matches, match)
		total += match.Score
	}

	return clamp(total/(float64(len(required))*100)*100, 0, 100)
}

// bestMatch tries exact, then synonym, then related matches, in that order.
// Within a tier the strongest declared proficiency wins; resumes often list
// the same skill under more than one category.
func bestMatch(required string, candidates []profile.CandidateSkill) (MatchResult, bool) {
	requiredClean := Clean(required)
	requiredCanonical := Normalize(required)
	if requiredClean == "" {
		return MatchResult{}, false
	}

	if c, ok := strongest(candidates, func(c profile.CandidateSkill) bool {
		return Clean(c.Name) == requiredClean
	}); ok {
		return matchResult(required, c, MatchExact, exactMultiplier), true
	}
	if c, ok := strongest(candidates, func(c profile.CandidateSkill) bool {
		return Normalize(c.Name) == requiredCanonical
	}); ok {
		return matchResult(required, c, MatchSynonym, synonymMultiplier), true
	}
	if c, ok := strongest(candidates, func(c profile.CandidateSkill) bool {
		return Related(c.Name, required)
	}); ok {
		return matchResult(required, c, MatchRelated, relatedMultiplier), true
	}
	return MatchResult{}, false
}

// strongest picks the matching candidate with the highest proficiency rank,
// keeping the first listed on ties.
func strongest(candidates []profile.CandidateSkill, match func(profile.CandidateSkill) bool) (profile.CandidateSkill, bool) {
	var best profile.CandidateSkill
	found := false
	for _, c := range candidates {
		if !match(c) {
			continue
		}
		if !found || c.Proficiency.Rank() > best.Proficiency.Rank() {
			best = c
			found = true
		}
	}
	return best, found
}

func matchResult(required string, skill profile.CandidateSkill, kind MatchType, multiplier float64) MatchResult {
	base := proficiencyBase[skill.Proficiency]
	if base == 0 {
		base = proficiencyBase[profile.ProficiencyIntermediate]
	}
	bonus := math.Min(skill.YearsExperience*yearsBonusPerYear, yearsBonusCap)
	return MatchResult{
		RequiredSkill: required,
		MatchedWith:   skill.Name,
		MatchType:     kind,
		Proficiency:   skill.Proficiency,
		Score:         math.Min((base+bonus)*multiplier, 100),
	}
}

// synergyMultiplier rewards commonly paired technologies among the matched
// set. Each triggered pair adds its bonus, damped before multiplying in.
func synergyMultiplier(matches []MatchResult) float64 {
	if len(matches) == 0 {
		return 1.0
	}
	matched := make(map[string]bool, len(matches))
	for _, m := range matches {
		matched[Normalize(m.MatchedWith)] = true
		matched[Normalize(m.RequiredSkill)] = true
	}

	var bonus float64
	for _, pair := range synergyPairs {
		if matched[pair.a] && matched[pair.b] {
			bonus += pair.bonus
		}
	}
	if containsAny(matched, frontendKeywords) && containsAny(matched, backendKeywords) {
		bonus += crossStackSynergyBonus
	}
	return 1.0 + bonus*synergyDamping
}

func containsAny(set map[string]bool, keywords []string) bool {
	for _, kw := range keywords {
		if set[kw] {
			return true
		}
	}
	return false
}

func allSkills(resume profile.ResumeProfile) []profile.CandidateSkill {
	var out []profile.CandidateSkill
	for _, c := range profile.Categories() {
		out = append(out, resume.SkillsIn(c)...)
	}
	return out
}

// normalizedCategoryWeights returns the archetype's weight map scaled to sum
// to 1. Unknown archetypes fall back to the general table.
func normalizedCategoryWeights(role RoleArchetype) map[profile.Category]float64 {
	raw, ok := categoryWeights[role]
	if !ok {
		raw = categoryWeights[RoleGeneral]
	}
	var sum float64
	for _, w := range raw {
		sum += w
	}
	out := make(map[profile.Category]float64, len(raw))
	if sum <= 0 {
		return out
	}
	for c, w := range raw {
		out[c] = w / sum
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
