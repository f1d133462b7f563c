package profile

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Extraction output is not contractually well-shaped: fields may be missing,
// or present with the wrong type (a string where a list was expected, a
// numeric string where a number was expected). Decoding coerces what it can
// and defaults the rest, recording every defaulted field path so callers can
// surface confidence caveats. Decoding never fails.

type decoder struct {
	defaulted []string
}

func (d *decoder) miss(path string) {
	d.defaulted = append(d.defaulted, path)
}

// DecodeJobProfile parses job-analysis collaborator output into a JobProfile.
// The second return value lists field paths that were defaulted or coerced.
func DecodeJobProfile(raw []byte) (JobProfile, []string) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil || root == nil {
		return FallbackJobProfile(), []string{"$"}
	}

	d := &decoder{}
	job := JobProfile{
		Title:               d.str(root, "title"),
		Summary:             d.str(root, "summary"),
		RequiredSkills:      d.skillNameMap(root, "required_skills"),
		PreferredSkills:     d.skillNameMap(root, "preferred_skills"),
		MinimumExperience:   d.floatPtr(root, "minimum_experience"),
		PreferredExperience: d.floatPtr(root, "preferred_experience"),
		KeyResponsibilities: d.strList(root, "key_responsibilities"),
		SeniorityLevel:      d.str(root, "seniority_level"),
		Industry:            d.str(root, "industry"),
	}

	if eduRaw, ok := root["education_requirements"].(map[string]any); ok {
		job.Education = EducationRequirements{
			RequiredDegree:  d.str(eduRaw, "required_degree"),
			PreferredDegree: d.str(eduRaw, "preferred_degree"),
			FieldOfStudy:    d.strList(eduRaw, "field_of_study"),
			Certifications:  d.strList(eduRaw, "certifications"),
		}
	} else if _, present := root["education_requirements"]; present {
		d.miss("education_requirements")
	}

	return job, d.defaulted
}

// DecodeResumeProfile parses resume-analysis collaborator output into a
// ResumeProfile. The second return value lists defaulted field paths.
func DecodeResumeProfile(raw []byte) (ResumeProfile, []string) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil || root == nil {
		return FallbackResumeProfile(), []string{"$"}
	}

	d := &decoder{}
	resume := ResumeProfile{
		CandidateSummary: d.str(root, "candidate_summary"),
		SkillsByCategory: d.candidateSkillMap(root, "skills_by_category"),
	}

	if contact, ok := root["contact_info"].(map[string]any); ok {
		resume.Contact = ContactInfo{
			Name:     d.str(contact, "name"),
			Email:    d.str(contact, "email"),
			Phone:    d.str(contact, "phone"),
			LinkedIn: d.str(contact, "linkedin"),
			Location: d.str(contact, "location"),
		}
	}

	if exp, ok := root["experience_analysis"].(map[string]any); ok {
		resume.Experience = ExperienceAnalysis{
			TotalYears:    d.float(exp, "total_years"),
			RelevantYears: d.float(exp, "relevant_years"),
			CurrentLevel:  d.str(exp, "current_level"),
		}
	} else {
		d.miss("experience_analysis")
	}

	resume.WorkHistory = d.workHistory(root, "work_history")

	if edu, ok := root["education"].(map[string]any); ok {
		resume.Education = Education{
			Degrees:        d.degrees(edu, "degrees"),
			Certifications: d.certifications(edu, "certifications"),
		}
	}

	if lead, ok := root["leadership_indicators"].(map[string]any); ok {
		resume.Leadership = LeadershipIndicators{
			HasLeadershipExperience: d.boolVal(lead, "has_leadership_experience"),
			TeamSizesManaged:        d.intList(lead, "team_sizes_managed"),
			Evidence:                d.strList(lead, "leadership_evidence"),
		}
	}

	if ins, ok := root["career_insights"].(map[string]any); ok {
		resume.Insights = CareerInsights{
			Specializations:  d.strList(ins, "specializations"),
			CareerTrajectory: d.str(ins, "career_trajectory"),
			JobStability:     d.str(ins, "job_stability"),
		}
	}

	return resume, d.defaulted
}

func (d *decoder) str(container map[string]any, key string) string {
	raw, ok := container[key]
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		d.miss(key)
		return ""
	}
}

func (d *decoder) float(container map[string]any, key string) float64 {
	v, ok := coerceFloat(container[key])
	if !ok {
		if _, present := container[key]; present && container[key] != nil {
			d.miss(key)
		}
		return 0
	}
	if v < 0 {
		return 0
	}
	return v
}

func (d *decoder) floatPtr(container map[string]any, key string) *float64 {
	raw, present := container[key]
	if !present || raw == nil {
		return nil
	}
	v, ok := coerceFloat(raw)
	if !ok {
		d.miss(key)
		return nil
	}
	if v < 0 {
		v = 0
	}
	return &v
}

func (d *decoder) boolVal(container map[string]any, key string) bool {
	if v, ok := container[key].(bool); ok {
		return v
	}
	return false
}

func (d *decoder) intPtr(container map[string]any, key string) *int {
	raw, present := container[key]
	if !present || raw == nil {
		return nil
	}
	v, ok := coerceFloat(raw)
	if !ok || v <= 0 {
		return nil
	}
	n := int(v)
	return &n
}

func (d *decoder) strList(container map[string]any, key string) []string {
	raw, ok := container[key]
	if !ok || raw == nil {
		return nil
	}
	switch v := raw.(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					out = append(out, trimmed)
				}
			}
		}
		return out
	case string:
		// A bare string where a list was expected becomes a one-item list.
		d.miss(key)
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	default:
		d.miss(key)
		return nil
	}
}

func (d *decoder) intList(container map[string]any, key string) []int {
	raw, ok := container[key].([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(raw))
	for _, item := range raw {
		if v, ok := coerceFloat(item); ok && v > 0 {
			out = append(out, int(v))
		}
	}
	return out
}

func (d *decoder) skillNameMap(container map[string]any, key string) map[Category][]string {
	out := map[Category][]string{}
	raw, ok := container[key].(map[string]any)
	if !ok {
		if _, present := container[key]; present && container[key] != nil {
			d.miss(key)
		}
		return out
	}
	for rawKey := range raw {
		category := ParseCategory(rawKey)
		names := d.strList(raw, rawKey)
		if len(names) == 0 {
			continue
		}
		out[category] = append(out[category], names...)
	}
	return out
}

func (d *decoder) candidateSkillMap(container map[string]any, key string) map[Category][]CandidateSkill {
	out := make(map[Category][]CandidateSkill, len(Categories()))
	for _, c := range Categories() {
		out[c] = []CandidateSkill{}
	}
	raw, ok := container[key].(map[string]any)
	if !ok {
		d.miss(key)
		return out
	}
	for rawKey, rawList := range raw {
		category := ParseCategory(rawKey)
		list, ok := rawList.([]any)
		if !ok {
			if rawList != nil {
				d.miss(key + "." + rawKey)
			}
			continue
		}
		for _, item := range list {
			skill, ok := d.candidateSkill(item, key+"."+rawKey)
			if !ok {
				continue
			}
			out[category] = append(out[category], skill)
		}
	}
	return out
}

// candidateSkill accepts both representations the collaborator emits: a
// structured {name, proficiency, years_experience} object or a bare skill
// name string (which gets the intermediate default).
func (d *decoder) candidateSkill(item any, path string) (CandidateSkill, bool) {
	switch v := item.(type) {
	case string:
		name := strings.TrimSpace(v)
		if name == "" {
			return CandidateSkill{}, false
		}
		return CandidateSkill{Name: name, Proficiency: ProficiencyIntermediate}, true
	case map[string]any:
		name := d.str(v, "name")
		if name == "" {
			d.miss(path + ".name")
			return CandidateSkill{}, false
		}
		years, _ := coerceFloat(v["years_experience"])
		if years < 0 {
			years = 0
		}
		return CandidateSkill{
			Name:            name,
			Proficiency:     ParseProficiency(d.str(v, "proficiency")),
			YearsExperience: years,
		}, true
	default:
		d.miss(path)
		return CandidateSkill{}, false
	}
}

func (d *decoder) workHistory(container map[string]any, key string) []WorkEntry {
	raw, ok := container[key].([]any)
	if !ok {
		if _, present := container[key]; present && container[key] != nil {
			d.miss(key)
		}
		return nil
	}
	out := make([]WorkEntry, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			d.miss(key)
			continue
		}
		out = append(out, WorkEntry{
			Company:          d.str(entry, "company"),
			Title:            d.str(entry, "title"),
			StartDate:        d.str(entry, "start_date"),
			EndDate:          d.str(entry, "end_date"),
			DurationMonths:   d.float(entry, "duration_months"),
			KeyAchievements:  d.strList(entry, "key_achievements"),
			TechnologiesUsed: d.strList(entry, "technologies_used"),
			TeamSize:         d.intPtr(entry, "team_size"),
		})
	}
	return out
}

func (d *decoder) degrees(container map[string]any, key string) []Degree {
	raw, ok := container[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Degree, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case map[string]any:
			out = append(out, Degree{
				Level:       d.str(v, "level"),
				Field:       d.str(v, "field"),
				Institution: d.str(v, "institution"),
			})
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				out = append(out, Degree{Level: trimmed})
			}
		}
	}
	return out
}

func (d *decoder) certifications(container map[string]any, key string) []Certification {
	raw, ok := container[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Certification, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case map[string]any:
			name := d.str(v, "name")
			if name == "" {
				continue
			}
			out = append(out, Certification{Name: name, Issuer: d.str(v, "issuer")})
		case string:
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				out = append(out, Certification{Name: trimmed})
			}
		}
	}
	return out
}

func coerceFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
