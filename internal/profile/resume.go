package profile

// ContactInfo is the extracted contact block of a resume.
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Location string `json:"location,omitempty"`
}

// ExperienceAnalysis summarizes the candidate's experience as estimated by
// extraction.
type ExperienceAnalysis struct {
	TotalYears    float64 `json:"total_years"`
	RelevantYears float64 `json:"relevant_years"`
	CurrentLevel  string  `json:"current_level,omitempty"`
}

// WorkEntry is a single position in the candidate's work history.
// DurationMonths is the unit used by tenure heuristics.
type WorkEntry struct {
	Company          string   `json:"company,omitempty"`
	Title            string   `json:"title,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	DurationMonths   float64  `json:"duration_months"`
	KeyAchievements  []string `json:"key_achievements,omitempty"`
	TechnologiesUsed []string `json:"technologies_used,omitempty"`
	TeamSize         *int     `json:"team_size,omitempty"`
}

// Degree is a completed academic degree.
type Degree struct {
	Level       string `json:"level,omitempty"`
	Field       string `json:"field,omitempty"`
	Institution string `json:"institution,omitempty"`
}

// Certification is a professional certification held by the candidate.
type Certification struct {
	Name   string `json:"name,omitempty"`
	Issuer string `json:"issuer,omitempty"`
}

// Education groups degrees and certifications.
type Education struct {
	Degrees        []Degree        `json:"degrees,omitempty"`
	Certifications []Certification `json:"certifications,omitempty"`
}

// LeadershipIndicators captures leadership evidence found by extraction.
type LeadershipIndicators struct {
	HasLeadershipExperience bool     `json:"has_leadership_experience"`
	TeamSizesManaged        []int    `json:"team_sizes_managed,omitempty"`
	Evidence                []string `json:"leadership_evidence,omitempty"`
}

// CareerInsights is reporting-only context about the candidate's trajectory.
type CareerInsights struct {
	Specializations  []string `json:"specializations,omitempty"`
	CareerTrajectory string   `json:"career_trajectory,omitempty"`
	JobStability     string   `json:"job_stability,omitempty"`
}

// ResumeProfile is the structured output of the resume-analysis collaborator.
type ResumeProfile struct {
	CandidateSummary string                        `json:"candidate_summary,omitempty"`
	Contact          ContactInfo                   `json:"contact_info,omitempty"`
	SkillsByCategory map[Category][]CandidateSkill `json:"skills_by_category,omitempty"`
	Experience       ExperienceAnalysis            `json:"experience_analysis"`
	WorkHistory      []WorkEntry                   `json:"work_history,omitempty"`
	Education        Education                     `json:"education,omitempty"`
	Leadership       LeadershipIndicators          `json:"leadership_indicators,omitempty"`
	Insights         CareerInsights                `json:"career_insights,omitempty"`
}

// SkillsIn returns the declared skills for a category, nil-safe.
func (r ResumeProfile) SkillsIn(c Category) []CandidateSkill {
	if r.SkillsByCategory == nil {
		return nil
	}
	return r.SkillsByCategory[c]
}

// FallbackResumeProfile returns the minimal well-typed profile substituted
// when resume extraction fails: empty skill categories, zero experience.
func FallbackResumeProfile() ResumeProfile {
	skills := make(map[Category][]CandidateSkill, len(Categories()))
	for _, c := range Categories() {
		skills[c] = []CandidateSkill{}
	}
	return ResumeProfile{
		SkillsByCategory: skills,
	}
}
