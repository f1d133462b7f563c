package profile

// EducationRequirements captures the degree and certification demands of a job.
type EducationRequirements struct {
	RequiredDegree  string   `json:"required_degree,omitempty"`
	PreferredDegree string   `json:"preferred_degree,omitempty"`
	FieldOfStudy    []string `json:"field_of_study,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
}

// JobProfile is the structured output of the job-analysis collaborator.
// Every field is optional; absent data degrades scoring, never fails it.
type JobProfile struct {
	Title               string                `json:"title,omitempty"`
	Summary             string                `json:"summary,omitempty"`
	RequiredSkills      map[Category][]string `json:"required_skills,omitempty"`
	PreferredSkills     map[Category][]string `json:"preferred_skills,omitempty"`
	MinimumExperience   *float64              `json:"minimum_experience,omitempty"`
	PreferredExperience *float64              `json:"preferred_experience,omitempty"`
	Education           EducationRequirements `json:"education_requirements,omitempty"`
	KeyResponsibilities []string              `json:"key_responsibilities,omitempty"`
	SeniorityLevel      string                `json:"seniority_level,omitempty"`
	Industry            string                `json:"industry,omitempty"`
}

// HasRequirements reports whether the job declares any required skill at all.
func (j JobProfile) HasRequirements() bool {
	for _, skills := range j.RequiredSkills {
		if len(skills) > 0 {
			return true
		}
	}
	return false
}

// HasPreferred reports whether the job declares any preferred skill.
func (j JobProfile) HasPreferred() bool {
	for _, skills := range j.PreferredSkills {
		if len(skills) > 0 {
			return true
		}
	}
	return false
}

// FallbackJobProfile returns the minimal well-typed profile substituted when
// job extraction fails. Scoring a fallback job treats every category as
// requirement-free.
func FallbackJobProfile() JobProfile {
	return JobProfile{
		RequiredSkills:  map[Category][]string{},
		PreferredSkills: map[Category][]string{},
	}
}
