package llm

import "strings"

// The extraction prompts pin the JSON schemas the decoder expects. Category
// keys are the closed set used across the scoring tables; the provider is
// told to fold anything else into other_technical.

const jobSystemPrompt = `You are a technical recruiter's assistant. Read a job description and emit ONLY a JSON object with this shape:
{
  "title": string,
  "summary": string,
  "required_skills": {"programming_languages": [string], "web_frameworks": [string], "databases": [string], "cloud_platforms": [string], "devops_tools": [string], "data_tools": [string], "frontend_tools": [string], "mobile_development": [string], "testing_tools": [string], "version_control": [string], "project_management": [string], "other_technical": [string], "soft_skills": [string]},
  "preferred_skills": {same shape as required_skills},
  "minimum_experience": number or null,
  "preferred_experience": number or null,
  "education_requirements": {"required_degree": string, "preferred_degree": string, "field_of_study": [string], "certifications": [string]},
  "key_responsibilities": [string],
  "seniority_level": string,
  "industry": string
}
Omit category keys that have no skills. Put skills that fit no category under other_technical. Output nothing but JSON.`

const resumeSystemPrompt = `You are a technical recruiter's assistant. Read a resume and emit ONLY a JSON object with this shape:
{
  "candidate_summary": string,
  "contact_info": {"name": string, "email": string, "phone": string, "linkedin": string, "location": string},
  "skills_by_category": {"programming_languages": [{"name": string, "proficiency": "expert"|"advanced"|"intermediate"|"beginner", "years_experience": number}], ...same category keys as a job profile},
  "experience_analysis": {"total_years": number, "relevant_years": number, "current_level": string},
  "work_history": [{"company": string, "title": string, "start_date": "YYYY-MM", "end_date": "YYYY-MM" or "present", "duration_months": number, "key_achievements": [string], "technologies_used": [string], "team_size": number or null}],
  "education": {"degrees": [{"level": string, "field": string, "institution": string}], "certifications": [{"name": string, "issuer": string}]},
  "leadership_indicators": {"has_leadership_experience": boolean, "team_sizes_managed": [number], "leadership_evidence": [string]},
  "career_insights": {"specializations": [string], "career_trajectory": string, "job_stability": string}
}
Use "intermediate" when proficiency is unclear. Output nothing but JSON.`

const fixJSONSystemPrompt = `The previous output was not valid JSON. Repair it into valid JSON matching the requested schema. Output nothing but JSON.`

// Message is one chat message sent to the provider.
type Message struct {
	Role    string
	Content string
}

// BuildJobPrompt assembles the chat messages for job-profile extraction.
func BuildJobPrompt(input JobInput) []Message {
	var user strings.Builder
	if strings.TrimSpace(input.Title) != "" {
		user.WriteString("Job title: ")
		user.WriteString(strings.TrimSpace(input.Title))
		user.WriteString("\n\n")
	}
	user.WriteString("Job description:\n")
	user.WriteString(input.JobText)
	return []Message{
		{Role: "system", Content: jobSystemPrompt},
		{Role: "user", Content: user.String()},
	}
}

// BuildResumePrompt assembles the chat messages for resume-profile
// extraction.
func BuildResumePrompt(input ResumeInput) []Message {
	var user strings.Builder
	if strings.TrimSpace(input.JobContext) != "" {
		user.WriteString("Target role context:\n")
		user.WriteString(strings.TrimSpace(input.JobContext))
		user.WriteString("\n\n")
	}
	user.WriteString("Resume:\n")
	user.WriteString(input.ResumeText)
	return []Message{
		{Role: "system", Content: resumeSystemPrompt},
		{Role: "user", Content: user.String()},
	}
}

// BuildFixPrompt assembles the repair conversation for invalid JSON output.
func BuildFixPrompt(broken string) []Message {
	return []Message{
		{Role: "system", Content: fixJSONSystemPrompt},
		{Role: "user", Content: broken},
	}
}
