package scoring

import (
	"strings"

	"screening-backend/internal/profile"
)

// ClassifyRole inspects a job's descriptive text and required-skill structure
// and picks the archetype whose weight table will drive skill scoring.
//
// Precedence is deliberate: explicit multi-stack phrasing beats strong
// bimodal signals, which beat specialist thresholds, which beat raw
// dominance. Reordering these rules changes outcomes for ambiguous postings.
func ClassifyRole(job profile.JobProfile) RoleArchetype {
	corpus := roleCorpus(job)

	for _, phrase := range fullstackPhrases {
		if strings.Contains(corpus, phrase) {
			return RoleFullstack
		}
	}

	frontend := countKeywords(corpus, frontendKeywords)
	backend := countKeywords(corpus, backendKeywords)
	devops := countKeywords(corpus, devopsKeywords)
	data := countKeywords(corpus, dataKeywords)
	mobile := countKeywords(corpus, mobileKeywords)

	if frontend >= fullstackStrongThreshold && backend >= fullstackStrongThreshold {
		return RoleFullstack
	}
	if frontend >= fullstackModerateThreshold && backend >= fullstackModerateThreshold {
		return RoleFullstack
	}

	switch {
	case data >= dataThreshold:
		return RoleData
	case mobile >= mobileThreshold:
		return RoleMobile
	case devops >= devopsThreshold && frontend+backend < devopsGeneralistCeiling:
		return RoleDevOps
	case backend >= specialistThreshold && frontend < offStackCeiling:
		return RoleBackend
	case frontend >= specialistThreshold && backend < offStackCeiling:
		return RoleFrontend
	}

	switch {
	case frontend > backend:
		return RoleFrontend
	case backend > frontend:
		return RoleBackend
	case frontend >= 1:
		return RoleFullstack
	default:
		return RoleGeneral
	}
}

// roleCorpus joins the job's title, summary, responsibilities, and declared
// required-skill names into one lowercase blob for keyword counting.
func roleCorpus(job profile.JobProfile) string {
	var b strings.Builder
	b.WriteString(job.Title)
	b.WriteByte(' ')
	b.WriteString(job.Summary)
	for _, r := range job.KeyResponsibilities {
		b.WriteByte(' ')
		b.WriteString(r)
	}
	for _, skills := range job.RequiredSkills {
		for _, s := range skills {
			b.WriteByte(' ')
			b.WriteString(s)
		}
	}
	return strings.ToLower(b.String())
}

func countKeywords(corpus string, keywords []string) int {
	total := 0
	for _, kw := range keywords {
		total += strings.Count(corpus, kw)
	}
	return total
}
