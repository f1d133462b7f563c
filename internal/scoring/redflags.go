package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"screening-backend/internal/profile"
)

// RedFlagType identifies a detected risk pattern.
type RedFlagType string

const (
	FlagJobHopping        RedFlagType = "job_hopping"
	FlagEmploymentGap     RedFlagType = "employment_gap"
	FlagOverQualification RedFlagType = "over_qualification"
)

// RedFlag is one detected risk pattern with its multiplicative penalty.
type RedFlag struct {
	Type        RedFlagType `json:"type"`
	Severity    string      `json:"severity"`
	Penalty     float64     `json:"penalty"`
	Description string      `json:"description"`
}

// RedFlagReport aggregates detected flags into a clamped total penalty.
type RedFlagReport struct {
	Flags        []RedFlag `json:"flags,omitempty"`
	TotalPenalty float64   `json:"total_penalty"`
	RiskLevel    string    `json:"risk_level"`
}

// DetectRedFlags scans the work history for job-hopping, employment gaps,
// and over-qualification. The summed penalty is clamped to the ceiling.
func DetectRedFlags(resume profile.ResumeProfile, job profile.JobProfile) RedFlagReport {
	var flags []RedFlag

	history := sortRecentFirst(resume.WorkHistory)
	if flag, ok := detectJobHopping(history); ok {
		flags = append(flags, flag)
	}
	if flag, ok := detectEmploymentGap(history); ok {
		flags = append(flags, flag)
	}
	if flag, ok := detectOverQualification(resume.Experience, job); ok {
		flags = append(flags, flag)
	}

	var total float64
	for _, f := range flags {
		total += f.Penalty
	}
	total = math.Min(total, redFlagPenaltyCeiling)

	return RedFlagReport{
		Flags:        flags,
		TotalPenalty: total,
		RiskLevel:    riskLevel(total),
	}
}

func riskLevel(penalty float64) string {
	switch {
	case penalty >= 0.20:
		return "high"
	case penalty >= 0.10:
		return "medium"
	case penalty > 0:
		return "low"
	default:
		return "minimal"
	}
}

// sortRecentFirst orders work entries newest-first by parsed start date.
// Extraction usually emits that order, but some resumes list positions
// chronologically. Entries with unparseable start dates sort to the end,
// keeping their relative order.
func sortRecentFirst(history []profile.WorkEntry) []profile.WorkEntry {
	sorted := make([]profile.WorkEntry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, _ := parseWorkDate(sorted[i].StartDate)
		tj, _ := parseWorkDate(sorted[j].StartDate)
		return ti.After(tj)
	})
	return sorted
}

// detectJobHopping counts short stints among the most recent entries. The
// caller hands us history already sorted most-recent-first.
func detectJobHopping(history []profile.WorkEntry) (RedFlag, bool) {
	window := history
	if len(window) > jobHoppingWindow {
		window = window[:jobHoppingWindow]
	}
	short := 0
	for _, entry := range window {
		if entry.DurationMonths > 0 && entry.DurationMonths < shortTenureMonths {
			short++
		}
	}
	if short < jobHoppingMinCount {
		return RedFlag{}, false
	}
	return RedFlag{
		Type:        FlagJobHopping,
		Severity:    "high",
		Penalty:     jobHoppingPenalty,
		Description: fmt.Sprintf("%d of the last %d positions lasted under a year", short, len(window)),
	}, true
}

// detectEmploymentGap parses start/end dates of adjacent positions and flags
// a gap longer than the threshold. Entries with unparseable dates are
// skipped rather than guessed at.
func detectEmploymentGap(history []profile.WorkEntry) (RedFlag, bool) {
	for i := 0; i+1 < len(history); i++ {
		newerStart, ok := parseWorkDate(history[i].StartDate)
		if !ok {
			continue
		}
		olderEnd, ok := parseWorkDate(history[i+1].EndDate)
		if !ok {
			continue
		}
		gap := monthsBetween(olderEnd, newerStart)
		if gap > employmentGapMonths {
			return RedFlag{
				Type:        FlagEmploymentGap,
				Severity:    "medium",
				Penalty:     employmentGapPenalty,
				Description: fmt.Sprintf("employment gap of roughly %d months between positions", gap),
			}, true
		}
	}
	return RedFlag{}, false
}

func detectOverQualification(exp profile.ExperienceAnalysis, job profile.JobProfile) (RedFlag, bool) {
	if exp.TotalYears <= overQualificationYrs {
		return RedFlag{}, false
	}
	return RedFlag{
		Type:        FlagOverQualification,
		Severity:    "low",
		Penalty:     overQualificationPenalty,
		Description: fmt.Sprintf("%.0f years of total experience may exceed the role's level", exp.TotalYears),
	}, true
}

var workDateLayouts = []string{"2006-01-02", "2006-01", "2006/01", "Jan 2006", "January 2006", "2006"}

// parseWorkDate accepts the date shapes extraction commonly emits. Ongoing
// positions ("present", "current", blank) do not parse; callers skip them.
func parseWorkDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	lower := strings.ToLower(s)
	if lower == "present" || lower == "current" || lower == "now" || lower == "ongoing" {
		return time.Time{}, false
	}
	for _, layout := range workDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func monthsBetween(earlier, later time.Time) int {
	if later.Before(earlier) {
		return 0
	}
	years := later.Year() - earlier.Year()
	months := int(later.Month()) - int(earlier.Month())
	return years*12 + months
}
