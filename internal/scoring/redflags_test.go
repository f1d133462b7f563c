package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screening-backend/internal/profile"
)

func shortStints(n int, total int) []profile.WorkEntry {
	entries := make([]profile.WorkEntry, total)
	for i := range entries {
		if i < n {
			entries[i] = profile.WorkEntry{DurationMonths: 8}
		} else {
			entries[i] = profile.WorkEntry{DurationMonths: 36}
		}
	}
	return entries
}

func TestDetectRedFlagsJobHopping(t *testing.T) {
	resume := profile.ResumeProfile{WorkHistory: shortStints(4, 5)}

	report := DetectRedFlags(resume, profile.JobProfile{})

	require.Len(t, report.Flags, 1)
	assert.Equal(t, FlagJobHopping, report.Flags[0].Type)
	assert.Equal(t, jobHoppingPenalty, report.Flags[0].Penalty)
	assert.Equal(t, jobHoppingPenalty, report.TotalPenalty)
	assert.Equal(t, "medium", report.RiskLevel)
}

func TestDetectRedFlagsNoHoppingBelowThreshold(t *testing.T) {
	resume := profile.ResumeProfile{WorkHistory: shortStints(2, 5)}

	report := DetectRedFlags(resume, profile.JobProfile{})

	assert.Empty(t, report.Flags)
	assert.Equal(t, "minimal", report.RiskLevel)
}

func TestDetectRedFlagsHoppingWindowIsRecentFive(t *testing.T) {
	// Short stints beyond the most recent five entries do not count.
	history := append(shortStints(0, 5), shortStints(4, 4)...)
	resume := profile.ResumeProfile{WorkHistory: history}

	report := DetectRedFlags(resume, profile.JobProfile{})

	assert.Empty(t, report.Flags)
}

func TestDetectRedFlagsEmploymentGap(t *testing.T) {
	resume := profile.ResumeProfile{
		WorkHistory: []profile.WorkEntry{
			{StartDate: "2023-06", EndDate: "present"},
			{StartDate: "2020-01", EndDate: "2022-08"},
		},
	}

	report := DetectRedFlags(resume, profile.JobProfile{})

	require.Len(t, report.Flags, 1)
	assert.Equal(t, FlagEmploymentGap, report.Flags[0].Type)
	assert.Equal(t, employmentGapPenalty, report.Flags[0].Penalty)
}

func TestDetectRedFlagsNoGapWhenContiguous(t *testing.T) {
	resume := profile.ResumeProfile{
		WorkHistory: []profile.WorkEntry{
			{StartDate: "2022-10", EndDate: "present"},
			{StartDate: "2020-01", EndDate: "2022-08"},
		},
	}

	report := DetectRedFlags(resume, profile.JobProfile{})

	assert.Empty(t, report.Flags)
}

func TestDetectRedFlagsUnparseableDatesSkipped(t *testing.T) {
	resume := profile.ResumeProfile{
		WorkHistory: []profile.WorkEntry{
			{StartDate: "Summer 2023", EndDate: "present"},
			{StartDate: "2020-01", EndDate: "unknown"},
		},
	}

	report := DetectRedFlags(resume, profile.JobProfile{})

	assert.Empty(t, report.Flags)
}

func TestDetectRedFlagsOverQualification(t *testing.T) {
	resume := profile.ResumeProfile{
		Experience: profile.ExperienceAnalysis{TotalYears: 20},
	}

	report := DetectRedFlags(resume, profile.JobProfile{})

	require.Len(t, report.Flags, 1)
	assert.Equal(t, FlagOverQualification, report.Flags[0].Type)
	assert.Equal(t, "low", report.RiskLevel)
}

func TestDetectRedFlagsPenaltyClamped(t *testing.T) {
	history := shortStints(4, 5)
	history[4] = profile.WorkEntry{StartDate: "2020-01", EndDate: "2018-01", DurationMonths: 36}
	history[3] = profile.WorkEntry{StartDate: "2022-01", EndDate: "2021-06", DurationMonths: 8}
	resume := profile.ResumeProfile{
		WorkHistory: history,
		Experience:  profile.ExperienceAnalysis{TotalYears: 22},
	}

	report := DetectRedFlags(resume, profile.JobProfile{})

	assert.LessOrEqual(t, report.TotalPenalty, redFlagPenaltyCeiling)
	assert.Equal(t, "high", report.RiskLevel)
}

func TestParseWorkDateShapes(t *testing.T) {
	for _, ok := range []string{"2023-06", "2023-06-15", "2023/06", "Mar 2021", "March 2021", "2019"} {
		_, parsed := parseWorkDate(ok)
		assert.True(t, parsed, "should parse %q", ok)
	}
	for _, bad := range []string{"", "present", "Current", "ongoing", "Summer 2023"} {
		_, parsed := parseWorkDate(bad)
		assert.False(t, parsed, "should not parse %q", bad)
	}
}

func TestMonthsBetween(t *testing.T) {
	a, _ := parseWorkDate("2022-08")
	b, _ := parseWorkDate("2023-06")
	assert.Equal(t, 10, monthsBetween(a, b))
	assert.Equal(t, 0, monthsBetween(b, a))
}

func TestDetectRedFlagsChronologicalHopping(t *testing.T) {
	// Oldest-first listing: the three most recent stints are all short, but
	// they sit at the tail of the slice. Detection must sort before counting.
	resume := profile.ResumeProfile{
		WorkHistory: []profile.WorkEntry{
			{StartDate: "2010-01", EndDate: "2015-01", DurationMonths: 60},
			{StartDate: "2015-02", EndDate: "2018-02", DurationMonths: 36},
			{StartDate: "2018-03", EndDate: "2019-01", DurationMonths: 10},
			{StartDate: "2019-02", EndDate: "2019-10", DurationMonths: 8},
			{StartDate: "2019-11", EndDate: "2020-06", DurationMonths: 7},
			{StartDate: "2020-07", EndDate: "present", DurationMonths: 40},
		},
	}

	report := DetectRedFlags(resume, profile.JobProfile{})

	require.Len(t, report.Flags, 1)
	assert.Equal(t, FlagJobHopping, report.Flags[0].Type)
}

func TestDetectRedFlagsChronologicalGap(t *testing.T) {
	resume := profile.ResumeProfile{
		WorkHistory: []profile.WorkEntry{
			{StartDate: "2020-01", EndDate: "2022-08"},
			{StartDate: "2023-06", EndDate: "present"},
		},
	}

	report := DetectRedFlags(resume, profile.JobProfile{})

	require.Len(t, report.Flags, 1)
	assert.Equal(t, FlagEmploymentGap, report.Flags[0].Type)
}

func TestSortRecentFirst(t *testing.T) {
	history := []profile.WorkEntry{
		{StartDate: "2018-03"},
		{StartDate: "unknown", DurationMonths: 1},
		{StartDate: "2023-06"},
		{StartDate: "", DurationMonths: 2},
		{StartDate: "2020-07"},
	}

	sorted := sortRecentFirst(history)

	require.Len(t, sorted, 5)
	assert.Equal(t, "2023-06", sorted[0].StartDate)
	assert.Equal(t, "2020-07", sorted[1].StartDate)
	assert.Equal(t, "2018-03", sorted[2].StartDate)
	// Unparseable dates keep their relative order at the end.
	assert.Equal(t, 1.0, sorted[3].DurationMonths)
	assert.Equal(t, 2.0, sorted[4].DurationMonths)
	// The input slice is left untouched.
	assert.Equal(t, "2018-03", history[0].StartDate)
}
