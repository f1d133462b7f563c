package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screening-backend/internal/profile"
)

func TestRankBatchOrdersByScore(t *testing.T) {
	items := []BatchItem{
		{Filename: "weak.pdf", Score: &ScoreResult{OverallScore: 40}},
		{Filename: "strong.pdf", Score: &ScoreResult{OverallScore: 92}},
		{Filename: "middle.pdf", Score: &ScoreResult{OverallScore: 71}},
	}

	result := RankBatch(items)

	require.Len(t, result.Results, 3)
	assert.Equal(t, "strong.pdf", result.Results[0].Filename)
	assert.Equal(t, "middle.pdf", result.Results[1].Filename)
	assert.Equal(t, "weak.pdf", result.Results[2].Filename)
}

func TestRankBatchWithOneFailure(t *testing.T) {
	items := []BatchItem{
		{Filename: "a.pdf", Score: &ScoreResult{OverallScore: 80}},
		{Filename: "broken.pdf", Error: "extraction failed"},
		{Filename: "b.pdf", Score: &ScoreResult{OverallScore: 60}},
	}

	result := RankBatch(items)

	require.Len(t, result.Results, 3)
	assert.Equal(t, "broken.pdf", result.Results[2].Filename)
	assert.Equal(t, "extraction failed", result.Results[2].Error)

	// Average counts the failed entry as zero.
	assert.InDelta(t, round2((80.0+60.0+0)/3), result.AverageScore, 1e-9)

	// Failures never rank as top candidates.
	require.Len(t, result.TopCandidates, 2)
	for _, c := range result.TopCandidates {
		assert.Empty(t, c.Error)
	}
}

func TestRankBatchTopCandidatesCapped(t *testing.T) {
	var items []BatchItem
	for i := 0; i < 8; i++ {
		items = append(items, BatchItem{
			Filename: string(rune('a'+i)) + ".pdf",
			Score:    &ScoreResult{OverallScore: float64(50 + i)},
		})
	}

	result := RankBatch(items)

	assert.Len(t, result.TopCandidates, topCandidateLimit)
	assert.Equal(t, 57.0, result.TopCandidates[0].Score.OverallScore)
}

func TestRankBatchEmpty(t *testing.T) {
	result := RankBatch(nil)

	assert.Empty(t, result.Results)
	assert.Equal(t, 0.0, result.AverageScore)
	assert.Empty(t, result.TopCandidates)
}

func TestRankBatchDoesNotMutateInput(t *testing.T) {
	items := []BatchItem{
		{Filename: "low.pdf", Score: &ScoreResult{OverallScore: 10}},
		{Filename: "high.pdf", Score: &ScoreResult{OverallScore: 90}},
	}

	_ = RankBatch(items)

	assert.Equal(t, "low.pdf", items[0].Filename)
}

func TestRankBatchZeroScoresExcludedFromTop(t *testing.T) {
	resume := profile.FallbackResumeProfile()
	job := profile.JobProfile{
		RequiredSkills: map[profile.Category][]string{
			profile.CategoryProgrammingLanguages: {"python"},
		},
	}
	scored := ScoreOne(resume, job)

	items := []BatchItem{{Filename: "empty.pdf", Score: &scored}}
	result := RankBatch(items)

	if scored.OverallScore == 0 {
		assert.Empty(t, result.TopCandidates)
	} else {
		assert.Len(t, result.TopCandidates, 1)
	}
}
