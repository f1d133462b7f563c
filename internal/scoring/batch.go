package scoring

import "sort"

// BatchItem is one resume's outcome within a batch: either a score or an
// error marker, never both.
type BatchItem struct {
	Filename string       `json:"filename"`
	Score    *ScoreResult `json:"score,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// BatchResult ranks a batch of scored resumes against one job.
type BatchResult struct {
	Results       []BatchItem `json:"results"`
	AverageScore  float64     `json:"average_score"`
	TopCandidates []BatchItem `json:"top_candidates,omitempty"`
}

const topCandidateLimit = 5

func (b BatchItem) overall() float64 {
	if b.Score == nil {
		return 0
	}
	return b.Score.OverallScore
}

// RankBatch orders batch items by score descending and computes summary
// figures. Failed items rank at the bottom with a zero score; the average
// includes those zeros so a noisy batch reads as weaker, not smaller.
func RankBatch(items []BatchItem) BatchResult {
	ranked := make([]BatchItem, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].overall() > ranked[j].overall()
	})

	var sum float64
	for _, item := range ranked {
		sum += item.overall()
	}
	average := 0.0
	if len(ranked) > 0 {
		average = round2(sum / float64(len(ranked)))
	}

	var top []BatchItem
	for _, item := range ranked {
		if len(top) == topCandidateLimit {
			break
		}
		if item.Error == "" && item.overall() > 0 {
			top = append(top, item)
		}
	}

	return BatchResult{
		Results:       ranked,
		AverageScore:  average,
		TopCandidates: top,
	}
}
