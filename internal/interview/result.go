package interview

// QuestionResult is one evaluated exchange. Score and Comment always come from
// the first evaluation of the turn, even when the answer text grew through
// follow-ups afterwards.
type QuestionResult struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
	Comment  string `json:"comment"`
	FollowUp string `json:"follow_up"`
	Summary  string `json:"summary"`
}

// Results is the ordered, append-only collection of a session's outcomes.
type Results struct {
	Items []*QuestionResult
}

func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

func (r *Results) Append(result *QuestionResult) {
	r.Items = append(r.Items, result)
}

// Average returns the mean score across all results. The second return value
// is false when no results were recorded, so callers never divide by zero.
func (r *Results) Average() (float64, bool) {
	if r.Len() == 0 {
		return 0, false
	}

	sum := 0
	for _, result := range r.Items {
		sum += result.Score
	}

	return float64(sum) / float64(r.Len()), true
}
