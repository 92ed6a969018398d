package scoring

import (
	"math"

	"careerpath_backend/internal/model"
)

// Summary is the deterministic outcome of grading one submission.
type Summary struct {
	CategoryScores    []model.CategoryScore
	TotalCorrect      int
	TotalQuestions    int
	OverallPercentage int
}

// Score grades answers against the ordered question bank. Categories form a
// closed set: a question tagged outside the declared categories is folded
// into the first declared one rather than opening a new bucket. An answers
// slice shorter than the question list counts the trailing questions as
// unanswered; unanswered and mismatched answers are incorrect, never an
// error.
func Score(questions []model.Question, declared []string, answers []*string) Summary {
	type bucket struct {
		correct int
		total   int
	}

	order := make([]string, 0, len(declared))
	buckets := make(map[string]*bucket, len(declared))
	for _, c := range declared {
		if _, ok := buckets[c]; ok {
			continue
		}
		buckets[c] = &bucket{}
		order = append(order, c)
	}

	totalCorrect := 0
	for i, q := range questions {
		cat := q.Category
		if _, ok := buckets[cat]; !ok {
			if len(order) > 0 {
				cat = order[0]
			} else {
				buckets[cat] = &bucket{}
				order = append(order, cat)
			}
		}

		b := buckets[cat]
		b.total++

		if i < len(answers) && answers[i] != nil && *answers[i] == q.CorrectAnswer {
			b.correct++
			totalCorrect++
		}
	}

	scores := make([]model.CategoryScore, 0, len(order))
	for _, cat := range order {
		b := buckets[cat]
		if b.total == 0 {
			continue
		}
		scores = append(scores, model.CategoryScore{
			Category:   cat,
			Correct:    b.correct,
			Total:      b.total,
			Percentage: percentage(b.correct, b.total),
		})
	}

	return Summary{
		CategoryScores:    scores,
		TotalCorrect:      totalCorrect,
		TotalQuestions:    len(questions),
		OverallPercentage: percentage(totalCorrect, len(questions)),
	}
}

func percentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
