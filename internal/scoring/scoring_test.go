package scoring

import (
	"testing"

	"careerpath_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func logicalQuestions(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{
			Question:      "q",
			Options:       model.StringList{"A", "B", "C", "D"},
			CorrectAnswer: "A",
			Category:      "logical",
		}
	}
	return qs
}

func TestScoreSingleCategory(t *testing.T) {
	qs := logicalQuestions(10)
	answers := make([]*string, 10)
	for i := 0; i < 7; i++ {
		answers[i] = strptr("A")
	}
	for i := 7; i < 10; i++ {
		answers[i] = strptr("B")
	}

	sum := Score(qs, []string{"logical"}, answers)

	assert.Equal(t, 7, sum.TotalCorrect)
	assert.Equal(t, 10, sum.TotalQuestions)
	assert.Equal(t, 70, sum.OverallPercentage)

	require.Len(t, sum.CategoryScores, 1)
	assert.Equal(t, "logical", sum.CategoryScores[0].Category)
	assert.Equal(t, 7, sum.CategoryScores[0].Correct)
	assert.Equal(t, 10, sum.CategoryScores[0].Total)
	assert.Equal(t, 70, sum.CategoryScores[0].Percentage)
}

func TestScoreMixedCategories(t *testing.T) {
	qs := []model.Question{
		{Question: "q1", CorrectAnswer: "A", Category: "logical"},
		{Question: "q2", CorrectAnswer: "A", Category: "logical"},
		{Question: "q3", CorrectAnswer: "A", Category: "technical"},
		{Question: "q4", CorrectAnswer: "A", Category: "technical"},
		{Question: "q5", CorrectAnswer: "A", Category: "communication"},
	}
	answers := []*string{strptr("A"), strptr("B"), strptr("A"), strptr("A"), nil}

	sum := Score(qs, []string{"logical", "technical", "communication"}, answers)

	assert.Equal(t, 3, sum.TotalCorrect)
	assert.Equal(t, 60, sum.OverallPercentage)

	require.Len(t, sum.CategoryScores, 3)
	assert.Equal(t, model.CategoryScore{Category: "logical", Correct: 1, Total: 2, Percentage: 50}, sum.CategoryScores[0])
	assert.Equal(t, model.CategoryScore{Category: "technical", Correct: 2, Total: 2, Percentage: 100}, sum.CategoryScores[1])
	assert.Equal(t, model.CategoryScore{Category: "communication", Correct: 0, Total: 1, Percentage: 0}, sum.CategoryScores[2])
}

func TestScoreUnknownCategoryFoldsIntoFirst(t *testing.T) {
	qs := []model.Question{
		{Question: "q1", CorrectAnswer: "A", Category: "logical"},
		{Question: "q2", CorrectAnswer: "A", Category: "astrology"},
	}
	answers := []*string{strptr("A"), strptr("A")}

	sum := Score(qs, []string{"logical", "technical"}, answers)

	require.Len(t, sum.CategoryScores, 1)
	assert.Equal(t, "logical", sum.CategoryScores[0].Category)
	assert.Equal(t, 2, sum.CategoryScores[0].Total)
	assert.Equal(t, 2, sum.CategoryScores[0].Correct)
}

func TestScoreShortAnswerSlice(t *testing.T) {
	qs := logicalQuestions(5)
	answers := []*string{strptr("A"), strptr("A")}

	sum := Score(qs, []string{"logical"}, answers)

	assert.Equal(t, 2, sum.TotalCorrect)
	assert.Equal(t, 5, sum.TotalQuestions)
	assert.Equal(t, 40, sum.OverallPercentage)
}

func TestScoreAllUnanswered(t *testing.T) {
	qs := logicalQuestions(4)
	answers := []*string{nil, nil, nil, nil}

	sum := Score(qs, []string{"logical"}, answers)

	assert.Equal(t, 0, sum.TotalCorrect)
	assert.Equal(t, 0, sum.OverallPercentage)
	require.Len(t, sum.CategoryScores, 1)
	assert.Equal(t, 0, sum.CategoryScores[0].Percentage)
}

func TestScoreBounds(t *testing.T) {
	qs := logicalQuestions(3)

	all := []*string{strptr("A"), strptr("A"), strptr("A")}
	sum := Score(qs, []string{"logical"}, all)
	assert.Equal(t, 100, sum.OverallPercentage)

	none := []*string{strptr("B"), strptr("B"), strptr("B")}
	sum = Score(qs, []string{"logical"}, none)
	assert.Equal(t, 0, sum.OverallPercentage)
}

func TestScoreRounding(t *testing.T) {
	qs := logicalQuestions(3)
	answers := []*string{strptr("A"), strptr("B"), strptr("B")}

	sum := Score(qs, []string{"logical"}, answers)

	// 1/3 rounds to 33, 2/3 rounds to 67.
	assert.Equal(t, 33, sum.OverallPercentage)

	answers = []*string{strptr("A"), strptr("A"), strptr("B")}
	sum = Score(qs, []string{"logical"}, answers)
	assert.Equal(t, 67, sum.OverallPercentage)
}

func TestScoreDeterministic(t *testing.T) {
	qs := []model.Question{
		{Question: "q1", CorrectAnswer: "A", Category: "logical"},
		{Question: "q2", CorrectAnswer: "B", Category: "technical"},
		{Question: "q3", CorrectAnswer: "C", Category: "communication"},
	}
	answers := []*string{strptr("A"), nil, strptr("C")}
	declared := []string{"logical", "technical", "communication"}

	first := Score(qs, declared, answers)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Score(qs, declared, answers))
	}
}

func TestScoreEmptyBank(t *testing.T) {
	sum := Score(nil, []string{"logical"}, nil)

	assert.Equal(t, 0, sum.TotalQuestions)
	assert.Equal(t, 0, sum.OverallPercentage)
	assert.Empty(t, sum.CategoryScores)
}
