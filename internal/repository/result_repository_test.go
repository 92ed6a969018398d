package repository

import (
	"sync"
	"testing"

	"careerpath_backend/internal/model"
	"careerpath_backend/internal/util"
	"careerpath_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// One in-memory database per test; a single connection keeps it alive
	// and serializes concurrent writers the way the MySQL index would.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func sampleResult(studentID uint, batchID string) *model.Result {
	return &model.Result{
		StudentID:    studentID,
		BatchID:      batchID,
		AssessmentID: 1,
		CategoryScores: model.CategoryScoreList{
			{Category: "logical", Correct: 7, Total: 10, Percentage: 70},
		},
		TotalCorrect:           7,
		TotalQuestions:         10,
		OverallPercentage:      70,
		Strengths:              model.StringList{"logical"},
		Weaknesses:             model.WeaknessList{},
		Explanations:           model.StringList{"explanation"},
		ImprovementSuggestions: model.StringList{},
		RecommendedCareers:     model.StringList{"Data Analyst"},
		TimeSpent:              300,
		Attempt:                1,
		IsLocked:               true,
	}
}

func TestResultCreateAndRoundTrip(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))

	require.NoError(t, repo.Create(sampleResult(1, "B-1")))

	got, err := repo.FindByStudentAndBatch(1, "B-1")
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, 70, got.OverallPercentage)
	require.Len(t, got.CategoryScores, 1)
	assert.Equal(t, "logical", got.CategoryScores[0].Category)
	assert.Equal(t, model.StringList{"Data Analyst"}, got.RecommendedCareers)
	assert.True(t, got.IsLocked)
}

func TestResultDuplicateInsertRejected(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))

	require.NoError(t, repo.Create(sampleResult(1, "B-1")))

	err := repo.Create(sampleResult(1, "B-1"))
	assert.ErrorIs(t, err, util.ErrDuplicateAttempt)

	// Same student, different batch is a different attempt.
	assert.NoError(t, repo.Create(sampleResult(1, "B-2")))
	// Different student, same batch too.
	assert.NoError(t, repo.Create(sampleResult(2, "B-1")))
}

func TestResultConcurrentDuplicateOneWinner(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Create(sampleResult(7, "B-RACE"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, util.ErrDuplicateAttempt)
		}
	}
	assert.Equal(t, 1, winners)

	var count int64
	repo.DB.Model(&model.Result{}).Where("student_id = ? AND batch_id = ?", 7, "B-RACE").Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestResultExists(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))

	exists, err := repo.ExistsForStudentAndBatch(1, "B-1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Create(sampleResult(1, "B-1")))

	exists, err = repo.ExistsForStudentAndBatch(1, "B-1")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestResultListByBatch(t *testing.T) {
	repo := NewResultRepository(newTestDB(t))

	require.NoError(t, repo.Create(sampleResult(1, "B-1")))
	require.NoError(t, repo.Create(sampleResult(2, "B-1")))
	require.NoError(t, repo.Create(sampleResult(3, "B-2")))

	rs, err := repo.ListByBatch("B-1")
	require.NoError(t, err)
	assert.Len(t, rs, 2)
}

func TestAssessmentOnePerBatch(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t))

	a := &model.Assessment{
		BatchID:         "B-1",
		Slot:            model.Slot{Date: "2026-09-15", StartTime: "10:00", EndTime: "12:00"},
		Mode:            model.ModeManual,
		Categories:      model.StringList{"logical"},
		TimePerQuestion: 60,
		Questions: model.QuestionList{
			{Question: "q", Options: model.StringList{"A", "B", "C", "D"}, CorrectAnswer: "A", Category: "logical"},
		},
	}
	require.NoError(t, repo.Create(a))

	dup := *a
	dup.ID = 0
	err := repo.Create(&dup)
	assert.ErrorIs(t, err, util.ErrAssessmentExists)

	got, err := repo.FindByBatchID("B-1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "A", got.Questions[0].CorrectAnswer)
}

func TestAssessmentDeleteMissing(t *testing.T) {
	repo := NewAssessmentRepository(newTestDB(t))

	err := repo.Delete(12345)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
