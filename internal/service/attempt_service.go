package service

import (
	"errors"
	"time"

	"careerpath_backend/internal/career"
	"careerpath_backend/internal/model"
	"careerpath_backend/internal/repository"
	"careerpath_backend/internal/scoring"
	"careerpath_backend/internal/util"

	"gorm.io/gorm"
)

// Locked reasons surfaced by the read path, in priority order.
const (
	ReasonJoinBatchFirst   = "Join batch first"
	ReasonBatchInactive    = "Batch inactive"
	ReasonNotCreated       = "Assessment not created yet"
	ReasonAlreadyAttempted = "Assessment already attempted"
	ReasonSlotEnded        = "Assessment slot ended"
)

// AttemptService is the attempt gate: it owns the read path that decides
// whether the exam may be shown, and the write path that accepts exactly
// one scored submission per (student, batch).
type AttemptService struct {
	Users       *repository.UserRepository
	Batches     *repository.BatchRepository
	Assessments *repository.AssessmentRepository
	Profiles    *repository.StudentProfileRepository
	Results     *repository.ResultRepository
	Engine      *career.Engine
	now         func() time.Time
}

func NewAttemptService(
	users *repository.UserRepository,
	batches *repository.BatchRepository,
	assessments *repository.AssessmentRepository,
	profiles *repository.StudentProfileRepository,
	results *repository.ResultRepository,
	engine *career.Engine,
) *AttemptService {
	return &AttemptService{
		Users:       users,
		Batches:     batches,
		Assessments: assessments,
		Profiles:    profiles,
		Results:     results,
		Engine:      engine,
		now:         time.Now,
	}
}

type QuestionView struct {
	Question string           `json:"question"`
	Options  model.StringList `json:"options"`
	Category string           `json:"category"`
}

type AssessmentView struct {
	ID              uint             `json:"id"`
	BatchID         string           `json:"batchId"`
	Categories      model.StringList `json:"categories"`
	TimePerQuestion int              `json:"timePerQuestion"`
	Questions       []QuestionView   `json:"questions"`
}

type FetchResponse struct {
	Locked          bool            `json:"locked"`
	Reason          string          `json:"reason,omitempty"`
	Assessment      *AssessmentView `json:"assessment,omitempty"`
	TimePerQuestion int             `json:"timePerQuestion,omitempty"`
	Slot            *model.Slot     `json:"slot,omitempty"`
	ServerTime      *time.Time      `json:"serverTime,omitempty"`
}

func locked(reason string) *FetchResponse {
	return &FetchResponse{Locked: true, Reason: reason}
}

// FetchForStudent decides whether the exam UI may render. Correct answers
// never leave the server on this path.
func (s *AttemptService) FetchForStudent(studentID uint) (*FetchResponse, error) {
	user, err := s.Users.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if user.BatchID == "" {
		return locked(ReasonJoinBatchFirst), nil
	}

	batch, err := s.Batches.FindActiveByBatchID(user.BatchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return locked(ReasonBatchInactive), nil
		}
		return nil, err
	}

	assessment, err := s.Assessments.FindByBatchID(batch.BatchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return locked(ReasonNotCreated), nil
		}
		return nil, err
	}

	exists, err := s.Results.ExistsForStudentAndBatch(user.ID, user.BatchID)
	if err != nil {
		return nil, err
	}
	if exists {
		return locked(ReasonAlreadyAttempted), nil
	}

	end, err := assessment.Slot.EndAt()
	if err != nil {
		return nil, err
	}
	now := s.now()
	if now.After(end) {
		resp := locked(ReasonSlotEnded)
		resp.Slot = &assessment.Slot
		return resp, nil
	}

	view := &AssessmentView{
		ID:              assessment.ID,
		BatchID:         assessment.BatchID,
		Categories:      assessment.Categories,
		TimePerQuestion: assessment.TimePerQuestion,
		Questions:       make([]QuestionView, len(assessment.Questions)),
	}
	for i, q := range assessment.Questions {
		view.Questions[i] = QuestionView{
			Question: q.Question,
			Options:  q.Options,
			Category: q.Category,
		}
	}

	return &FetchResponse{
		Locked:          false,
		Assessment:      view,
		TimePerQuestion: assessment.TimePerQuestion,
		Slot:            &assessment.Slot,
		ServerTime:      &now,
	}, nil
}

type SubmitRequest struct {
	Answers   []*string `json:"answers"`
	TimeSpent int       `json:"timeSpent"`
}

// Submit validates fully before any computation, then scores, derives the
// career profile and persists one immutable Result in a single insert. The
// existence pre-check is advisory; the unique index behind Results.Create
// is the authoritative guard, so a concurrent duplicate loses with
// ErrDuplicateAttempt instead of silently succeeding twice.
func (s *AttemptService) Submit(studentID uint, req SubmitRequest) (*model.Result, error) {
	user, err := s.Users.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if user.BatchID == "" {
		return nil, util.ErrNotAssigned
	}

	if req.Answers == nil {
		return nil, util.ErrValidation
	}

	exists, err := s.Results.ExistsForStudentAndBatch(user.ID, user.BatchID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateAttempt
	}

	assessment, err := s.Assessments.FindByBatchID(user.BatchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentUnavailable
		}
		return nil, err
	}
	if len(assessment.Questions) == 0 {
		return nil, util.ErrAssessmentUnavailable
	}

	if _, err := s.Profiles.FindByUserID(user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProfileIncomplete
		}
		return nil, err
	}

	summary := scoring.Score(assessment.Questions, assessment.Categories, req.Answers)
	profile := s.Engine.Derive(summary.CategoryScores)

	timeSpent := req.TimeSpent
	if timeSpent < 0 {
		timeSpent = 0
	}

	result := &model.Result{
		StudentID:    user.ID,
		BatchID:      user.BatchID,
		AssessmentID: assessment.ID,

		CategoryScores:    model.CategoryScoreList(summary.CategoryScores),
		TotalCorrect:      summary.TotalCorrect,
		TotalQuestions:    summary.TotalQuestions,
		OverallPercentage: summary.OverallPercentage,

		Strengths:              model.StringList(profile.Strengths),
		Weaknesses:             model.WeaknessList(profile.Weaknesses),
		Explanations:           model.StringList(profile.Explanations),
		ImprovementSuggestions: model.StringList(profile.ImprovementSuggestions),
		RecommendedCareers:     model.StringList(profile.RecommendedCareers),

		TimeSpent: timeSpent,
		Attempt:   1,
		IsLocked:  true,
	}

	if err := s.Results.Create(result); err != nil {
		return nil, err
	}
	return result, nil
}

// ResultForStudent returns the stored attempt, or ErrResultNotAvailable;
// never a partially computed one.
func (s *AttemptService) ResultForStudent(studentID uint) (*model.Result, error) {
	user, err := s.Users.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if user.BatchID == "" {
		return nil, util.ErrResultNotAvailable
	}

	result, err := s.Results.FindByStudentAndBatch(user.ID, user.BatchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotAvailable
		}
		return nil, err
	}
	return result, nil
}

type CategoryAverage struct {
	Category          string `json:"category"`
	AveragePercentage int    `json:"averagePercentage"`
}

type BatchAnalytics struct {
	Submissions      int               `json:"submissions"`
	AverageScore     int               `json:"averageScore"`
	CategoryAverages []CategoryAverage `json:"categoryAverages"`
}

func (s *AttemptService) BatchAnalytics(batchID string) (*BatchAnalytics, error) {
	results, err := s.Results.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}

	analytics := &BatchAnalytics{CategoryAverages: []CategoryAverage{}}
	if len(results) == 0 {
		return analytics, nil
	}

	type agg struct {
		sum   int
		count int
	}
	order := []string{}
	byCategory := map[string]*agg{}
	total := 0

	for _, r := range results {
		total += r.OverallPercentage
		for _, c := range r.CategoryScores {
			a, ok := byCategory[c.Category]
			if !ok {
				a = &agg{}
				byCategory[c.Category] = a
				order = append(order, c.Category)
			}
			a.sum += c.Percentage
			a.count++
		}
	}

	analytics.Submissions = len(results)
	analytics.AverageScore = roundDiv(total, len(results))
	for _, cat := range order {
		a := byCategory[cat]
		analytics.CategoryAverages = append(analytics.CategoryAverages, CategoryAverage{
			Category:          cat,
			AveragePercentage: roundDiv(a.sum, a.count),
		})
	}
	return analytics, nil
}

func roundDiv(sum, count int) int {
	if count == 0 {
		return 0
	}
	return (sum + count/2) / count
}
