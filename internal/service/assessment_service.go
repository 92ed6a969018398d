package service

import (
	"errors"
	"fmt"
	"strings"

	"careerpath_backend/internal/config"
	"careerpath_backend/internal/model"
	"careerpath_backend/internal/repository"
	"careerpath_backend/internal/util"

	"gorm.io/gorm"
)

// AssessmentService manages per-batch assessment definitions. The question
// bank arrives finished from the external generation step; this service
// only validates and stores it.
type AssessmentService struct {
	Assessments *repository.AssessmentRepository
	Batches     *repository.BatchRepository
	Cfg         *config.Config
}

func NewAssessmentService(
	assessments *repository.AssessmentRepository,
	batches *repository.BatchRepository,
	cfg *config.Config,
) *AssessmentService {
	return &AssessmentService{
		Assessments: assessments,
		Batches:     batches,
		Cfg:         cfg,
	}
}

type QuestionInput struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
	Category      string   `json:"category"`
}

type CreateAssessmentRequest struct {
	BatchID         string          `json:"batchId" binding:"required"`
	Slot            model.Slot      `json:"slot" binding:"required"`
	Mode            string          `json:"mode"`
	Categories      []string        `json:"categories"`
	Difficulty      string          `json:"difficulty"`
	TimePerQuestion int             `json:"timePerQuestion"`
	Questions       []QuestionInput `json:"questions" binding:"required"`
	Source          string          `json:"source"`
}

// Create stores one definition per batch. A second creation attempt for the
// same batch fails with ErrAssessmentExists; nothing is overwritten.
func (s *AssessmentService) Create(createdBy uint, req CreateAssessmentRequest) (*model.Assessment, error) {
	if _, err := s.Batches.FindByBatchID(req.BatchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBatchNotFound
		}
		return nil, err
	}

	if req.Slot.Date == "" || req.Slot.StartTime == "" || req.Slot.EndTime == "" {
		return nil, fmt.Errorf("%w: slot date, start and end time are required", util.ErrValidation)
	}
	if _, err := req.Slot.EndAt(); err != nil {
		return nil, fmt.Errorf("%w: invalid slot window", util.ErrValidation)
	}

	mode := model.AssessmentMode(req.Mode)
	if mode == "" {
		mode = model.ModeManual
	}
	if mode != model.ModeManual && mode != model.ModeAutopilot {
		return nil, fmt.Errorf("%w: unknown mode %q", util.ErrValidation, req.Mode)
	}

	categories := make([]string, 0, len(req.Categories))
	for _, c := range req.Categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			categories = append(categories, c)
		}
	}
	if len(categories) == 0 {
		categories = []string{"logical"}
	}
	declared := make(map[string]bool, len(categories))
	for _, c := range categories {
		declared[c] = true
	}

	if len(req.Questions) == 0 {
		return nil, fmt.Errorf("%w: questions are required", util.ErrValidation)
	}

	questions := make(model.QuestionList, len(req.Questions))
	for i, q := range req.Questions {
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("%w: question %d must have exactly 4 options", util.ErrValidation, i)
		}

		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: question %d correct answer is not among its options", util.ErrValidation, i)
		}

		// Unknown category tags fold into the first declared category.
		cat := strings.ToLower(strings.TrimSpace(q.Category))
		if cat == "" || !declared[cat] {
			cat = categories[0]
		}

		questions[i] = model.Question{
			Question:      q.Question,
			Options:       model.StringList(q.Options),
			CorrectAnswer: q.CorrectAnswer,
			Category:      cat,
		}
	}

	timePerQuestion := req.TimePerQuestion
	if timePerQuestion <= 0 {
		timePerQuestion = s.Cfg.Assessment.DefaultTimePerQuestion
	}

	source := req.Source
	if source == "" {
		source = string(mode)
	}

	a := &model.Assessment{
		BatchID:         req.BatchID,
		Slot:            req.Slot,
		CreatedBy:       createdBy,
		Mode:            mode,
		Categories:      model.StringList(categories),
		Difficulty:      req.Difficulty,
		TimePerQuestion: timePerQuestion,
		Questions:       questions,
		Source:          source,
	}

	if err := s.Assessments.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Rollback removes a definition, e.g. after a botched import. Results that
// already reference it are left untouched.
func (s *AssessmentService) Rollback(id uint) error {
	return s.Assessments.Delete(id)
}
