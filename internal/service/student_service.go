package service

import (
	"errors"

	"careerpath_backend/internal/model"
	"careerpath_backend/internal/repository"
	"careerpath_backend/internal/util"

	"gorm.io/gorm"
)

type StudentService struct {
	Users        *repository.UserRepository
	Institutions *repository.InstitutionRepository
	Batches      *repository.BatchRepository
	Profiles     *repository.StudentProfileRepository
}

func NewStudentService(
	users *repository.UserRepository,
	institutions *repository.InstitutionRepository,
	batches *repository.BatchRepository,
	profiles *repository.StudentProfileRepository,
) *StudentService {
	return &StudentService{
		Users:        users,
		Institutions: institutions,
		Batches:      batches,
		Profiles:     profiles,
	}
}

type ProfileRequest struct {
	Phone           string   `json:"phone" binding:"required"`
	Age             int      `json:"age" binding:"required"`
	Gender          string   `json:"gender"`
	Education       string   `json:"education" binding:"required"`
	Stream          string   `json:"stream"`
	PersonalityType string   `json:"personalityType"`
	City            string   `json:"city"`
	State           string   `json:"state"`
	Interests       string   `json:"interests"`
	Skills          []string `json:"skills"`
	CareerGoal      string   `json:"careerGoal"`
}

func (s *StudentService) SaveProfile(userID uint, req ProfileRequest) (*model.StudentProfile, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	profile := &model.StudentProfile{
		UserID:          user.ID,
		Phone:           req.Phone,
		Age:             req.Age,
		Gender:          req.Gender,
		Education:       req.Education,
		Stream:          req.Stream,
		PersonalityType: req.PersonalityType,
		City:            req.City,
		State:           req.State,
		Interests:       req.Interests,
		Skills:          model.StringList(req.Skills),
		CareerGoal:      req.CareerGoal,
		Completed:       true,
	}

	if err := s.Profiles.Upsert(profile); err != nil {
		return nil, err
	}

	user.IsProfileComplete = true
	if err := s.Users.Save(user); err != nil {
		return nil, err
	}

	return profile, nil
}

// SelectInstitution assigns the student to an institution and resets any
// batch membership; the student re-enrolls within the new institution.
func (s *StudentService) SelectInstitution(userID, institutionID uint) error {
	inst, err := s.Institutions.FindByID(institutionID)
	if err != nil || !inst.IsActive {
		return util.ErrInstitutionClosed
	}

	user, err := s.Users.FindByID(userID)
	if err != nil {
		return err
	}

	user.InstitutionID = &inst.ID
	user.BatchID = ""
	user.IsActive = false

	return s.Users.Save(user)
}

type BatchView struct {
	model.Batch
	CurrentStudentCount int64 `json:"currentStudentCount"`
}

// AvailableBatches lists active batches of the student's institution that
// match their education level and that they have not joined yet.
func (s *StudentService) AvailableBatches(userID uint) ([]BatchView, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if user.InstitutionID == nil {
		return []BatchView{}, nil
	}

	profile, err := s.Profiles.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []BatchView{}, nil
		}
		return nil, err
	}

	batches, err := s.Batches.ListAvailable(*user.InstitutionID, profile.Education)
	if err != nil {
		return nil, err
	}

	views := make([]BatchView, 0, len(batches))
	for _, b := range batches {
		if b.BatchID == user.BatchID {
			continue
		}
		count, err := s.Users.CountByBatch(b.BatchID)
		if err != nil {
			return nil, err
		}
		views = append(views, BatchView{Batch: b, CurrentStudentCount: count})
	}
	return views, nil
}

func (s *StudentService) JoinBatch(userID uint, batchID string) error {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return err
	}

	profile, err := s.Profiles.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrProfileIncomplete
		}
		return err
	}

	batch, err := s.Batches.FindActiveByBatchID(batchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrBatchNotFound
		}
		return err
	}

	if user.InstitutionID == nil || *user.InstitutionID != batch.InstitutionID {
		return util.ErrBatchMismatch
	}

	if batch.EducationLevel != "" && batch.EducationLevel != profile.Education {
		return util.ErrBatchLevel
	}

	// Joining the batch you are already in is a no-op.
	if user.BatchID == batch.BatchID {
		return nil
	}

	count, err := s.Users.CountByBatch(batch.BatchID)
	if err != nil {
		return err
	}
	if count >= int64(batch.MaxStudents) {
		return util.ErrBatchFull
	}

	user.BatchID = batch.BatchID
	user.IsActive = true
	return s.Users.Save(user)
}

type BatchStatus struct {
	ProfileComplete bool        `json:"profileComplete"`
	Assigned        bool        `json:"assigned"`
	InstitutionID   *uint       `json:"institutionId,omitempty"`
	BatchID         string      `json:"batchId,omitempty"`
	Slot            *model.Slot `json:"slot,omitempty"`
	UserName        string      `json:"userName"`
}

func (s *StudentService) BatchStatus(userID uint) (*BatchStatus, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	status := &BatchStatus{
		ProfileComplete: user.IsProfileComplete,
		UserName:        user.Name,
	}

	if !user.IsProfileComplete {
		return status, nil
	}

	status.InstitutionID = user.InstitutionID
	if user.InstitutionID == nil || user.BatchID == "" {
		return status, nil
	}

	batch, err := s.Batches.FindByBatchID(user.BatchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return status, nil
		}
		return nil, err
	}

	status.Assigned = true
	status.BatchID = batch.BatchID
	status.Slot = &batch.Slot
	return status, nil
}
