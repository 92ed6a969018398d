package repository

import (
	"careerpath_backend/internal/model"
	"careerpath_backend/internal/util"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// Create is the single point of truth for attempt uniqueness. Two inserts
// for the same (student, batch) racing each other both reach the database;
// the composite unique index lets exactly one through and the loser gets
// ErrDuplicateAttempt.
func (r *ResultRepository) Create(result *model.Result) error {
	err := r.DB.Create(result).Error
	if isDuplicateKey(err) {
		return util.ErrDuplicateAttempt
	}
	return err
}

func (r *ResultRepository) FindByStudentAndBatch(studentID uint, batchID string) (*model.Result, error) {
	var res model.Result
	err := r.DB.Where("student_id = ? AND batch_id = ?", studentID, batchID).First(&res).Error
	return &res, err
}

func (r *ResultRepository) ExistsForStudentAndBatch(studentID uint, batchID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Result{}).
		Where("student_id = ? AND batch_id = ?", studentID, batchID).
		Count(&count).Error
	return count > 0, err
}

func (r *ResultRepository) ListByBatch(batchID string) ([]model.Result, error) {
	var rs []model.Result
	err := r.DB.Where("batch_id = ?", batchID).Order("created_at asc").Find(&rs).Error
	return rs, err
}
