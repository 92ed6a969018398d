package repository

import (
	"errors"
	"strings"

	"careerpath_backend/internal/model"
	"careerpath_backend/internal/util"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

// Create inserts the definition; the unique index on batch_id makes a
// second definition for the same batch fail instead of overwriting.
func (r *AssessmentRepository) Create(a *model.Assessment) error {
	err := r.DB.Create(a).Error
	if isDuplicateKey(err) {
		return util.ErrAssessmentExists
	}
	return err
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *AssessmentRepository) FindByBatchID(batchID string) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Where("batch_id = ?", batchID).First(&a).Error
	return &a, err
}

func (r *AssessmentRepository) Delete(id uint) error {
	res := r.DB.Delete(&model.Assessment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// isDuplicateKey recognizes a violated unique index across the MySQL
// driver (translated by gorm) and the sqlite driver used in tests.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
