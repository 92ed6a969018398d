package repository

import (
	"careerpath_backend/internal/model"

	"gorm.io/gorm"
)

type BatchRepository struct {
	DB *gorm.DB
}

func NewBatchRepository(db *gorm.DB) *BatchRepository {
	return &BatchRepository{DB: db}
}

func (r *BatchRepository) Create(batch *model.Batch) error {
	return r.DB.Create(batch).Error
}

func (r *BatchRepository) FindByBatchID(batchID string) (*model.Batch, error) {
	var b model.Batch
	err := r.DB.Where("batch_id = ?", batchID).First(&b).Error
	return &b, err
}

func (r *BatchRepository) FindActiveByBatchID(batchID string) (*model.Batch, error) {
	var b model.Batch
	err := r.DB.Where("batch_id = ? AND is_active = ?", batchID, true).First(&b).Error
	return &b, err
}

// ListAvailable returns active batches of the institution matching the
// student's education level (or level-less batches), newest first.
func (r *BatchRepository) ListAvailable(institutionID uint, educationLevel string) ([]model.Batch, error) {
	var bs []model.Batch
	err := r.DB.Where("institution_id = ? AND is_active = ?", institutionID, true).
		Where("education_level = '' OR education_level = ?", educationLevel).
		Order("created_at desc").
		Find(&bs).Error
	return bs, err
}
