package repository

import (
	"careerpath_backend/internal/model"

	"gorm.io/gorm"
)

type InstitutionRepository struct {
	DB *gorm.DB
}

func NewInstitutionRepository(db *gorm.DB) *InstitutionRepository {
	return &InstitutionRepository{DB: db}
}

func (r *InstitutionRepository) Create(inst *model.Institution) error {
	return r.DB.Create(inst).Error
}

func (r *InstitutionRepository) FindByID(id uint) (*model.Institution, error) {
	var inst model.Institution
	err := r.DB.First(&inst, id).Error
	return &inst, err
}

func (r *InstitutionRepository) ListActive() ([]model.Institution, error) {
	var insts []model.Institution
	err := r.DB.Where("is_active = ?", true).Order("name asc").Find(&insts).Error
	return insts, err
}
