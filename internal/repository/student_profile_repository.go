package repository

import (
	"careerpath_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StudentProfileRepository struct {
	DB *gorm.DB
}

func NewStudentProfileRepository(db *gorm.DB) *StudentProfileRepository {
	return &StudentProfileRepository{DB: db}
}

// Upsert creates the profile on first save and overwrites it afterwards,
// keyed by the unique user_id index.
func (r *StudentProfileRepository) Upsert(profile *model.StudentProfile) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(profile).Error
}

func (r *StudentProfileRepository) FindByUserID(userID uint) (*model.StudentProfile, error) {
	var p model.StudentProfile
	err := r.DB.Where("user_id = ?", userID).First(&p).Error
	return &p, err
}
