package model

// swagger:model StudentProfile
type StudentProfile struct {
	BaseModel
	UserID          uint       `gorm:"uniqueIndex;not null" json:"userId"`
	Phone           string     `gorm:"size:20;not null" json:"phone"`
	Age             int        `gorm:"not null" json:"age"`
	Gender          string     `gorm:"size:10" json:"gender"`
	Education       string     `gorm:"size:20;not null" json:"education"`
	Stream          string     `gorm:"size:100" json:"stream,omitempty"`
	PersonalityType string     `gorm:"size:20" json:"personalityType,omitempty"`
	City            string     `gorm:"size:100" json:"city,omitempty"`
	State           string     `gorm:"size:100" json:"state,omitempty"`
	Interests       string     `gorm:"type:text" json:"interests,omitempty"`
	Skills          StringList `gorm:"type:json" json:"skills"`
	CareerGoal      string     `gorm:"size:255" json:"careerGoal"`
	Completed       bool       `gorm:"default:true" json:"completed"`
}

func (StudentProfile) TableName() string {
	return "student_profiles"
}
