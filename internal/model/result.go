package model

type CategoryScore struct {
	Category   string `json:"category"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

type Weakness struct {
	Category        string     `json:"category"`
	Reason          string     `json:"reason"`
	ImprovementTips StringList `json:"improvementTips"`
}

// Result is one student's single scored attempt for a batch. The composite
// unique index on (student_id, batch_id) is the authoritative guard against
// double submission; the insert is the point of truth.
//
// swagger:model Result
type Result struct {
	UUIDBase
	StudentID    uint   `gorm:"not null;uniqueIndex:idx_results_student_batch" json:"studentId"`
	BatchID      string `gorm:"size:64;not null;uniqueIndex:idx_results_student_batch" json:"batchId"`
	AssessmentID uint   `gorm:"index;not null" json:"assessmentId"`

	CategoryScores    CategoryScoreList `gorm:"type:json;not null" json:"categoryScores"`
	TotalCorrect      int               `gorm:"not null" json:"totalCorrect"`
	TotalQuestions    int               `gorm:"not null" json:"totalQuestions"`
	OverallPercentage int               `gorm:"not null" json:"overallPercentage"`

	Strengths              StringList   `gorm:"type:json" json:"strengths"`
	Weaknesses             WeaknessList `gorm:"type:json" json:"weaknesses"`
	Explanations           StringList   `gorm:"type:json" json:"explanations"`
	ImprovementSuggestions StringList   `gorm:"type:json" json:"improvementSuggestions"`
	RecommendedCareers     StringList   `gorm:"type:json" json:"recommendedCareers"`

	TimeSpent int  `gorm:"default:0" json:"timeSpent"` // seconds
	Attempt   int  `gorm:"default:1" json:"attempt"`
	IsLocked  bool `gorm:"default:true" json:"isLocked"`
}

func (Result) TableName() string {
	return "results"
}
