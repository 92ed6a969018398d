package model

type AssessmentMode string

const (
	ModeManual    AssessmentMode = "manual"
	ModeAutopilot AssessmentMode = "autopilot"
)

// Question is one entry of the per-batch question bank. Options always has
// exactly four entries; CorrectAnswer is one of them.
type Question struct {
	Question      string     `json:"question"`
	Options       StringList `json:"options"`
	CorrectAnswer string     `json:"correctAnswer,omitempty"`
	Category      string     `json:"category"`
}

// Assessment is the per-batch definition: created once, immutable
// thereafter. The unique index on BatchID makes duplicate creation fail at
// the persistence layer instead of overwriting.
//
// swagger:model Assessment
type Assessment struct {
	BaseModel
	BatchID         string         `gorm:"size:64;uniqueIndex;not null" json:"batchId"`
	Slot            Slot           `gorm:"embedded;embeddedPrefix:slot_" json:"slot"`
	CreatedBy       uint           `gorm:"index" json:"createdBy"`
	Mode            AssessmentMode `gorm:"size:20;not null" json:"mode"`
	Categories      StringList     `gorm:"type:json;not null" json:"categories"`
	Difficulty      string         `gorm:"size:20" json:"difficulty"`
	TimePerQuestion int            `gorm:"not null" json:"timePerQuestion"` // seconds
	Questions       QuestionList   `gorm:"type:json;not null" json:"questions"`
	Source          string         `gorm:"size:20" json:"source"`
}

func (Assessment) TableName() string {
	return "assessments"
}
