package model

import "time"

// Slot is the date/start/end window during which a batch's assessment may
// be taken. Date is "2006-01-02", times are "15:04" in server-local time.
type Slot struct {
	Date      string `gorm:"size:10" json:"date"`
	StartTime string `gorm:"size:5" json:"startTime"`
	EndTime   string `gorm:"size:5" json:"endTime"`
}

func (s Slot) StartAt() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", s.Date+" "+s.StartTime, time.Local)
}

func (s Slot) EndAt() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", s.Date+" "+s.EndTime, time.Local)
}

// swagger:model Batch
type Batch struct {
	BaseModel
	BatchID        string `gorm:"size:64;uniqueIndex;not null" json:"batchId"`
	Name           string `gorm:"size:255;not null" json:"name"`
	ClassName      string `gorm:"size:100" json:"className,omitempty"`
	EducationLevel string `gorm:"size:20" json:"educationLevel,omitempty"`
	InstitutionID  uint   `gorm:"index;not null" json:"institutionId"`
	CreatedBy      uint   `gorm:"index" json:"createdBy"`
	Slot           Slot   `gorm:"embedded;embeddedPrefix:slot_" json:"slot"`
	MaxStudents    int    `gorm:"default:50" json:"maxStudents"`
	AllowAutoJoin  bool   `gorm:"default:true" json:"allowAutoJoin"`
	IsActive       bool   `gorm:"default:true" json:"isActive"`
}

func (Batch) TableName() string {
	return "batches"
}
