package model

// swagger:model Institution
type Institution struct {
	BaseModel
	Name     string `gorm:"size:255;not null" json:"name"`
	City     string `gorm:"size:100" json:"city"`
	State    string `gorm:"size:100" json:"state"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}

func (Institution) TableName() string {
	return "institutions"
}
