package model

import "time"

type UserRole string

const (
	Student    UserRole = "student"
	Admin      UserRole = "admin"
	SuperAdmin UserRole = "superadmin"
)

// swagger:model User
type User struct {
	BaseModel
	Name              string    `gorm:"size:100;not null" json:"name"`
	Email             string    `gorm:"size:100;unique;not null" json:"email"`
	Password          string    `gorm:"size:100;not null" json:"-"`
	Role              UserRole  `gorm:"size:20;default:'student'" json:"role"`
	InstitutionID     *uint     `gorm:"index" json:"institutionId,omitempty"`
	BatchID           string    `gorm:"size:64;index" json:"batchId,omitempty"`
	IsProfileComplete bool      `gorm:"default:false" json:"isProfileComplete"`
	IsActive          bool      `gorm:"default:true" json:"isActive"`
	LastLogin         time.Time `gorm:"autoCreateTime" json:"lastLogin"`
	LastSeen          time.Time `gorm:"autoCreateTime" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
