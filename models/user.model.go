package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleLearner = "LEARNER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	ProfileImage     string     `json:"profile_image" gorm:"default:''"`
	Name             string     `json:"name" gorm:"default:''"`
	Email            string     `json:"email" gorm:"unique;not null"`
	Role             string     `json:"role" gorm:"default:'LEARNER'"` // LEARNER, ADMIN
	Password         string     `json:"-" gorm:"not null"`
	StripeCustomerID string     `json:"-" gorm:"index"`
	IsEmailVerified  bool       `json:"is_email_verified" gorm:"default:false"`
	LastLogin        *time.Time `json:"last_login"`
}

// DisplayName returns the name to show on certificates and emails
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
