package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is the proof of course completion for a user.
// One row per (user, course); IssuedAt is set at creation and never changes.
type Certificate struct {
	gorm.Model
	UserID       uint      `json:"user_id" gorm:"uniqueIndex:idx_certificates_user_course;not null"`
	CourseID     uint      `json:"course_id" gorm:"uniqueIndex:idx_certificates_user_course;not null"`
	SerialNumber string    `json:"serial_number" gorm:"unique"`
	IssuedAt     time.Time `json:"issued_at"`
}
