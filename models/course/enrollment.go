package course

import "gorm.io/gorm"

// Enrollment grants a user access to a course's non-free content.
// One row per (user, course); its existence is the authorization signal.
type Enrollment struct {
	gorm.Model
	UserID   uint `json:"user_id" gorm:"uniqueIndex:idx_enrollments_user_course;not null"`
	CourseID uint `json:"course_id" gorm:"uniqueIndex:idx_enrollments_user_course;not null"`
}
