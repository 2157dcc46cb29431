package course

import "gorm.io/gorm"

// UserProgress is the per-user-per-lesson completion fact.
// One row per (user, lesson); toggling overwrites, it never appends history.
type UserProgress struct {
	gorm.Model
	UserID      uint `json:"user_id" gorm:"uniqueIndex:idx_user_progress_user_lesson;not null"`
	LessonID    uint `json:"lesson_id" gorm:"uniqueIndex:idx_user_progress_user_lesson;not null"`
	IsCompleted bool `json:"is_completed" gorm:"default:false"`
}
