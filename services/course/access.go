package courseService

import (
	"errors"

	"gorm.io/gorm"

	courseModels "kwa/models/course"
)

// IsLessonFree reports whether a lesson is viewable without enrollment.
// Either flag opens it: a free chapter opens all its lessons, and a free
// lesson opens itself even inside a paid chapter.
func IsLessonFree(lesson courseModels.Lesson, chapter courseModels.Chapter) bool {
	return chapter.IsFree || lesson.IsFree
}

// CanViewLesson decides whether the user may view the lesson right now.
// Free lessons are always viewable; everything else requires an enrollment
// row for the chapter's course. The decision is stateless and must be
// re-evaluated on every request, since enrollment can change between calls.
func CanViewLesson(db *gorm.DB, userID uint, lesson courseModels.Lesson, chapter courseModels.Chapter) (bool, error) {
	if IsLessonFree(lesson, chapter) {
		return true, nil
	}
	return IsEnrolled(db, userID, chapter.CourseID)
}

// IsEnrolled reports whether an enrollment row exists for (user, course)
func IsEnrolled(db *gorm.DB, userID, courseID uint) (bool, error) {
	var enrollment courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
