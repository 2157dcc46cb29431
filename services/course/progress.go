package courseService

import (
	"errors"
	"math"

	"gorm.io/gorm"

	courseModels "kwa/models/course"
)

// Progress is the per-course completion summary for one user
type Progress struct {
	CompletedLessons int `json:"completed_lessons"`
	TotalLessons     int `json:"total_lessons"`
	PercentComplete  int `json:"percent_complete"`
}

// SetLessonCompletion records the user's completion state for a lesson.
// The write is an upsert keyed on (user, lesson): repeating a value is a
// no-op, flipping it is last-write-wins. Non-free lessons require an
// enrollment for the owning course.
func SetLessonCompletion(db *gorm.DB, userID, lessonID uint, isCompleted bool) (*courseModels.UserProgress, error) {
	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_published = ?", lessonID, true).First(&lesson).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var chapter courseModels.Chapter
	if err := db.Where("id = ?", lesson.ChapterID).First(&chapter).Error; err != nil {
		return nil, err
	}

	if !IsLessonFree(lesson, chapter) {
		enrolled, err := IsEnrolled(db, userID, chapter.CourseID)
		if err != nil {
			return nil, err
		}
		if !enrolled {
			return nil, ErrNotEnrolled
		}
	}

	var progress courseModels.UserProgress
	err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if err == nil {
		if progress.IsCompleted != isCompleted {
			progress.IsCompleted = isCompleted
			if err := db.Model(&progress).Update("is_completed", isCompleted).Error; err != nil {
				return nil, err
			}
		}
		return &progress, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	progress = courseModels.UserProgress{
		UserID:      userID,
		LessonID:    lessonID,
		IsCompleted: isCompleted,
	}
	if err := db.Create(&progress).Error; err != nil {
		// A concurrent first toggle for the same (user, lesson) won the
		// insert; fall through to updating the winner's row.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error; err != nil {
				return nil, err
			}
			if progress.IsCompleted != isCompleted {
				progress.IsCompleted = isCompleted
				if err := db.Model(&progress).Update("is_completed", isCompleted).Error; err != nil {
					return nil, err
				}
			}
			return &progress, nil
		}
		return nil, err
	}
	return &progress, nil
}

// ComputeProgress recomputes the user's completion summary from scratch
// against the published lesson set. No aggregate is stored anywhere; this
// is the single source of truth for course progress.
func ComputeProgress(db *gorm.DB, userID, courseID uint) (Progress, error) {
	lessonIDs, err := PublishedLessonIDs(db, courseID)
	if err != nil {
		return Progress{}, err
	}
	if len(lessonIDs) == 0 {
		// Empty course: defined as zero percent, never a division by zero
		return Progress{}, nil
	}

	var completed int64
	if err := db.Model(&courseModels.UserProgress{}).
		Where("user_id = ? AND lesson_id IN ? AND is_completed = ?", userID, lessonIDs, true).
		Count(&completed).Error; err != nil {
		return Progress{}, err
	}

	total := len(lessonIDs)
	return Progress{
		CompletedLessons: int(completed),
		TotalLessons:     total,
		PercentComplete:  int(math.Round(float64(completed) / float64(total) * 100)),
	}, nil
}

// IsCourseComplete reports whether the user has completed every published
// lesson of the course. A course with no published lessons is never complete.
func IsCourseComplete(db *gorm.DB, userID, courseID uint) (bool, error) {
	p, err := ComputeProgress(db, userID, courseID)
	if err != nil {
		return false, err
	}
	return p.TotalLessons > 0 && p.CompletedLessons == p.TotalLessons, nil
}
