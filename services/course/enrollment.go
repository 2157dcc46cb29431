package courseService

import (
	"errors"

	"gorm.io/gorm"

	courseModels "kwa/models/course"
)

// Enroll performs the idempotent enrollment get-or-create for a published
// course. The returned bool is true only when this call created the row;
// callers use it to fire enrollment side effects exactly once. A losing
// insert in a concurrent race is converted into fetching the winner's row.
func Enroll(db *gorm.DB, userID, courseID uint) (*courseModels.Enrollment, bool, error) {
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_published = ?", courseID, true).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}

	var existing courseModels.Enrollment
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	enrollment := courseModels.Enrollment{UserID: userID, CourseID: courseID}
	if err := db.Create(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err != nil {
				return nil, false, err
			}
			return &existing, false, nil
		}
		return nil, false, err
	}
	return &enrollment, true, nil
}
