package courseService

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	courseModels "kwa/models/course"
)

// IssueCertificate validates eligibility and performs the idempotent
// get-or-create of the certificate row for (user, course). The returned
// bool is true only on first creation; the issuance email hangs off that
// flag so it fires exactly once no matter how often the certificate is
// downloaded. IssuedAt is fixed at creation and reused forever after.
func IssueCertificate(db *gorm.DB, userID, courseID uint) (*courseModels.Certificate, bool, error) {
	enrolled, err := IsEnrolled(db, userID, courseID)
	if err != nil {
		return nil, false, err
	}
	if !enrolled {
		return nil, false, ErrNotEnrolled
	}

	complete, err := IsCourseComplete(db, userID, courseID)
	if err != nil {
		return nil, false, err
	}
	if !complete {
		return nil, false, ErrCourseNotCompleted
	}

	var existing courseModels.Certificate
	err = db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	cert := courseModels.Certificate{
		UserID:       userID,
		CourseID:     courseID,
		SerialNumber: uuid.NewString(),
		IssuedAt:     time.Now(),
	}
	if err := db.Create(&cert).Error; err != nil {
		// Two concurrent first downloads: the unique key on (user, course)
		// decides the winner, the loser serves the winner's certificate.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error; err != nil {
				return nil, false, err
			}
			return &existing, false, nil
		}
		return nil, false, err
	}
	return &cert, true, nil
}
