package courseService

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "kwa/models/course"
)

func TestIssueCertificateRequiresEnrollment(t *testing.T) {
	db := setupDB(t)
	crs, _, _ := seedCourse(t, db, nil, true, []bool{false})

	_, _, err := IssueCertificate(db, 5, crs.ID)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestIssueCertificateRequiresCompletion(t *testing.T) {
	db := setupDB(t)
	crs, _, lessons := seedCourse(t, db, nil, true, []bool{false, false})
	enrollUser(t, db, 5, crs.ID)

	_, _, err := IssueCertificate(db, 5, crs.ID)
	assert.ErrorIs(t, err, ErrCourseNotCompleted)

	// One of two lessons done is still incomplete
	_, err = SetLessonCompletion(db, 5, lessons[0].ID, true)
	require.NoError(t, err)

	_, _, err = IssueCertificate(db, 5, crs.ID)
	assert.ErrorIs(t, err, ErrCourseNotCompleted)
}

func TestIssueCertificate(t *testing.T) {
	db := setupDB(t)
	crs, _, lessons := seedCourse(t, db, nil, true, []bool{false, false})
	enrollUser(t, db, 5, crs.ID)
	completeAll(t, db, 5, lessons)

	cert, created, err := IssueCertificate(db, 5, crs.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, cert.SerialNumber)
	assert.False(t, cert.IssuedAt.IsZero())

	// Downloading again returns the same certificate, same serial, same
	// issue time, and does not report a creation
	again, created, err := IssueCertificate(db, 5, crs.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, cert.ID, again.ID)
	assert.Equal(t, cert.SerialNumber, again.SerialNumber)
	assert.Equal(t, cert.IssuedAt.Unix(), again.IssuedAt.Unix())

	var count int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ? AND course_id = ?", 5, crs.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestIssueCertificateConcurrentInsert(t *testing.T) {
	db := setupDB(t)
	crs, _, lessons := seedCourse(t, db, nil, true, []bool{false})
	enrollUser(t, db, 5, crs.ID)
	completeAll(t, db, 5, lessons)

	// Two first downloads: the winner's certificate commits after this
	// call's existence check, so its insert loses on (user, course)
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	winner := courseModels.Certificate{
		UserID:       5,
		CourseID:     crs.ID,
		SerialNumber: "winner-serial",
		IssuedAt:     issued,
	}
	require.NoError(t, db.Create(&winner).Error)
	hideNextLookup(t, db, &courseModels.Certificate{})

	cert, created, err := IssueCertificate(db, 5, crs.ID)
	require.NoError(t, err, "a lost insert race must not surface as an error")
	assert.False(t, created, "the losing call must never fire the issuance email")
	assert.Equal(t, winner.ID, cert.ID)
	assert.Equal(t, "winner-serial", cert.SerialNumber)
	assert.Equal(t, issued.Unix(), cert.IssuedAt.Unix())

	var count int64
	db.Model(&courseModels.Certificate{}).Where("user_id = ? AND course_id = ?", 5, crs.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestIssueCertificateEmptyCourse(t *testing.T) {
	db := setupDB(t)
	crs, _, _ := seedCourse(t, db, nil, true, nil)
	enrollUser(t, db, 5, crs.ID)

	// A course with no published lessons can never be completed
	_, _, err := IssueCertificate(db, 5, crs.ID)
	assert.ErrorIs(t, err, ErrCourseNotCompleted)
}

func TestIssueCertificateSurvivesUncompletion(t *testing.T) {
	db := setupDB(t)
	crs, _, lessons := seedCourse(t, db, nil, true, []bool{false})
	enrollUser(t, db, 5, crs.ID)
	completeAll(t, db, 5, lessons)

	cert, created, err := IssueCertificate(db, 5, crs.ID)
	require.NoError(t, err)
	assert.True(t, created)

	// Un-completing after issuance does not revoke the stored certificate
	_, err = SetLessonCompletion(db, 5, lessons[0].ID, false)
	require.NoError(t, err)

	var stored courseModels.Certificate
	require.NoError(t, db.First(&stored, cert.ID).Error)
	assert.Equal(t, cert.SerialNumber, stored.SerialNumber)
}
