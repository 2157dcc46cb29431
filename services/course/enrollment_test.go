package courseService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "kwa/models/course"
)

func TestEnroll(t *testing.T) {
	db := setupDB(t)
	crs, _, _ := seedCourse(t, db, nil, false, []bool{false})

	enrollment, created, err := Enroll(db, 5, crs.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(5), enrollment.UserID)
	assert.Equal(t, crs.ID, enrollment.CourseID)

	// Re-enrolling returns the same row and does not report a creation
	again, created, err := Enroll(db, 5, crs.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, enrollment.ID, again.ID)

	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ?", 5, crs.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestEnrollConcurrentInsert(t *testing.T) {
	db := setupDB(t)
	crs, _, _ := seedCourse(t, db, nil, false, []bool{false})

	// The winner's row already exists, but the existence check misses it,
	// so the insert loses on the (user, course) unique index
	enrollUser(t, db, 5, crs.ID)
	hideNextLookup(t, db, &courseModels.Enrollment{})

	enrollment, created, err := Enroll(db, 5, crs.ID)
	require.NoError(t, err, "a lost insert race must not surface as an error")
	assert.False(t, created, "the losing call must not report a creation")
	assert.Equal(t, uint(5), enrollment.UserID)
	assert.Equal(t, crs.ID, enrollment.CourseID)

	var count int64
	db.Model(&courseModels.Enrollment{}).Where("user_id = ? AND course_id = ?", 5, crs.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestEnrollUnknownCourse(t *testing.T) {
	db := setupDB(t)

	_, _, err := Enroll(db, 5, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnrollUnpublishedCourse(t *testing.T) {
	db := setupDB(t)

	crs := courseModels.Course{UserID: 1, Title: "Draft Course"}
	require.NoError(t, db.Create(&crs).Error)

	// Unpublished courses look absent to enrollment
	_, _, err := Enroll(db, 5, crs.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnrollSeparateUsers(t *testing.T) {
	db := setupDB(t)
	crs, _, _ := seedCourse(t, db, nil, false, []bool{false})

	_, created, err := Enroll(db, 5, crs.ID)
	require.NoError(t, err)
	assert.True(t, created)

	_, created, err = Enroll(db, 6, crs.ID)
	require.NoError(t, err)
	assert.True(t, created, "a different user gets their own enrollment")
}
