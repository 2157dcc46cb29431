package courseService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "kwa/models/course"
)

func TestSetLessonCompletion(t *testing.T) {
	db := setupDB(t)
	crs, _, lessons := seedCourse(t, db, floatPtr(49.99), false, []bool{false})
	enrollUser(t, db, 5, crs.ID)

	progress, err := SetLessonCompletion(db, 5, lessons[0].ID, true)
	require.NoError(t, err)
	assert.True(t, progress.IsCompleted)

	// Repeating the same value is a no-op and keeps a single row
	progress, err = SetLessonCompletion(db, 5, lessons[0].ID, true)
	require.NoError(t, err)
	assert.True(t, progress.IsCompleted)

	var count int64
	db.Model(&courseModels.UserProgress{}).Where("user_id = ? AND lesson_id = ?", 5, lessons[0].ID).Count(&count)
	assert.EqualValues(t, 1, count)

	// Un-completing flips the same row
	progress, err = SetLessonCompletion(db, 5, lessons[0].ID, false)
	require.NoError(t, err)
	assert.False(t, progress.IsCompleted)

	db.Model(&courseModels.UserProgress{}).Where("user_id = ? AND lesson_id = ?", 5, lessons[0].ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSetLessonCompletionNotEnrolled(t *testing.T) {
	db := setupDB(t)
	_, _, lessons := seedCourse(t, db, floatPtr(49.99), false, []bool{false})

	_, err := SetLessonCompletion(db, 5, lessons[0].ID, true)
	assert.ErrorIs(t, err, ErrNotEnrolled)
}

func TestSetLessonCompletionFreeLesson(t *testing.T) {
	db := setupDB(t)
	_, _, lessons := seedCourse(t, db, floatPtr(49.99), false, []bool{true})

	// Free lessons take progress without an enrollment
	progress, err := SetLessonCompletion(db, 5, lessons[0].ID, true)
	require.NoError(t, err)
	assert.True(t, progress.IsCompleted)
}

func TestSetLessonCompletionConcurrentInsert(t *testing.T) {
	db := setupDB(t)
	_, _, lessons := seedCourse(t, db, nil, true, []bool{false})

	// A concurrent first toggle wins the insert with is_completed=false;
	// this call's existence check misses it and its insert loses on the
	// (user, lesson) unique index, so it must update the winner's row
	winner := courseModels.UserProgress{UserID: 5, LessonID: lessons[0].ID, IsCompleted: false}
	require.NoError(t, db.Create(&winner).Error)
	hideNextLookup(t, db, &courseModels.UserProgress{})

	progress, err := SetLessonCompletion(db, 5, lessons[0].ID, true)
	require.NoError(t, err, "a lost insert race must not surface as an error")
	assert.Equal(t, winner.ID, progress.ID)
	assert.True(t, progress.IsCompleted)

	var stored courseModels.UserProgress
	require.NoError(t, db.First(&stored, winner.ID).Error)
	assert.True(t, stored.IsCompleted)

	var count int64
	db.Model(&courseModels.UserProgress{}).Where("user_id = ? AND lesson_id = ?", 5, lessons[0].ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSetLessonCompletionUnknownLesson(t *testing.T) {
	db := setupDB(t)

	_, err := SetLessonCompletion(db, 5, 9999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetLessonCompletionUnpublishedLesson(t *testing.T) {
	db := setupDB(t)
	_, chapter, _ := seedCourse(t, db, nil, true, nil)

	hidden := courseModels.Lesson{ChapterID: chapter.ID, Title: "Draft", Position: 1}
	require.NoError(t, db.Create(&hidden).Error)

	_, err := SetLessonCompletion(db, 5, hidden.ID, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComputeProgress(t *testing.T) {
	db := setupDB(t)
	crs, _, lessons := seedCourse(t, db, nil, true, []bool{false, false, false})
	enrollUser(t, db, 5, crs.ID)

	p, err := ComputeProgress(db, 5, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, Progress{CompletedLessons: 0, TotalLessons: 3, PercentComplete: 0}, p)

	_, err = SetLessonCompletion(db, 5, lessons[0].ID, true)
	require.NoError(t, err)

	p, err = ComputeProgress(db, 5, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, Progress{CompletedLessons: 1, TotalLessons: 3, PercentComplete: 33}, p)

	_, err = SetLessonCompletion(db, 5, lessons[1].ID, true)
	require.NoError(t, err)

	p, err = ComputeProgress(db, 5, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, 67, p.PercentComplete)

	_, err = SetLessonCompletion(db, 5, lessons[2].ID, true)
	require.NoError(t, err)

	p, err = ComputeProgress(db, 5, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, Progress{CompletedLessons: 3, TotalLessons: 3, PercentComplete: 100}, p)
}

func TestComputeProgressIgnoresUnpublished(t *testing.T) {
	db := setupDB(t)
	crs, chapter, lessons := seedCourse(t, db, nil, true, []bool{false})
	enrollUser(t, db, 5, crs.ID)

	// Unpublished sibling must not count toward the total
	hidden := courseModels.Lesson{ChapterID: chapter.ID, Title: "Draft", Position: 2}
	require.NoError(t, db.Create(&hidden).Error)

	_, err := SetLessonCompletion(db, 5, lessons[0].ID, true)
	require.NoError(t, err)

	p, err := ComputeProgress(db, 5, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, Progress{CompletedLessons: 1, TotalLessons: 1, PercentComplete: 100}, p)
}

func TestComputeProgressEmptyCourse(t *testing.T) {
	db := setupDB(t)
	crs, _, _ := seedCourse(t, db, nil, true, nil)

	p, err := ComputeProgress(db, 5, crs.ID)
	require.NoError(t, err)
	assert.Equal(t, Progress{}, p)
}

func TestIsCourseComplete(t *testing.T) {
	db := setupDB(t)
	crs, _, lessons := seedCourse(t, db, nil, true, []bool{false, false})
	enrollUser(t, db, 5, crs.ID)

	done, err := IsCourseComplete(db, 5, crs.ID)
	require.NoError(t, err)
	assert.False(t, done)

	completeAll(t, db, 5, lessons)

	done, err = IsCourseComplete(db, 5, crs.ID)
	require.NoError(t, err)
	assert.True(t, done)

	// Un-completing one lesson revokes completion
	_, err = SetLessonCompletion(db, 5, lessons[0].ID, false)
	require.NoError(t, err)

	done, err = IsCourseComplete(db, 5, crs.ID)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestIsCourseCompleteEmptyCourse(t *testing.T) {
	db := setupDB(t)
	crs, _, _ := seedCourse(t, db, nil, true, nil)

	done, err := IsCourseComplete(db, 5, crs.ID)
	require.NoError(t, err)
	assert.False(t, done, "a course with no published lessons is never complete")
}
