package courseService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "kwa/models/course"
)

func TestGetOwnedCourseOwnerScoped(t *testing.T) {
	db := setupDB(t)
	crs, chapter, _ := seedCourse(t, db, nil, false, []bool{false})

	// Unpublished draft content is part of the owner's view
	draft := courseModels.Lesson{ChapterID: chapter.ID, Title: "Draft", Position: 2}
	require.NoError(t, db.Create(&draft).Error)

	tree, err := GetOwnedCourse(db, crs.ID, crs.UserID)
	require.NoError(t, err)
	require.Len(t, tree.Chapters, 1)
	assert.Len(t, tree.Chapters[0].Lessons, 2)

	// Any other user gets a not-found, never a forbidden
	_, err = GetOwnedCourse(db, crs.ID, crs.UserID+1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = GetOwnedCourse(db, 9999, crs.UserID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPublishedCourseFiltersDrafts(t *testing.T) {
	db := setupDB(t)
	crs, chapter, _ := seedCourse(t, db, nil, false, []bool{false})

	draftLesson := courseModels.Lesson{ChapterID: chapter.ID, Title: "Draft Lesson", Position: 2}
	require.NoError(t, db.Create(&draftLesson).Error)
	draftChapter := courseModels.Chapter{CourseID: crs.ID, Title: "Draft Chapter", Position: 2}
	require.NoError(t, db.Create(&draftChapter).Error)

	tree, err := GetPublishedCourse(db, crs.ID)
	require.NoError(t, err)
	require.Len(t, tree.Chapters, 1)
	assert.Len(t, tree.Chapters[0].Lessons, 1)
}

func TestGetPublishedCourseHidesUnpublished(t *testing.T) {
	db := setupDB(t)

	draft := courseModels.Course{UserID: 1, Title: "Draft Course"}
	require.NoError(t, db.Create(&draft).Error)

	_, err := GetPublishedCourse(db, draft.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
