package courseService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "kwa/models/course"
)

func TestIsLessonFree(t *testing.T) {
	tests := []struct {
		name        string
		chapterFree bool
		lessonFree  bool
		want        bool
	}{
		{"paid chapter, paid lesson", false, false, false},
		{"free chapter opens its lessons", true, false, true},
		{"free lesson inside paid chapter", false, true, true},
		{"both free", true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chapter := courseModels.Chapter{IsFree: tt.chapterFree}
			lesson := courseModels.Lesson{IsFree: tt.lessonFree}
			assert.Equal(t, tt.want, IsLessonFree(lesson, chapter))
		})
	}
}

func TestCanViewLessonRequiresEnrollment(t *testing.T) {
	db := setupDB(t)
	_, chapter, lessons := seedCourse(t, db, floatPtr(49.99), false, []bool{false})

	ok, err := CanViewLesson(db, 7, lessons[0], chapter)
	require.NoError(t, err)
	assert.False(t, ok, "paid lesson must be locked without enrollment")

	enrollUser(t, db, 7, chapter.CourseID)

	ok, err = CanViewLesson(db, 7, lessons[0], chapter)
	require.NoError(t, err)
	assert.True(t, ok, "enrollment must unlock the lesson")
}

func TestCanViewLessonFreeWithoutEnrollment(t *testing.T) {
	db := setupDB(t)
	_, chapter, lessons := seedCourse(t, db, floatPtr(49.99), false, []bool{true, false})

	ok, err := CanViewLesson(db, 7, lessons[0], chapter)
	require.NoError(t, err)
	assert.True(t, ok, "free lesson must be viewable without enrollment")

	ok, err = CanViewLesson(db, 7, lessons[1], chapter)
	require.NoError(t, err)
	assert.False(t, ok, "sibling paid lesson stays locked")
}

func TestIsEnrolled(t *testing.T) {
	db := setupDB(t)
	crs, _, _ := seedCourse(t, db, nil, false, []bool{false})

	ok, err := IsEnrolled(db, 3, crs.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	enrollUser(t, db, 3, crs.ID)

	ok, err = IsEnrolled(db, 3, crs.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// Another user's enrollment does not leak
	ok, err = IsEnrolled(db, 4, crs.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
