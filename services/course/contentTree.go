package courseService

import (
	"errors"

	"gorm.io/gorm"

	courseModels "kwa/models/course"
)

// ChapterNode is a chapter with its lessons, ordered by position
type ChapterNode struct {
	courseModels.Chapter
	Lessons []courseModels.Lesson `json:"lessons"`
}

// CourseTree is a course with its chapters and lessons
type CourseTree struct {
	courseModels.Course
	Chapters []ChapterNode `json:"chapters"`
}

// GetPublishedCourse returns the course with only its published chapters and
// lessons, ordered by position at every level. An unpublished or absent
// course yields ErrNotFound either way.
func GetPublishedCourse(db *gorm.DB, courseID uint) (*CourseTree, error) {
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_published = ?", courseID, true).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return loadTree(db, crs, true)
}

// GetOwnedCourse returns the full unfiltered course, but only to its owning
// instructor. Anyone else gets ErrNotFound, not a forbidden, so course
// existence does not leak.
func GetOwnedCourse(db *gorm.DB, courseID uint, ownerID uint) (*CourseTree, error) {
	var crs courseModels.Course
	if err := db.Where("id = ?", courseID).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if crs.UserID != ownerID {
		return nil, ErrNotFound
	}
	return loadTree(db, crs, false)
}

func loadTree(db *gorm.DB, crs courseModels.Course, publishedOnly bool) (*CourseTree, error) {
	chapterQuery := db.Where("course_id = ?", crs.ID)
	if publishedOnly {
		chapterQuery = chapterQuery.Where("is_published = ?", true)
	}

	var chapters []courseModels.Chapter
	if err := chapterQuery.Order("position asc").Find(&chapters).Error; err != nil {
		return nil, err
	}

	tree := &CourseTree{Course: crs, Chapters: make([]ChapterNode, len(chapters))}
	for i, ch := range chapters {
		lessonQuery := db.Where("chapter_id = ?", ch.ID)
		if publishedOnly {
			lessonQuery = lessonQuery.Where("is_published = ?", true)
		}

		var lessons []courseModels.Lesson
		if err := lessonQuery.Order("position asc").Find(&lessons).Error; err != nil {
			return nil, err
		}
		tree.Chapters[i] = ChapterNode{Chapter: ch, Lessons: lessons}
	}

	return tree, nil
}

// PublishedLessonIDs returns the ids of all published lessons under the
// published chapters of a course. This is the lesson set progress and
// certificates are measured against.
func PublishedLessonIDs(db *gorm.DB, courseID uint) ([]uint, error) {
	var chapterIDs []uint
	if err := db.Model(&courseModels.Chapter{}).
		Where("course_id = ? AND is_published = ?", courseID, true).
		Pluck("id", &chapterIDs).Error; err != nil {
		return nil, err
	}
	if len(chapterIDs) == 0 {
		return nil, nil
	}

	var lessonIDs []uint
	if err := db.Model(&courseModels.Lesson{}).
		Where("chapter_id IN ? AND is_published = ?", chapterIDs, true).
		Pluck("id", &lessonIDs).Error; err != nil {
		return nil, err
	}
	return lessonIDs, nil
}
