package courseService

import (
	"reflect"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kwa/models"
	courseModels "kwa/models/course"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A pooled in-memory sqlite hands every connection its own database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&courseModels.Course{},
		&courseModels.Chapter{},
		&courseModels.Lesson{},
		&courseModels.Lab{},
		&courseModels.LabSubmission{},
		&courseModels.Enrollment{},
		&courseModels.UserProgress{},
		&courseModels.Certificate{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// seedCourse creates a published course with one published chapter and the
// given lessons. Lessons are published unless markUnpublished includes
// their index.
func seedCourse(t *testing.T, db *gorm.DB, price *float64, chapterFree bool, lessonFree []bool) (courseModels.Course, courseModels.Chapter, []courseModels.Lesson) {
	t.Helper()

	crs := courseModels.Course{
		UserID:      1,
		Title:       "Test Course",
		Price:       price,
		IsPublished: true,
	}
	if err := db.Create(&crs).Error; err != nil {
		t.Fatalf("failed to create course: %v", err)
	}

	chapter := courseModels.Chapter{
		CourseID:    crs.ID,
		Title:       "Chapter One",
		Position:    1,
		IsPublished: true,
		IsFree:      chapterFree,
	}
	if err := db.Create(&chapter).Error; err != nil {
		t.Fatalf("failed to create chapter: %v", err)
	}

	lessons := make([]courseModels.Lesson, 0, len(lessonFree))
	for i, free := range lessonFree {
		lesson := courseModels.Lesson{
			ChapterID:   chapter.ID,
			Title:       "Lesson",
			Position:    i + 1,
			IsPublished: true,
			IsFree:      free,
		}
		if err := db.Create(&lesson).Error; err != nil {
			t.Fatalf("failed to create lesson: %v", err)
		}
		lessons = append(lessons, lesson)
	}
	return crs, chapter, lessons
}

func enrollUser(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()
	if err := db.Create(&courseModels.Enrollment{UserID: userID, CourseID: courseID}).Error; err != nil {
		t.Fatalf("failed to enroll user: %v", err)
	}
}

func completeAll(t *testing.T, db *gorm.DB, userID uint, lessons []courseModels.Lesson) {
	t.Helper()
	for _, lesson := range lessons {
		if _, err := SetLessonCompletion(db, userID, lesson.ID, true); err != nil {
			t.Fatalf("failed to complete lesson %d: %v", lesson.ID, err)
		}
	}
}

func floatPtr(f float64) *float64 { return &f }

// hideNextLookup makes the next First for model's type come back empty,
// standing in for a concurrent writer whose row commits after the
// existence check but before the insert. The insert then hits the unique
// index and the service must fall back to fetching the winner's row.
func hideNextLookup(t *testing.T, db *gorm.DB, model interface{}) {
	t.Helper()
	fired := false
	err := db.Callback().Query().After("gorm:query").Register("hide_next_lookup", func(tx *gorm.DB) {
		if fired || reflect.TypeOf(tx.Statement.Dest) != reflect.TypeOf(model) {
			return
		}
		fired = true
		tx.AddError(gorm.ErrRecordNotFound)
	})
	if err != nil {
		t.Fatalf("failed to register query callback: %v", err)
	}
}
