package courseService

import "errors"

// Errors returned by the course services. Controllers map these onto
// HTTP statuses; nothing here is retried internally.
var (
	// ErrNotFound covers both absent and unpublished content so callers
	// cannot tell the two apart.
	ErrNotFound = errors.New("course not found")

	// ErrNotEnrolled means the user has no enrollment row for the course.
	ErrNotEnrolled = errors.New("not enrolled in this course")

	// ErrCourseNotCompleted means not every published lesson is completed.
	ErrCourseNotCompleted = errors.New("course not completed yet")
)
