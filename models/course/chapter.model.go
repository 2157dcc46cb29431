package course

import "gorm.io/gorm"

// Chapter represents a section within a course
type Chapter struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    int    `json:"position" gorm:"default:0"` // display/unlock order within course
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsFree      bool   `json:"is_free" gorm:"default:false"` // viewable without enrollment
}
