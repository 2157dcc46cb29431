package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lab represents a graded or ungraded assignment attached to a lesson
type Lab struct {
	gorm.Model
	LessonID     uint   `json:"lesson_id" gorm:"index;not null"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Instructions string `json:"instructions" gorm:"type:text"`
	NeedsText    bool   `json:"needs_text" gorm:"default:false"`
	NeedsPhoto   bool   `json:"needs_photo" gorm:"default:false"`
	NeedsVideo   bool   `json:"needs_video" gorm:"default:false"`
	NeedsFile    bool   `json:"needs_file" gorm:"default:false"`
	IsGraded     bool   `json:"is_graded" gorm:"default:false"`
	MaxPoints    int    `json:"max_points" gorm:"default:0"` // meaningful only when IsGraded
	Position     int    `json:"position" gorm:"default:0"`
}

// Lab submission statuses
const (
	SubmissionDraft     = "DRAFT"
	SubmissionSubmitted = "SUBMITTED"
	SubmissionGraded    = "GRADED"
)

// LabSubmission holds a student's evidence for a lab.
// At most one row per (lab, user); resubmission overwrites it.
type LabSubmission struct {
	gorm.Model
	LabID        uint                         `json:"lab_id" gorm:"uniqueIndex:idx_lab_submissions_lab_user;not null"`
	UserID       uint                         `json:"user_id" gorm:"uniqueIndex:idx_lab_submissions_lab_user;not null"`
	TextResponse string                       `json:"text_response" gorm:"type:text"`
	PhotoURLs    datatypes.JSONSlice[string]  `json:"photo_urls"`
	FileURLs     datatypes.JSONSlice[string]  `json:"file_urls"`
	VideoURL     string                       `json:"video_url"`
	Status       string                       `json:"status" gorm:"default:'DRAFT'"` // DRAFT, SUBMITTED, GRADED
	SubmittedAt  *time.Time                   `json:"submitted_at"`
	Grade        *int                         `json:"grade"` // set together with GradedAt/GradedBy
	Feedback     string                       `json:"feedback" gorm:"type:text"`
	GradedAt     *time.Time                   `json:"graded_at"`
	GradedBy     *uint                        `json:"graded_by"`
}
