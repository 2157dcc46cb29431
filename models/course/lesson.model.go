package course

import "gorm.io/gorm"

// Lesson represents a single piece of content within a chapter
type Lesson struct {
	gorm.Model
	ChapterID   uint   `json:"chapter_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url"`
	MuxAssetID  string `json:"mux_asset_id"`    // opaque id from the video host
	PlaybackID  string `json:"mux_playback_id"` // opaque playback id from the video host
	Position    int    `json:"position" gorm:"default:0"` // order within chapter
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsFree      bool   `json:"is_free" gorm:"default:false"` // opens this lesson even in a paid chapter
}
