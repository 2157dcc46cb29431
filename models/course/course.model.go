package course

import "gorm.io/gorm"

// Course represents a learning course authored by an instructor
type Course struct {
	gorm.Model
	UserID      uint     `json:"user_id" gorm:"index;not null"` // owning instructor
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Price       *float64 `json:"price"` // nil means free
	IsPublished bool     `json:"is_published" gorm:"default:false"`
}

// IsFree reports whether the course has no price attached
func (c *Course) IsFree() bool {
	return c.Price == nil || *c.Price <= 0
}
