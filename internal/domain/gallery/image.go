package gallery

import "time"

// Image is one gallery picture. Order is dense: 0..N-1 across the gallery.
type Image struct {
	ID      string `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	URL     string `gorm:"column:url;not null" json:"url"`
	Caption string `json:"caption"`
	Alt     string `json:"alt"`
	Order   int    `gorm:"column:sort_order;not null;default:0;index" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Image) TableName() string { return "gallery" }
