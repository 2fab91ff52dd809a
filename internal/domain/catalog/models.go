package catalog

import "time"

// Class is one entry of the "clases" collection.
type Class struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Slug        string `gorm:"not null;index" json:"slug"`
	Description string `json:"description"`
	Label       string `json:"label"`
	ImageURL    string `gorm:"column:image_url" json:"image_url"`
	Color       string `json:"color"`
	Teacher     string `json:"teacher"`
	Instrument  string `json:"instrument"`
	Schedule    string `json:"schedule"`
	SortIndex   int    `gorm:"not null;default:0" json:"sort_index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewsItem is one entry of the "noticias" collection.
type NewsItem struct {
	ID          string     `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"not null;index" json:"slug"`
	Description string     `json:"description"`
	Body        string     `json:"body"`
	Label       string     `json:"label"`
	ImageURL    string     `gorm:"column:image_url" json:"image_url"`
	Color       string     `json:"color"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (NewsItem) TableName() string { return "news" }

// ClassInput is an upsert request. Nil fields are left untouched on merge.
// Slug is accepted for compatibility with older clients and ignored.
type ClassInput struct {
	ID          string  `json:"id"`
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Label       *string `json:"label"`
	ImageURL    *string `json:"image_url"`
	Color       *string `json:"color"`
	Teacher     *string `json:"teacher"`
	Instrument  *string `json:"instrument"`
	Schedule    *string `json:"schedule"`
	SortIndex   *int    `json:"sort_index"`
}

type NewsInput struct {
	ID          string     `json:"id"`
	Title       *string    `json:"title"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	Body        *string    `json:"body"`
	Label       *string    `json:"label"`
	ImageURL    *string    `json:"image_url"`
	Color       *string    `json:"color"`
	PublishedAt *time.Time `json:"published_at"`
}
