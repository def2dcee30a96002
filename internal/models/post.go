package models

import "time"

type Post struct {
	ID          string     `db:"id"           json:"id"`
	Title       string     `db:"title"        json:"title"`
	Slug        string     `db:"slug"         json:"slug"`
	Excerpt     *string    `db:"excerpt"      json:"excerpt,omitempty"`
	Content     string     `db:"content"      json:"content"`
	Author      string     `db:"author"       json:"author"`
	Category    *string    `db:"category"     json:"category,omitempty"`
	ReadTime    *string    `db:"read_time"    json:"read_time,omitempty"`
	ImageURL    *string    `db:"image_url"    json:"image_url,omitempty"`
	ImageAlt    *string    `db:"image_alt"    json:"image_alt,omitempty"`
	Featured    bool       `db:"featured"     json:"featured"`
	Published   bool       `db:"published"    json:"published"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at"   json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"   json:"updated_at"`
}

// swagger:model PostInput
// PostInput is the full editable record; PUT re-submits all of it.
type PostInput struct {
	Title     string `json:"title"     example:"Getting started with Go"`
	Slug      string `json:"slug"      example:"getting-started-with-go"`
	Excerpt   string `json:"excerpt"   example:"A short summary for the card"`
	Content   string `json:"content"   example:"# Heading\n\nBody"`
	Author    string `json:"author"    example:"Jane Doe"`
	Category  string `json:"category"  example:"engineering"`
	ReadTime  string `json:"read_time" example:"5 min read"`
	ImageURL  string `json:"image_url"`
	ImageAlt  string `json:"image_alt"`
	Featured  bool   `json:"featured"`
	Published *bool  `json:"published,omitempty"`
}

type PostFilter struct {
	Published *bool
	Featured  *bool
	Category  string
	Query     string
	Limit     int
	Offset    int
}

type PostList struct {
	Items  []*Post `json:"items"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}
