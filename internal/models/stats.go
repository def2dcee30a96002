package models

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

type DashboardStats struct {
	TotalPosts     int          `json:"total_posts"`
	PublishedPosts int          `json:"published_posts"`
	DraftPosts     int          `json:"draft_posts"`
	PostsPerMonth  []MonthCount `json:"posts_per_month"`
}
