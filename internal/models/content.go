package models

// ScrapeResult is either a structured parse or the raw-HTML fallback.
type ScrapeResult struct {
	URL     string `json:"url"`
	Parsed  bool   `json:"parsed"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
	Author  string `json:"author,omitempty"`
	// DatePublished is RFC3339 when the page exposed a parseable date.
	DatePublished string `json:"date_published,omitempty"`
	LeadImageURL  string `json:"lead_image_url,omitempty"`
	Excerpt       string `json:"excerpt,omitempty"`
	WordCount     int    `json:"word_count,omitempty"`
	HTML          string `json:"html,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Draft is an unpersisted post candidate; the editor must still submit it.
type Draft struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Excerpt   string `json:"excerpt"`
	WordCount int    `json:"word_count"`
	ReadTime  int    `json:"read_time"`
	ImageURL  string `json:"image_url,omitempty"`
}

type Translation struct {
	Original       string `json:"original"`
	Translated     string `json:"translated"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

type Upload struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}
