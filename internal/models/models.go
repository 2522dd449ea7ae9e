package models

import "time"

// Sentiment is the three-way label attached to a comment after annotation
type Sentiment string

const (
	SentimentUnset    Sentiment = ""
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Comment represents one top-level comment on a video
type Comment struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	Text        string    `json:"text"`
	LikeCount   int       `json:"like_count"`
	PublishedAt time.Time `json:"published_at,omitempty"`
	Sentiment   Sentiment `json:"sentiment,omitempty"` // set once by the pipeline
}

// AnalysisRequest describes a single pipeline run
type AnalysisRequest struct {
	VideoID string `json:"video_id"`
	Keyword string `json:"keyword"`

	// OutputFile overrides the configured report path for this run
	OutputFile string `json:"output_file,omitempty"`
}

// Report is the annotated comment set handed to the renderer
type Report struct {
	VideoID     string         `json:"video_id"`
	VideoTitle  string         `json:"video_title,omitempty"`
	VideoURL    string         `json:"video_url,omitempty"`
	Keyword     string         `json:"keyword"`
	GeneratedAt time.Time      `json:"generated_at"`
	Comments    []Comment      `json:"comments"`
	Filtered    []Comment      `json:"filtered"`
	Positive    []Comment      `json:"positive"`
	Negative    []Comment      `json:"negative"`
	Summary     map[string]int `json:"summary"` // sentiment label -> count
	OutputPath  string         `json:"output_path,omitempty"`
}

// TotalComments returns the number of fetched comments
func (r *Report) TotalComments() int {
	return len(r.Comments)
}

// Alert reports a failed run to the configured channels
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // "source_error", "render_error", "error"
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	VideoID   string    `json:"video_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
