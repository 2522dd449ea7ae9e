package sources

import (
	"context"

	"github.com/ytcomments/comment-sentiment-bot/internal/models"
)

// CommentSource is the contract for paginated access to a video's top-level comments
type CommentSource interface {
	GetName() string
	IsEnabled() bool
	// FetchPage returns one page of comments. An empty pageToken requests the first page.
	FetchPage(ctx context.Context, videoID, pageToken string) (*CommentPage, error)
}

// CommentPage is one batch of comments plus the cursor for the next batch.
// An empty NextPageToken means the listing is exhausted.
type CommentPage struct {
	Comments      []models.Comment
	NextPageToken string
}
