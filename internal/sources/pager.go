package sources

import (
	"context"
	"fmt"

	"github.com/ytcomments/comment-sentiment-bot/internal/models"
)

// CommentPager walks a video's comment pages in source order.
// It is single-use: once exhausted or failed, More reports false.
type CommentPager struct {
	source  CommentSource
	videoID string
	token   string
	done    bool
	err     error
	pages   int
}

// NewCommentPager creates a pager starting from the first page
func NewCommentPager(source CommentSource, videoID string) *CommentPager {
	return &CommentPager{
		source:  source,
		videoID: videoID,
	}
}

// More reports whether another page can be requested
func (p *CommentPager) More() bool {
	return !p.done && p.err == nil
}

// NextPage fetches the next page and advances the cursor
func (p *CommentPager) NextPage(ctx context.Context) ([]models.Comment, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.done {
		return nil, fmt.Errorf("comment pager for video %s is exhausted", p.videoID)
	}

	page, err := p.source.FetchPage(ctx, p.videoID, p.token)
	if err != nil {
		p.err = err
		return nil, err
	}

	p.pages++
	p.token = page.NextPageToken
	if p.token == "" {
		p.done = true
	}

	return page.Comments, nil
}

// Pages returns the number of pages fetched so far
func (p *CommentPager) Pages() int {
	return p.pages
}

// Err returns the error that stopped the pager, if any
func (p *CommentPager) Err() error {
	return p.err
}
