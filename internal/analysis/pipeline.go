package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ytcomments/comment-sentiment-bot/internal/models"
	"github.com/ytcomments/comment-sentiment-bot/internal/sentiment"
	"github.com/ytcomments/comment-sentiment-bot/internal/sources"
)

// ErrEmptyVideoID is returned when a run is requested without a video id
var ErrEmptyVideoID = errors.New("video id must not be empty")

// ErrUnannotated is returned when sections are built from comments that were never classified
var ErrUnannotated = errors.New("comment has no sentiment; annotate before partitioning")

// FetchAllComments drains every comment page of a video in source order.
// Any source failure discards what was collected and returns the error.
func FetchAllComments(ctx context.Context, source sources.CommentSource, videoID string) ([]models.Comment, int, error) {
	if strings.TrimSpace(videoID) == "" {
		return nil, 0, ErrEmptyVideoID
	}

	var comments []models.Comment
	pager := sources.NewCommentPager(source, videoID)

	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			logrus.Errorf("Fetching comments for %s failed on page %d: %v", videoID, pager.Pages()+1, err)
			return nil, pager.Pages(), fmt.Errorf("failed to fetch comments for video %s: %w", videoID, err)
		}
		comments = append(comments, page...)
		logrus.Debugf("Page %d for %s: %d comments (%d total)", pager.Pages(), videoID, len(page), len(comments))
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	return comments, pager.Pages(), nil
}

// AnnotateSentiment derives the sentiment label of a comment from its text
func AnnotateSentiment(classifier *sentiment.Classifier, comment models.Comment) models.Sentiment {
	return classifier.Classify(comment.Text)
}

// AnnotateAll labels every comment from its text. Any label already present
// is overwritten; callers run it once per batch.
func AnnotateAll(classifier *sentiment.Classifier, comments []models.Comment) {
	for i := range comments {
		comments[i].Sentiment = AnnotateSentiment(classifier, comments[i])
	}
}

// FilterByKeyword keeps comments whose text contains keyword, ignoring case.
// An empty keyword matches every comment. The input is not modified.
func FilterByKeyword(comments []models.Comment, keyword string) []models.Comment {
	needle := strings.ToLower(keyword)

	filtered := make([]models.Comment, 0, len(comments))
	for _, comment := range comments {
		if strings.Contains(strings.ToLower(comment.Text), needle) {
			filtered = append(filtered, comment)
		}
	}

	return filtered
}

// PartitionBySentiment returns the comments carrying label, in order.
// Every comment must already be annotated.
func PartitionBySentiment(comments []models.Comment, label models.Sentiment) ([]models.Comment, error) {
	partition := make([]models.Comment, 0)
	for i, comment := range comments {
		if comment.Sentiment == models.SentimentUnset {
			return nil, fmt.Errorf("comment %d (%s): %w", i, comment.ID, ErrUnannotated)
		}
		if comment.Sentiment == label {
			partition = append(partition, comment)
		}
	}

	return partition, nil
}
