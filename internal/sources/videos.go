package sources

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// VideoLookup resolves video metadata through the YouTube Data API client
type VideoLookup struct {
	service *youtube.Service
}

// NewVideoLookup creates a metadata client authenticated with an API key.
// Extra options (for example option.WithEndpoint) are passed through.
func NewVideoLookup(ctx context.Context, apiKey string, opts ...option.ClientOption) (*VideoLookup, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required for video lookup")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}

	return &VideoLookup{service: service}, nil
}

// Title returns the title of a video
func (v *VideoLookup) Title(ctx context.Context, videoID string) (string, error) {
	resp, err := v.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return "", lookupError(videoID, err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return "", &SourceError{
			Source:  "youtube",
			VideoID: videoID,
			Reason:  ReasonNotFound,
			Err:     fmt.Errorf("video %s not found", videoID),
		}
	}

	title := resp.Items[0].Snippet.Title
	logrus.Debugf("Resolved title for video %s: %q", videoID, title)
	return title, nil
}

func lookupError(videoID string, err error) *SourceError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		reason := ""
		if len(apiErr.Errors) > 0 {
			reason = apiErr.Errors[0].Reason
		}
		return &SourceError{
			Source:     "youtube",
			VideoID:    videoID,
			StatusCode: apiErr.Code,
			Reason:     classifyFailure(apiErr.Code, reason),
			Err:        fmt.Errorf("video lookup failed: %w", err),
		}
	}

	return &SourceError{
		Source:  "youtube",
		VideoID: videoID,
		Reason:  ReasonNetwork,
		Err:     fmt.Errorf("video lookup failed: %w", err),
	}
}
