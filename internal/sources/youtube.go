package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/ytcomments/comment-sentiment-bot/internal/models"
)

var videoIDRE = regexp.MustCompile(`(?:youtube\.com/(?:watch\?(?:.*&)?v=|shorts/|embed/|live/|v/)|youtu\.be/)([a-zA-Z0-9_-]{11})(?:[^a-zA-Z0-9_-]|$)`)

// YouTubeSource implements the YouTube Data API commentThreads listing
type YouTubeSource struct {
	apiKey   string
	baseURL  string
	pageSize int
	client   *resty.Client
}

// Ensure YouTubeSource implements CommentSource
var _ CommentSource = (*YouTubeSource)(nil)

type youTubeCommentsResponse struct {
	NextPageToken string           `json:"nextPageToken"`
	Items         []youTubeComment `json:"items"`
}

type youTubeComment struct {
	ID      string `json:"id"`
	Snippet struct {
		TopLevelComment struct {
			ID      string `json:"id"`
			Snippet struct {
				TextDisplay       string `json:"textDisplay"`
				TextOriginal      string `json:"textOriginal"`
				AuthorDisplayName string `json:"authorDisplayName"`
				PublishedAt       string `json:"publishedAt"`
				LikeCount         int    `json:"likeCount"`
			} `json:"snippet"`
		} `json:"topLevelComment"`
	} `json:"snippet"`
}

// NewYouTubeSource creates a new YouTube source against baseURL
// (normally https://www.googleapis.com/youtube/v3)
func NewYouTubeSource(apiKey, baseURL string, pageSize int) *YouTubeSource {
	return &YouTubeSource{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		pageSize: pageSize,
		client: resty.New().
			SetTimeout(30 * time.Second).
			SetHeader("User-Agent", "Comment-Sentiment-Bot/1.0"),
	}
}

func (y *YouTubeSource) GetName() string {
	return "youtube"
}

func (y *YouTubeSource) IsEnabled() bool {
	return y.apiKey != ""
}

// FetchPage requests one page of top-level comment threads in plain-text format
func (y *YouTubeSource) FetchPage(ctx context.Context, videoID, pageToken string) (*CommentPage, error) {
	if !y.IsEnabled() {
		return nil, &SourceError{Source: y.GetName(), VideoID: videoID, Reason: ReasonAuth, Err: fmt.Errorf("missing API key")}
	}

	params := map[string]string{
		"part":       "snippet",
		"videoId":    videoID,
		"maxResults": strconv.Itoa(y.pageSize),
		"textFormat": "plainText",
		"key":        y.apiKey,
	}
	if pageToken != "" {
		params["pageToken"] = pageToken
	}

	resp, err := y.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(y.baseURL + "/commentThreads")

	if err != nil {
		return nil, &SourceError{Source: y.GetName(), VideoID: videoID, Reason: ReasonNetwork, Err: err}
	}

	if resp.StatusCode() != 200 {
		return nil, y.statusError(videoID, resp.StatusCode(), resp.Body())
	}

	var commentsResp youTubeCommentsResponse
	if err := json.Unmarshal(resp.Body(), &commentsResp); err != nil {
		return nil, &SourceError{
			Source:  y.GetName(),
			VideoID: videoID,
			Reason:  ReasonDecode,
			Err:     fmt.Errorf("failed to parse YouTube comments response: %w", err),
		}
	}

	page := &CommentPage{
		Comments:      make([]models.Comment, 0, len(commentsResp.Items)),
		NextPageToken: commentsResp.NextPageToken,
	}
	for _, item := range commentsResp.Items {
		page.Comments = append(page.Comments, y.normalize(item))
	}

	logrus.Debugf("Fetched %d comments for video %s (next page: %t)", len(page.Comments), videoID, page.NextPageToken != "")
	return page, nil
}

func (y *YouTubeSource) normalize(item youTubeComment) models.Comment {
	snippet := item.Snippet.TopLevelComment.Snippet

	comment := models.Comment{
		ID:        item.ID,
		Author:    snippet.AuthorDisplayName,
		Text:      snippet.TextDisplay,
		LikeCount: snippet.LikeCount,
	}
	if comment.Text == "" {
		comment.Text = snippet.TextOriginal
	}
	if comment.LikeCount < 0 {
		comment.LikeCount = 0
	}

	if snippet.PublishedAt != "" {
		publishedAt, err := time.Parse(time.RFC3339, snippet.PublishedAt)
		if err != nil {
			logrus.Debugf("Failed to parse YouTube comment timestamp %q: %v", snippet.PublishedAt, err)
		} else {
			comment.PublishedAt = publishedAt
		}
	}

	return comment
}

func (y *YouTubeSource) statusError(videoID string, status int, body []byte) *SourceError {
	var apiErr googleAPIError
	apiReason := ""
	message := strings.TrimSpace(string(body))

	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Code != 0 {
		message = apiErr.Error.Message
		if len(apiErr.Error.Errors) > 0 {
			apiReason = apiErr.Error.Errors[0].Reason
		}
	}

	return &SourceError{
		Source:     y.GetName(),
		VideoID:    videoID,
		StatusCode: status,
		Reason:     classifyFailure(status, apiReason),
		Err:        fmt.Errorf("youtube comments API returned status %d: %s", status, message),
	}
}

// WatchURL returns the public watch page of a video
func WatchURL(videoID string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
}

// ExtractVideoID accepts either a bare video id or a YouTube URL (watch,
// youtu.be, shorts, embed, live). A URL without a recognizable id yields "".
func ExtractVideoID(input string) string {
	input = strings.TrimSpace(input)

	if m := videoIDRE.FindStringSubmatch(input); len(m) >= 2 {
		return m[1]
	}

	if strings.Contains(input, "/") || strings.Contains(input, "?") {
		return ""
	}

	return input
}
