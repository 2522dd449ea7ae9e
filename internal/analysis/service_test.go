package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ytcomments/comment-sentiment-bot/internal/config"
	"github.com/ytcomments/comment-sentiment-bot/internal/models"
	"github.com/ytcomments/comment-sentiment-bot/internal/report"
	"github.com/ytcomments/comment-sentiment-bot/internal/sentiment"
	"github.com/ytcomments/comment-sentiment-bot/internal/sources"
	"github.com/ytcomments/comment-sentiment-bot/internal/storage"
)

// MockSource is a mock implementation of the comment source
type MockSource struct {
	mock.Mock
}

func (m *MockSource) GetName() string { return "mock" }
func (m *MockSource) IsEnabled() bool { return true }

func (m *MockSource) FetchPage(ctx context.Context, videoID, pageToken string) (*sources.CommentPage, error) {
	args := m.Called(videoID, pageToken)
	page, _ := args.Get(0).(*sources.CommentPage)
	return page, args.Error(1)
}

// MockStorage is a mock implementation of the storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Store(ctx context.Context, name string, data []byte) error {
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockStorage) Retrieve(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(name)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) List(ctx context.Context, prefix string) ([]string, error) {
	args := m.Called(prefix)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, name string) error {
	args := m.Called(name)
	return args.Error(0)
}

// MockNotificationService is a mock implementation of the notification service
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) SendReport(rep *models.Report) error {
	args := m.Called(rep)
	return args.Error(0)
}

func (m *MockNotificationService) SendAlert(alert *models.Alert) error {
	args := m.Called(alert)
	return args.Error(0)
}

// recordingRenderer captures the report instead of laying out a PDF
type recordingRenderer struct {
	calls  int
	report *models.Report
	err    error
}

func (r *recordingRenderer) Render(rep *models.Report, path string) error {
	r.calls++
	r.report = rep
	if r.err != nil {
		return &report.RenderError{Path: path, Err: r.err}
	}
	return os.WriteFile(path, []byte("%PDF-test"), 0o644)
}

type fixedScorer map[string]float64

func (f fixedScorer) Name() string              { return "fixed" }
func (f fixedScorer) Score(text string) float64 { return f[text] }

type stubTitles struct {
	title string
	err   error
}

func (s stubTitles) Title(ctx context.Context, videoID string) (string, error) {
	return s.title, s.err
}

func makeComments(prefix string, n int) []models.Comment {
	comments := make([]models.Comment, n)
	for i := range comments {
		comments[i] = models.Comment{ID: fmt.Sprintf("%s%d", prefix, i), Author: "user", Text: fmt.Sprintf("%s comment %d", prefix, i)}
	}
	return comments
}

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		OutputFile: filepath.Join(t.TempDir(), config.DefaultOutputFile),
		PageSize:   config.MaxPageSize,
	}
}

func TestFetchAllComments_Pagination(t *testing.T) {
	source := &MockSource{}
	source.On("FetchPage", "vid", "").Return(&sources.CommentPage{Comments: makeComments("a", 100), NextPageToken: "p2"}, nil).Once()
	source.On("FetchPage", "vid", "p2").Return(&sources.CommentPage{Comments: makeComments("b", 100), NextPageToken: "p3"}, nil).Once()
	source.On("FetchPage", "vid", "p3").Return(&sources.CommentPage{Comments: nil}, nil).Once()

	comments, pages, err := FetchAllComments(context.Background(), source, "vid")

	require.NoError(t, err)
	assert.Len(t, comments, 200)
	assert.Equal(t, 3, pages)
	assert.Equal(t, "a0", comments[0].ID)
	assert.Equal(t, "a99", comments[99].ID)
	assert.Equal(t, "b0", comments[100].ID)
	assert.Equal(t, "b99", comments[199].ID)
	for _, c := range comments {
		assert.Equal(t, models.SentimentUnset, c.Sentiment)
	}
	source.AssertExpectations(t)
}

func TestFetchAllComments_FailureDiscardsPartialResults(t *testing.T) {
	srcErr := &sources.SourceError{Source: "mock", VideoID: "vid", Reason: sources.ReasonQuota, Err: errors.New("quota exceeded")}

	source := &MockSource{}
	source.On("FetchPage", "vid", "").Return(&sources.CommentPage{Comments: makeComments("a", 100), NextPageToken: "p2"}, nil).Once()
	source.On("FetchPage", "vid", "p2").Return(nil, srcErr).Once()

	comments, _, err := FetchAllComments(context.Background(), source, "vid")

	require.Error(t, err)
	assert.Nil(t, comments)
	assert.True(t, sources.IsSourceError(err))
	source.AssertExpectations(t)
}

func TestFetchAllComments_EmptyVideo(t *testing.T) {
	source := &MockSource{}
	source.On("FetchPage", "vid", "").Return(&sources.CommentPage{}, nil).Once()

	comments, pages, err := FetchAllComments(context.Background(), source, "vid")

	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
	assert.Equal(t, 1, pages)
}

func TestFetchAllComments_EmptyVideoID(t *testing.T) {
	source := &MockSource{}

	_, _, err := FetchAllComments(context.Background(), source, "  ")

	assert.ErrorIs(t, err, ErrEmptyVideoID)
	source.AssertNotCalled(t, "FetchPage", mock.Anything, mock.Anything)
}

func TestAnnotateSentiment(t *testing.T) {
	classifier := sentiment.NewClassifier(fixedScorer{"up": 0.3, "down": -0.2})

	assert.Equal(t, models.SentimentPositive, AnnotateSentiment(classifier, models.Comment{Text: "up"}))
	assert.Equal(t, models.SentimentNegative, AnnotateSentiment(classifier, models.Comment{Text: "down"}))
	assert.Equal(t, models.SentimentNeutral, AnnotateSentiment(classifier, models.Comment{Text: ""}))
	assert.Equal(t, AnnotateSentiment(classifier, models.Comment{Text: "up"}), AnnotateSentiment(classifier, models.Comment{Text: "up"}))
}

func TestAnnotateAll_DerivesFromText(t *testing.T) {
	classifier := sentiment.NewClassifier(fixedScorer{"up": 0.3, "down": -0.5})
	comments := []models.Comment{
		{Text: "up"},
		{Text: "flat"},
		{Text: "up", Sentiment: models.SentimentNegative},
		{Text: "down", Sentiment: models.SentimentPositive},
	}

	AnnotateAll(classifier, comments)

	assert.Equal(t, models.SentimentPositive, comments[0].Sentiment)
	assert.Equal(t, models.SentimentNeutral, comments[1].Sentiment)
	assert.Equal(t, models.SentimentPositive, comments[2].Sentiment)
	assert.Equal(t, models.SentimentNegative, comments[3].Sentiment)
}

func TestService_Run_IgnoresSuppliedSentiment(t *testing.T) {
	source := &MockSource{}
	source.On("FetchPage", "vid", "").Return(&sources.CommentPage{Comments: []models.Comment{
		{Author: "A", Text: "I really love this", Sentiment: models.SentimentNegative},
	}}, nil).Once()

	service := NewService(testConfig(t), source, endToEndClassifier(), &recordingRenderer{})
	rep, err := service.Run(context.Background(), models.AnalysisRequest{VideoID: "vid"})

	require.NoError(t, err)
	assert.Len(t, rep.Positive, 1)
	assert.Empty(t, rep.Negative)
	assert.Equal(t, models.SentimentPositive, rep.Comments[0].Sentiment)
}

func TestFilterByKeyword(t *testing.T) {
	comments := []models.Comment{
		{ID: "1", Text: "I REALLY like it"},
		{ID: "2", Text: "meh"},
		{ID: "3", Text: "really good"},
		{ID: "4", Text: ""},
	}

	tests := []struct {
		name     string
		keyword  string
		expected []string
	}{
		{name: "Empty keyword matches everything", keyword: "", expected: []string{"1", "2", "3", "4"}},
		{name: "Case-insensitive", keyword: "really", expected: []string{"1", "3"}},
		{name: "Upper-case keyword", keyword: "REALLY", expected: []string{"1", "3"}},
		{name: "Substring", keyword: "eh", expected: []string{"2"}},
		{name: "No match", keyword: "absent", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered := FilterByKeyword(comments, tt.keyword)
			ids := make([]string, 0, len(filtered))
			for _, c := range filtered {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}

	assert.Equal(t, "I REALLY like it", comments[0].Text)
	assert.Len(t, comments, 4)
}

func TestPartitionBySentiment(t *testing.T) {
	comments := []models.Comment{
		{ID: "1", Sentiment: models.SentimentPositive},
		{ID: "2", Sentiment: models.SentimentNegative},
		{ID: "3", Sentiment: models.SentimentNeutral},
		{ID: "4", Sentiment: models.SentimentPositive},
	}

	positive, err := PartitionBySentiment(comments, models.SentimentPositive)
	require.NoError(t, err)
	require.Len(t, positive, 2)
	assert.Equal(t, "1", positive[0].ID)
	assert.Equal(t, "4", positive[1].ID)

	negative, err := PartitionBySentiment(comments, models.SentimentNegative)
	require.NoError(t, err)
	require.Len(t, negative, 1)
	assert.Equal(t, "2", negative[0].ID)
}

func TestPartitionBySentiment_Unannotated(t *testing.T) {
	comments := []models.Comment{
		{ID: "1", Sentiment: models.SentimentPositive},
		{ID: "2"},
	}

	_, err := PartitionBySentiment(comments, models.SentimentPositive)
	assert.ErrorIs(t, err, ErrUnannotated)
}

func endToEndSource() *MockSource {
	source := &MockSource{}
	source.On("FetchPage", "vid", "").Return(&sources.CommentPage{Comments: []models.Comment{
		{Author: "A", Text: "I really love this", LikeCount: 5},
		{Author: "B", Text: "I hate this", LikeCount: 1},
	}}, nil).Once()
	return source
}

func endToEndClassifier() *sentiment.Classifier {
	return sentiment.NewClassifier(fixedScorer{
		"I really love this": 0.6,
		"I hate this":        -0.4,
	})
}

func TestService_Run_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	renderer := &recordingRenderer{}

	service := NewService(cfg, endToEndSource(), endToEndClassifier(), renderer)
	rep, err := service.Run(context.Background(), models.AnalysisRequest{VideoID: "vid", Keyword: "really"})

	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)
	assert.Same(t, rep, renderer.report)

	require.Len(t, rep.Comments, 2)
	require.Len(t, rep.Filtered, 1)
	assert.Equal(t, "A", rep.Filtered[0].Author)
	require.Len(t, rep.Positive, 1)
	assert.Equal(t, "A", rep.Positive[0].Author)
	require.Len(t, rep.Negative, 1)
	assert.Equal(t, "B", rep.Negative[0].Author)

	assert.Equal(t, 1, rep.Summary["Positive"])
	assert.Equal(t, 1, rep.Summary["Negative"])
	assert.Equal(t, 0, rep.Summary["Neutral"])
	assert.Equal(t, cfg.OutputFile, rep.OutputPath)
	assert.Empty(t, rep.VideoURL)
	assert.Empty(t, rep.VideoTitle)

	var metrics Metrics
	require.NoError(t, json.Unmarshal([]byte(service.GetMetrics()), &metrics))
	assert.Equal(t, 1, metrics.Runs)
	assert.Equal(t, 2, metrics.TotalComments)
	assert.Equal(t, 1, metrics.FilteredComments)
	assert.Equal(t, 1, metrics.PagesFetched)
	assert.Equal(t, 0, metrics.ErrorCount)
}

func TestService_Run_TitleAndLink(t *testing.T) {
	cfg := testConfig(t)
	cfg.IncludeVideoTitle = true
	cfg.IncludeVideoLink = true

	service := NewService(cfg, endToEndSource(), endToEndClassifier(), &recordingRenderer{}).
		WithTitleLookup(stubTitles{title: "My Video"})

	rep, err := service.Run(context.Background(), models.AnalysisRequest{VideoID: "vid", Keyword: ""})

	require.NoError(t, err)
	assert.Equal(t, "My Video", rep.VideoTitle)
	assert.Equal(t, "https://www.youtube.com/watch?v=vid", rep.VideoURL)
	assert.Len(t, rep.Filtered, 2)
}

func TestService_Run_TitleLookupFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.IncludeVideoTitle = true
	renderer := &recordingRenderer{}

	lookupErr := &sources.SourceError{Source: "youtube", VideoID: "vid", Reason: sources.ReasonNotFound, Err: errors.New("gone")}
	service := NewService(cfg, endToEndSource(), endToEndClassifier(), renderer).
		WithTitleLookup(stubTitles{err: lookupErr})

	_, err := service.Run(context.Background(), models.AnalysisRequest{VideoID: "vid"})

	require.Error(t, err)
	assert.True(t, sources.IsSourceError(err))
	assert.Equal(t, 0, renderer.calls)
}

func TestService_Run_SourceFailure(t *testing.T) {
	cfg := testConfig(t)
	renderer := &recordingRenderer{}
	store := &MockStorage{}
	notifier := &MockNotificationService{}
	notifier.On("SendAlert", mock.MatchedBy(func(a *models.Alert) bool {
		return a.Type == "source_error" && a.VideoID == "vid"
	})).Return(nil).Once()

	source := &MockSource{}
	source.On("FetchPage", "vid", "").Return(&sources.CommentPage{Comments: makeComments("a", 100), NextPageToken: "p2"}, nil).Once()
	source.On("FetchPage", "vid", "p2").Return(nil, &sources.SourceError{Source: "mock", VideoID: "vid", Reason: sources.ReasonAuth, Err: errors.New("bad key")}).Once()

	service := NewService(cfg, source, endToEndClassifier(), renderer).
		WithStorage(store).
		WithNotifications(notifier)

	rep, err := service.Run(context.Background(), models.AnalysisRequest{VideoID: "vid", Keyword: "x"})

	require.Error(t, err)
	assert.Nil(t, rep)
	assert.Equal(t, 0, renderer.calls)
	_, statErr := os.Stat(cfg.OutputFile)
	assert.True(t, os.IsNotExist(statErr))
	store.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "SendReport", mock.Anything)
	notifier.AssertExpectations(t)

	assert.Contains(t, service.GetMetrics(), `"error_count": 1`)
}

func TestService_Run_RenderFailure(t *testing.T) {
	cfg := testConfig(t)
	renderer := &recordingRenderer{err: errors.New("missing font resource")}
	store := &MockStorage{}
	notifier := &MockNotificationService{}
	notifier.On("SendAlert", mock.MatchedBy(func(a *models.Alert) bool {
		return a.Type == "render_error"
	})).Return(nil).Once()

	service := NewService(cfg, endToEndSource(), endToEndClassifier(), renderer).
		WithStorage(store).
		WithNotifications(notifier)

	_, err := service.Run(context.Background(), models.AnalysisRequest{VideoID: "vid", Keyword: "really"})

	require.Error(t, err)
	assert.True(t, report.IsRenderError(err))
	assert.Equal(t, 1, renderer.calls)
	store.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "SendReport", mock.Anything)
	notifier.AssertExpectations(t)
}

func TestService_Run_ArchivesAndDelivers(t *testing.T) {
	cfg := testConfig(t)
	store := &MockStorage{}
	store.On("Store", mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "vid-") && strings.HasSuffix(name, "-comments.json")
	}), mock.Anything).Return(nil).Once()
	store.On("Store", mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "vid-") && strings.HasSuffix(name, ".pdf")
	}), []byte("%PDF-test")).Return(nil).Once()

	notifier := &MockNotificationService{}
	notifier.On("SendReport", mock.MatchedBy(func(rep *models.Report) bool {
		return rep.VideoID == "vid" && rep.OutputPath == cfg.OutputFile
	})).Return(nil).Once()

	service := NewService(cfg, endToEndSource(), endToEndClassifier(), &recordingRenderer{}).
		WithStorage(store).
		WithNotifications(notifier)

	_, err := service.Run(context.Background(), models.AnalysisRequest{VideoID: "vid", Keyword: "really"})

	require.NoError(t, err)
	store.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestService_Run_OutputFileOverride(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(t.TempDir(), "vid-report.pdf")

	rep, err := NewService(cfg, endToEndSource(), endToEndClassifier(), &recordingRenderer{}).
		Run(context.Background(), models.AnalysisRequest{VideoID: "vid", OutputFile: path})

	require.NoError(t, err)
	assert.Equal(t, path, rep.OutputPath)
	assert.FileExists(t, path)
	assert.NoFileExists(t, cfg.OutputFile)
}

func TestService_Run_PrunesArchive(t *testing.T) {
	cfg := testConfig(t)
	cfg.ArchiveRetention = 2

	store := &MockStorage{}
	store.On("Store", mock.Anything, mock.Anything).Return(nil).Twice()
	store.On("List", "vid-").Return([]string{
		"vid-2020-01-01-00-00-00-comments.json",
		"vid-2020-01-01-00-00-00.pdf",
		"vid-2020-02-01-00-00-00-comments.json",
		"vid-2020-02-01-00-00-00.pdf",
		"vid-2099-01-01-00-00-00.pdf",
		"vid-extra-2019-01-01-00-00-00.pdf",
		"vid-notes.txt",
	}, nil).Once()
	store.On("Delete", "vid-2020-01-01-00-00-00-comments.json").Return(nil).Once()
	store.On("Delete", "vid-2020-01-01-00-00-00.pdf").Return(fmt.Errorf("gone: %w", storage.ErrNotFound)).Once()

	service := NewService(cfg, endToEndSource(), endToEndClassifier(), &recordingRenderer{}).WithStorage(store)
	_, err := service.Run(context.Background(), models.AnalysisRequest{VideoID: "vid"})

	require.NoError(t, err)
	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "Delete", 2)

	var metrics Metrics
	require.NoError(t, json.Unmarshal([]byte(service.GetMetrics()), &metrics))
	assert.Equal(t, 0, metrics.ErrorCount)
}

func TestService_Run_RetentionDisabled(t *testing.T) {
	store := &MockStorage{}
	store.On("Store", mock.Anything, mock.Anything).Return(nil).Twice()

	_, err := NewService(testConfig(t), endToEndSource(), endToEndClassifier(), &recordingRenderer{}).
		WithStorage(store).
		Run(context.Background(), models.AnalysisRequest{VideoID: "vid"})

	require.NoError(t, err)
	store.AssertNotCalled(t, "List", mock.Anything)
	store.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestService_ListReports(t *testing.T) {
	names := []string{
		"abc-2024-05-01-09-00-00-comments.json",
		"abc-2024-05-01-09-00-00.pdf",
		"abc-x-2024-05-02-09-00-00.pdf",
		"readme.txt",
	}

	tests := []struct {
		name     string
		videoID  string
		prefix   string
		expected []string
	}{
		{
			name:     "One video",
			videoID:  "abc",
			prefix:   "abc-",
			expected: []string{"abc-2024-05-01-09-00-00-comments.json", "abc-2024-05-01-09-00-00.pdf"},
		},
		{
			name:     "Every video",
			videoID:  "",
			prefix:   "",
			expected: []string{"abc-2024-05-01-09-00-00-comments.json", "abc-2024-05-01-09-00-00.pdf", "abc-x-2024-05-02-09-00-00.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStorage{}
			store.On("List", tt.prefix).Return(names, nil).Once()

			service := NewService(testConfig(t), &MockSource{}, endToEndClassifier(), &recordingRenderer{}).WithStorage(store)
			entries, err := service.ListReports(context.Background(), tt.videoID)

			require.NoError(t, err)
			var got []string
			for _, entry := range entries {
				got = append(got, entry.Name)
			}
			assert.Equal(t, tt.expected, got)
			store.AssertExpectations(t)
		})
	}
}

func TestService_GetReport(t *testing.T) {
	tests := []struct {
		name        string
		report      string
		retrieve    bool
		data        []byte
		retrieveErr error
		expectedErr error
	}{
		{name: "Archived PDF", report: "abc-2024-05-01-09-00-00.pdf", retrieve: true, data: []byte("%PDF-test")},
		{name: "Missing artifact", report: "abc-2024-05-01-09-00-00.pdf", retrieve: true, data: []byte(nil), retrieveErr: fmt.Errorf("x: %w", storage.ErrNotFound), expectedErr: storage.ErrNotFound},
		{name: "Foreign name", report: "secrets.env", expectedErr: storage.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &MockStorage{}
			if tt.retrieve {
				store.On("Retrieve", tt.report).Return(tt.data, tt.retrieveErr).Once()
			}

			service := NewService(testConfig(t), &MockSource{}, endToEndClassifier(), &recordingRenderer{}).WithStorage(store)
			data, err := service.GetReport(context.Background(), tt.report)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.data, data)
			}
			store.AssertExpectations(t)
			if !tt.retrieve {
				store.AssertNotCalled(t, "Retrieve", mock.Anything)
			}
		})
	}
}

func TestService_ReportsWithoutArchive(t *testing.T) {
	service := NewService(testConfig(t), &MockSource{}, endToEndClassifier(), &recordingRenderer{})

	_, err := service.ListReports(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrNoArchive)

	_, err = service.GetReport(context.Background(), "abc-2024-05-01-09-00-00.pdf")
	assert.ErrorIs(t, err, ErrNoArchive)
}

func TestService_Run_DeliveryFailureDoesNotFailRun(t *testing.T) {
	cfg := testConfig(t)
	store := &MockStorage{}
	store.On("Store", mock.Anything, mock.Anything).Return(errors.New("blob unavailable"))

	notifier := &MockNotificationService{}
	notifier.On("SendReport", mock.Anything).Return(errors.New("webhook down")).Once()

	service := NewService(cfg, endToEndSource(), endToEndClassifier(), &recordingRenderer{}).
		WithStorage(store).
		WithNotifications(notifier)

	rep, err := service.Run(context.Background(), models.AnalysisRequest{VideoID: "vid", Keyword: "really"})

	require.NoError(t, err)
	assert.NotNil(t, rep)
	assert.FileExists(t, cfg.OutputFile)

	var metrics Metrics
	require.NoError(t, json.Unmarshal([]byte(service.GetMetrics()), &metrics))
	assert.Equal(t, 3, metrics.ErrorCount)
	assert.Equal(t, 1, metrics.Runs)
}

func TestService_Run_WithPDFRenderer(t *testing.T) {
	cfg := testConfig(t)

	service := NewService(cfg, endToEndSource(), endToEndClassifier(), report.NewPDFRenderer(""))
	rep, err := service.Run(context.Background(), models.AnalysisRequest{VideoID: "vid", Keyword: "really"})

	require.NoError(t, err)
	data, err := os.ReadFile(rep.OutputPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestService_GenerateTestReport(t *testing.T) {
	cfg := testConfig(t)
	cfg.IncludeVideoLink = true
	renderer := &recordingRenderer{}

	service := NewService(cfg, &MockSource{}, endToEndClassifier(), renderer)
	rep, err := service.GenerateTestReport(models.AnalysisRequest{VideoID: "sample", Keyword: "this"}, []models.Comment{
		{Author: "A", Text: "I really love this"},
		{Author: "B", Text: "I hate this", Sentiment: models.SentimentPositive},
		{Author: "C", Text: "no opinion", Sentiment: models.SentimentNegative},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, renderer.calls)
	assert.Len(t, rep.Filtered, 2)
	require.Len(t, rep.Positive, 1)
	assert.Equal(t, "A", rep.Positive[0].Author)
	require.Len(t, rep.Negative, 1)
	assert.Equal(t, "B", rep.Negative[0].Author)
	assert.Equal(t, 1, rep.Summary["Neutral"])
	assert.Equal(t, "https://www.youtube.com/watch?v=sample", rep.VideoURL)
}
