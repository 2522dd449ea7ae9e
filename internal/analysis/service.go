package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ytcomments/comment-sentiment-bot/internal/config"
	"github.com/ytcomments/comment-sentiment-bot/internal/models"
	"github.com/ytcomments/comment-sentiment-bot/internal/notifications"
	"github.com/ytcomments/comment-sentiment-bot/internal/report"
	"github.com/ytcomments/comment-sentiment-bot/internal/sentiment"
	"github.com/ytcomments/comment-sentiment-bot/internal/sources"
	"github.com/ytcomments/comment-sentiment-bot/internal/storage"
)

// ErrNoArchive is returned by the report listing calls when no storage backend is attached
var ErrNoArchive = errors.New("report archive is not configured")

// TitleLookup resolves a video's title
type TitleLookup interface {
	Title(ctx context.Context, videoID string) (string, error)
}

// Service runs the comment ingestion and annotation pipeline
type Service struct {
	config              *config.Config
	source              sources.CommentSource
	classifier          *sentiment.Classifier
	renderer            report.Renderer
	titles              TitleLookup
	storage             storage.StorageInterface
	notificationService notifications.NotificationInterface
	metrics             *Metrics
	runMu               sync.Mutex
	mu                  sync.RWMutex
}

// Metrics holds pipeline metrics
type Metrics struct {
	Runs               int            `json:"runs"`
	LastRun            time.Time      `json:"last_run"`
	LastRunDuration    string         `json:"last_run_duration"`
	LastVideoID        string         `json:"last_video_id"`
	PagesFetched       int            `json:"pages_fetched"`
	TotalComments      int            `json:"total_comments"`
	FilteredComments   int            `json:"filtered_comments"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	ErrorCount         int            `json:"error_count"`
	LastError          string         `json:"last_error,omitempty"`
}

// NewService creates a pipeline service. Title lookup, storage and
// notifications are optional and attached with the With* methods.
func NewService(cfg *config.Config, source sources.CommentSource, classifier *sentiment.Classifier, renderer report.Renderer) *Service {
	return &Service{
		config:     cfg,
		source:     source,
		classifier: classifier,
		renderer:   renderer,
		metrics: &Metrics{
			SentimentBreakdown: make(map[string]int),
		},
	}
}

// WithTitleLookup enables the video title in report headers
func (s *Service) WithTitleLookup(titles TitleLookup) *Service {
	s.titles = titles
	return s
}

// WithStorage archives every rendered report
func (s *Service) WithStorage(store storage.StorageInterface) *Service {
	s.storage = store
	return s
}

// WithNotifications delivers every rendered report
func (s *Service) WithNotifications(n notifications.NotificationInterface) *Service {
	s.notificationService = n
	return s
}

// Run fetches, annotates, filters and renders the comments of one video.
// On failure nothing is written and the error is returned unchanged in kind
// (sources.SourceError or report.RenderError).
func (s *Service) Run(ctx context.Context, req models.AnalysisRequest) (*models.Report, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	logrus.Infof("Starting analysis of video %s (keyword %q)", req.VideoID, req.Keyword)

	comments, pages, err := FetchAllComments(ctx, s.source, req.VideoID)
	if err != nil {
		s.recordFailure(req, err)
		return nil, err
	}
	logrus.Infof("Fetched %d comments across %d pages", len(comments), pages)

	AnnotateAll(s.classifier, comments)
	logrus.Infof("Annotated %d comments with %s sentiment", len(comments), s.classifier.ScorerName())

	filtered := FilterByKeyword(comments, req.Keyword)
	logrus.Infof("Keyword %q matched %d comments", req.Keyword, len(filtered))

	rep, err := s.generateReport(req, comments, filtered)
	if err != nil {
		s.recordFailure(req, err)
		return nil, err
	}

	if err := s.decorateReport(ctx, rep); err != nil {
		s.recordFailure(req, err)
		return nil, err
	}

	path := s.config.OutputFile
	if req.OutputFile != "" {
		path = req.OutputFile
	}
	if err := s.renderer.Render(rep, path); err != nil {
		s.recordFailure(req, err)
		return nil, err
	}
	rep.OutputPath = path

	s.archiveReport(ctx, rep)
	s.deliverReport(rep)

	s.updateMetrics(rep, pages, time.Since(start))
	logrus.Infof("Analysis of video %s completed in %v", req.VideoID, time.Since(start))
	return rep, nil
}

func (s *Service) generateReport(req models.AnalysisRequest, comments, filtered []models.Comment) (*models.Report, error) {
	positive, err := PartitionBySentiment(comments, models.SentimentPositive)
	if err != nil {
		return nil, err
	}
	negative, err := PartitionBySentiment(comments, models.SentimentNegative)
	if err != nil {
		return nil, err
	}

	summary := map[string]int{
		string(models.SentimentPositive): 0,
		string(models.SentimentNegative): 0,
		string(models.SentimentNeutral):  0,
	}
	for _, comment := range comments {
		summary[string(comment.Sentiment)]++
	}

	return &models.Report{
		VideoID:     req.VideoID,
		Keyword:     req.Keyword,
		GeneratedAt: time.Now(),
		Comments:    comments,
		Filtered:    filtered,
		Positive:    positive,
		Negative:    negative,
		Summary:     summary,
	}, nil
}

func (s *Service) decorateReport(ctx context.Context, rep *models.Report) error {
	if s.config.IncludeVideoLink {
		rep.VideoURL = sources.WatchURL(rep.VideoID)
	}

	if s.config.IncludeVideoTitle && s.titles != nil {
		title, err := s.titles.Title(ctx, rep.VideoID)
		if err != nil {
			return fmt.Errorf("failed to look up video title: %w", err)
		}
		rep.VideoTitle = title
	}

	return nil
}

// archiveReport stores the rendered artifact and the annotated comments,
// then applies the retention limit. The local report already exists, so
// failures are logged, not returned.
func (s *Service) archiveReport(ctx context.Context, rep *models.Report) {
	if s.storage == nil {
		return
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		s.countError(fmt.Errorf("failed to marshal comments: %w", err))
	} else if err := s.storage.Store(ctx, storage.ArchiveName(rep.VideoID, rep.GeneratedAt, storage.KindComments), data); err != nil {
		s.countError(err)
	}

	pdf, err := os.ReadFile(rep.OutputPath)
	if err != nil {
		s.countError(fmt.Errorf("failed to read report artifact %s: %w", rep.OutputPath, err))
		return
	}
	if err := s.storage.Store(ctx, storage.ArchiveName(rep.VideoID, rep.GeneratedAt, storage.KindPDF), pdf); err != nil {
		s.countError(err)
		return
	}

	s.pruneArchive(ctx, rep.VideoID)
}

// pruneArchive keeps the newest ArchiveRetention runs of a video
func (s *Service) pruneArchive(ctx context.Context, videoID string) {
	keep := s.config.ArchiveRetention
	if keep <= 0 {
		return
	}

	entries, err := s.listArchive(ctx, videoID)
	if err != nil {
		s.countError(err)
		return
	}

	var runs []string
	seen := make(map[string]bool)
	for _, entry := range entries {
		if !seen[entry.Run] {
			seen[entry.Run] = true
			runs = append(runs, entry.Run)
		}
	}
	if len(runs) <= keep {
		return
	}
	sort.Strings(runs)

	expired := make(map[string]bool)
	for _, run := range runs[:len(runs)-keep] {
		expired[run] = true
	}

	for _, entry := range entries {
		if !expired[entry.Run] {
			continue
		}
		if err := s.storage.Delete(ctx, entry.Name); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.countError(fmt.Errorf("failed to prune %s: %w", entry.Name, err))
		}
	}
	logrus.Infof("Pruned %d archived runs of video %s", len(expired), videoID)
}

func (s *Service) listArchive(ctx context.Context, videoID string) ([]storage.ArchiveEntry, error) {
	prefix := ""
	if videoID != "" {
		prefix = videoID + "-"
	}

	names, err := s.storage.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive: %w", err)
	}

	entries := make([]storage.ArchiveEntry, 0, len(names))
	for _, name := range names {
		entry, ok := storage.ParseArchiveName(name)
		if !ok || (videoID != "" && entry.VideoID != videoID) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ListReports returns the archived artifacts of one video, or of every video
// when videoID is empty, oldest run first
func (s *Service) ListReports(ctx context.Context, videoID string) ([]storage.ArchiveEntry, error) {
	if s.storage == nil {
		return nil, ErrNoArchive
	}
	return s.listArchive(ctx, videoID)
}

// GetReport returns one archived artifact. Names that the archive never
// writes are reported as storage.ErrNotFound.
func (s *Service) GetReport(ctx context.Context, name string) ([]byte, error) {
	if s.storage == nil {
		return nil, ErrNoArchive
	}
	if _, ok := storage.ParseArchiveName(name); !ok {
		return nil, fmt.Errorf("%s: %w", name, storage.ErrNotFound)
	}
	return s.storage.Retrieve(ctx, name)
}

func (s *Service) deliverReport(rep *models.Report) {
	if s.notificationService == nil {
		return
	}

	if err := s.notificationService.SendReport(rep); err != nil {
		s.countError(fmt.Errorf("failed to deliver report: %w", err))
	}
}

func (s *Service) recordFailure(req models.AnalysisRequest, err error) {
	s.countError(err)

	if s.notificationService == nil {
		return
	}

	alertType := "error"
	switch {
	case sources.IsSourceError(err):
		alertType = "source_error"
	case report.IsRenderError(err):
		alertType = "render_error"
	}

	alert := &models.Alert{
		ID:        fmt.Sprintf("%s-%d", req.VideoID, time.Now().Unix()),
		Type:      alertType,
		Title:     fmt.Sprintf("Comment analysis failed for video %s", req.VideoID),
		Message:   err.Error(),
		VideoID:   req.VideoID,
		CreatedAt: time.Now(),
	}
	if alertErr := s.notificationService.SendAlert(alert); alertErr != nil {
		logrus.Errorf("Failed to send alert: %v", alertErr)
	}
}

func (s *Service) countError(err error) {
	logrus.Errorf("%v", err)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.ErrorCount++
	s.metrics.LastError = err.Error()
}

func (s *Service) updateMetrics(rep *models.Report, pages int, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Runs++
	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.LastVideoID = rep.VideoID
	s.metrics.PagesFetched = pages
	s.metrics.TotalComments = rep.TotalComments()
	s.metrics.FilteredComments = len(rep.Filtered)

	s.metrics.SentimentBreakdown = make(map[string]int, len(rep.Summary))
	for label, count := range rep.Summary {
		s.metrics.SentimentBreakdown[label] = count
	}
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}

// GenerateTestReport builds and renders a report from provided comments.
// Sentiment is always derived from the comment text.
func (s *Service) GenerateTestReport(req models.AnalysisRequest, comments []models.Comment) (*models.Report, error) {
	AnnotateAll(s.classifier, comments)

	rep, err := s.generateReport(req, comments, FilterByKeyword(comments, req.Keyword))
	if err != nil {
		return nil, err
	}

	if s.config.IncludeVideoLink {
		rep.VideoURL = sources.WatchURL(rep.VideoID)
	}

	if err := s.renderer.Render(rep, s.config.OutputFile); err != nil {
		return nil, err
	}
	rep.OutputPath = s.config.OutputFile

	return rep, nil
}
