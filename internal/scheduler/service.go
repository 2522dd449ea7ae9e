package scheduler

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/ytcomments/comment-sentiment-bot/internal/config"
	"github.com/ytcomments/comment-sentiment-bot/internal/models"
)

// Runner runs one analysis
type Runner interface {
	Run(ctx context.Context, req models.AnalysisRequest) (*models.Report, error)
}

// Service re-analyzes the configured watch list on a cron schedule
type Service struct {
	ctx    context.Context
	config *config.Config
	runner Runner
	cron   *cron.Cron
}

// NewService creates a new scheduler service. Scheduled runs use ctx, so
// cancelling it aborts a watch list run in progress.
func NewService(ctx context.Context, cfg *config.Config, runner Runner) *Service {
	return &Service{
		ctx:    ctx,
		config: cfg,
		runner: runner,
		cron:   cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled runs. With an empty watch list nothing is scheduled.
func (s *Service) Start() error {
	if len(s.config.WatchVideos) == 0 {
		logrus.Info("No watch list configured, scheduler idle")
		return nil
	}

	_, err := s.cron.AddFunc(s.config.WatchSchedule, func() {
		logrus.Info("Starting scheduled watch list run")
		s.runWatchList(s.ctx)
	})
	if err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", s.config.WatchSchedule, err)
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with schedule %q for %d videos", s.config.WatchSchedule, len(s.config.WatchVideos))
	return nil
}

// runWatchList analyzes every watched video in turn, each into its own report
// file. A failing video does not stop the others; the number of failures is
// returned. Videos not reached before ctx is cancelled count as failures.
func (s *Service) runWatchList(ctx context.Context) int {
	failures := 0
	for i, videoID := range s.config.WatchVideos {
		if err := ctx.Err(); err != nil {
			skipped := len(s.config.WatchVideos) - i
			logrus.Warnf("Watch list run cancelled, skipping %d videos: %v", skipped, err)
			return failures + skipped
		}

		req := models.AnalysisRequest{
			VideoID:    videoID,
			Keyword:    s.config.WatchKeyword,
			OutputFile: VideoOutputFile(s.config.OutputFile, videoID),
		}
		if _, err := s.runner.Run(ctx, req); err != nil {
			logrus.Errorf("Scheduled analysis of %s failed: %v", videoID, err)
			failures++
		}
	}
	return failures
}

// VideoOutputFile places the report of one watched video next to the
// configured output file: reports/out.pdf becomes reports/<video>-out.pdf
func VideoOutputFile(outputFile, videoID string) string {
	dir, base := filepath.Split(outputFile)
	return filepath.Join(dir, videoID+"-"+base)
}

// Stop stops scheduling new runs and waits for a run in progress. Cancel the
// service context first to abort that run instead of waiting for it.
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}
