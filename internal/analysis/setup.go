package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/ytcomments/comment-sentiment-bot/internal/config"
	"github.com/ytcomments/comment-sentiment-bot/internal/notifications"
	"github.com/ytcomments/comment-sentiment-bot/internal/report"
	"github.com/ytcomments/comment-sentiment-bot/internal/sentiment"
	"github.com/ytcomments/comment-sentiment-bot/internal/sources"
	"github.com/ytcomments/comment-sentiment-bot/internal/storage"
	"google.golang.org/api/option"
)

// Setup wires a Service from configuration. The API key must already be
// resolved (see config.ResolveAPIKey).
func Setup(ctx context.Context, cfg *config.Config) (*Service, error) {
	source := sources.NewYouTubeSource(cfg.YouTubeAPIKey, cfg.YouTubeAPIBaseURL, cfg.PageSize)
	if !source.IsEnabled() {
		return nil, fmt.Errorf("YouTube source is not configured")
	}

	scorer, err := sentiment.NewScorer(cfg.SentimentBackend, cfg.OllamaHost, cfg.OllamaModel)
	if err != nil {
		return nil, err
	}

	service := NewService(cfg, source, sentiment.NewClassifier(scorer), report.NewPDFRenderer(cfg.FontDir))

	if cfg.IncludeVideoTitle {
		var opts []option.ClientOption
		if endpoint := lookupEndpoint(cfg.YouTubeAPIBaseURL); endpoint != "" {
			opts = append(opts, option.WithEndpoint(endpoint))
		}
		titles, err := sources.NewVideoLookup(ctx, cfg.YouTubeAPIKey, opts...)
		if err != nil {
			return nil, err
		}
		service.WithTitleLookup(titles)
	}

	store, err := storage.New(ctx, cfg.StorageBackend, cfg.LocalStorageDir, cfg.StorageAccount, cfg.StorageContainer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if store != nil {
		logrus.Infof("Archiving reports to %s storage", cfg.StorageBackend)
		service.WithStorage(store)
	}

	notifier := notifications.NewService(cfg)
	if notifier.IsConfigured() {
		service.WithNotifications(notifier)
	}

	return service, nil
}

// lookupEndpoint maps a non-default comments base URL to the metadata
// client's root endpoint. The default URL needs no override.
func lookupEndpoint(baseURL string) string {
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" || baseURL == config.DefaultAPIBaseURL {
		return ""
	}
	return strings.TrimSuffix(baseURL, "/youtube/v3") + "/"
}
