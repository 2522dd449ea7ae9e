package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/ytcomments/comment-sentiment-bot/internal/analysis"
	"github.com/ytcomments/comment-sentiment-bot/internal/config"
	"github.com/ytcomments/comment-sentiment-bot/internal/models"
	"github.com/ytcomments/comment-sentiment-bot/internal/report"
	"github.com/ytcomments/comment-sentiment-bot/internal/sentiment"
	"github.com/ytcomments/comment-sentiment-bot/internal/sources"
)

// SimpleTestStorage for local testing
type SimpleTestStorage struct{}

func (s *SimpleTestStorage) Store(ctx context.Context, name string, data []byte) error {
	fmt.Printf("📁 Would store %d bytes to %s\n", len(data), name)
	return nil
}
func (s *SimpleTestStorage) Retrieve(ctx context.Context, name string) ([]byte, error) {
	return nil, nil
}
func (s *SimpleTestStorage) List(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}
func (s *SimpleTestStorage) Delete(ctx context.Context, name string) error { return nil }

// SimpleTestNotification for local testing
type SimpleTestNotification struct{}

func (s *SimpleTestNotification) SendReport(rep *models.Report) error {
	fmt.Println("\n🎉 REPORT GENERATED!")
	fmt.Printf("📊 Total Comments: %d\n", rep.TotalComments())
	fmt.Printf("🔎 Keyword Matches: %d\n", len(rep.Filtered))
	fmt.Printf("😊 Positive: %d | 😞 Negative: %d | 😐 Neutral: %d\n",
		rep.Summary["Positive"], rep.Summary["Negative"], rep.Summary["Neutral"])

	if len(rep.Filtered) > 0 {
		fmt.Println("📝 Sample Matches:")
		for i, comment := range rep.Filtered {
			if i >= 3 {
				break
			}
			fmt.Printf("   %d. [%s] %s\n", i+1, comment.Sentiment, report.FormatCommentLine(comment))
		}
	}

	return nil
}

func (s *SimpleTestNotification) SendAlert(alert *models.Alert) error {
	fmt.Printf("🚨 ALERT: %s\n", alert.Message)
	return nil
}

func main() {
	fmt.Println("🧪 Comment Sentiment Bot - Local Integration Test")
	fmt.Println("=================================================")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if _, err := cfg.ResolveAPIKey(config.TerminalPrompt(os.Stdin, os.Stdout)); err != nil {
		log.Fatalf("Failed to resolve API key: %v", err)
	}

	videoID := sources.ExtractVideoID(os.Getenv("TEST_VIDEO_ID"))
	if videoID == "" {
		videoID = "dQw4w9WgXcQ"
	}

	if err := os.MkdirAll("test_output", 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	cfg.OutputFile = "test_output/integration_comments_analysis.pdf"
	cfg.IncludeVideoLink = true

	scorer, err := sentiment.NewScorer(cfg.SentimentBackend, cfg.OllamaHost, cfg.OllamaModel)
	if err != nil {
		log.Fatalf("Failed to create scorer: %v", err)
	}

	service := analysis.NewService(
		cfg,
		sources.NewYouTubeSource(cfg.YouTubeAPIKey, cfg.YouTubeAPIBaseURL, cfg.PageSize),
		sentiment.NewClassifier(scorer),
		report.NewPDFRenderer(cfg.FontDir),
	).WithStorage(&SimpleTestStorage{}).WithNotifications(&SimpleTestNotification{})

	fmt.Printf("🔍 Running full analysis of video %s...\n", videoID)
	fmt.Println("⏱️  This will call the real API and may take 30-60 seconds...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	rep, err := service.Run(ctx, models.AnalysisRequest{VideoID: videoID, Keyword: os.Getenv("TEST_KEYWORD")})
	if err != nil {
		fmt.Printf("❌ Analysis failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n💾 PDF generated: %s\n", rep.OutputPath)
	fmt.Println("\n📈 Metrics:")
	fmt.Println(service.GetMetrics())
	fmt.Println("\n✅ Local integration test completed!")
}
