package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ytcomments/comment-sentiment-bot/internal/config"
	"github.com/ytcomments/comment-sentiment-bot/internal/sentiment"
	"github.com/ytcomments/comment-sentiment-bot/internal/sources"
)

// Public video used when TEST_VIDEO_ID is unset
const defaultTestVideo = "dQw4w9WgXcQ"

func main() {
	fmt.Println("🔍 Comment Sentiment Bot - API Connectivity Test")
	fmt.Println("================================================")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	videoID := defaultTestVideo
	if fromEnv := sources.ExtractVideoID(os.Getenv("TEST_VIDEO_ID")); fromEnv != "" {
		videoID = fromEnv
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("\n📡 Testing APIs...")
	fmt.Println(strings.Repeat("-", 40))

	testComments(ctx, sources.NewYouTubeSource(cfg.YouTubeAPIKey, cfg.YouTubeAPIBaseURL, cfg.PageSize), videoID)
	testTitle(ctx, cfg, videoID)
	testScorer(cfg)

	fmt.Println("\n✅ API connectivity test completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Configure missing API keys in .env file")
	fmt.Println("   • Generate a report with: go run ./cmd/commentbot")
}

func testComments(ctx context.Context, source *sources.YouTubeSource, videoID string) {
	fmt.Printf("🔸 Testing YouTube comment threads... ")

	if !source.IsEnabled() {
		fmt.Printf("⚠️  DISABLED (missing API key)\n")
		return
	}

	page, err := source.FetchPage(ctx, videoID, "")
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	fmt.Printf("✅ SUCCESS (%d comments on first page, more: %t)\n", len(page.Comments), page.NextPageToken != "")
	if len(page.Comments) > 0 {
		fmt.Printf("   📝 Sample: %q\n", page.Comments[0].Text)
	}
}

func testTitle(ctx context.Context, cfg *config.Config, videoID string) {
	fmt.Printf("🔸 Testing YouTube video lookup... ")

	if cfg.YouTubeAPIKey == "" {
		fmt.Printf("⚠️  DISABLED (missing API key)\n")
		return
	}

	lookup, err := sources.NewVideoLookup(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	title, err := lookup.Title(ctx, videoID)
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	fmt.Printf("✅ SUCCESS (%q)\n", title)
}

func testScorer(cfg *config.Config) {
	fmt.Printf("🔸 Testing %s sentiment backend... ", cfg.SentimentBackend)

	scorer, err := sentiment.NewScorer(cfg.SentimentBackend, cfg.OllamaHost, cfg.OllamaModel)
	if err != nil {
		fmt.Printf("❌ ERROR: %v\n", err)
		return
	}

	classifier := sentiment.NewClassifier(scorer)
	fmt.Printf("✅ SUCCESS (\"I really love this\" => %s)\n", classifier.Classify("I really love this"))
}
