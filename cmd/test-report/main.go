package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ytcomments/comment-sentiment-bot/internal/analysis"
	"github.com/ytcomments/comment-sentiment-bot/internal/config"
	"github.com/ytcomments/comment-sentiment-bot/internal/models"
	"github.com/ytcomments/comment-sentiment-bot/internal/report"
	"github.com/ytcomments/comment-sentiment-bot/internal/sentiment"
	"github.com/ytcomments/comment-sentiment-bot/internal/sources"
)

// offlineSource never serves comments; the sample report is built from fixtures
type offlineSource struct{}

func (offlineSource) GetName() string { return "offline" }
func (offlineSource) IsEnabled() bool { return false }
func (offlineSource) FetchPage(_ context.Context, _, _ string) (*sources.CommentPage, error) {
	return nil, fmt.Errorf("offline source has no comments")
}

func printReport(rep *models.Report) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("📊 YOUTUBE COMMENTS REPORT")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("🎬 Video: %s\n", rep.VideoID)
	fmt.Printf("🔗 Link: %s\n", rep.VideoURL)
	fmt.Printf("🕒 Generated: %s\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Printf("📈 Total Comments: %d\n", rep.TotalComments())
	fmt.Printf("🔎 Matches for %q: %d\n", rep.Keyword, len(rep.Filtered))

	fmt.Println("\n💭 Sentiment Analysis:")
	for _, label := range []models.Sentiment{models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral} {
		emoji := "😐"
		switch label {
		case models.SentimentPositive:
			emoji = "😊"
		case models.SentimentNegative:
			emoji = "😞"
		}
		fmt.Printf("   %s %-10s %d comments\n", emoji, string(label)+":", rep.Summary[string(label)])
	}

	fmt.Println("\n📝 Keyword Matches:")
	for i, comment := range rep.Filtered {
		fmt.Printf("   %d. [%s] %s\n", i+1, comment.Sentiment, report.FormatCommentLine(comment))
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
}

func main() {
	fmt.Println("🤖 Comment Sentiment Bot - Test Report Generator")
	fmt.Println("================================================")

	if err := os.MkdirAll("test_output", 0o755); err != nil {
		fmt.Printf("❌ Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	cfg := &config.Config{
		OutputFile:       "test_output/sample_comments_analysis.pdf",
		IncludeVideoLink: true,
		FontDir:          os.Getenv("FONT_DIR"),
	}

	classifier := sentiment.NewClassifier(sentiment.NewLexiconScorer())
	service := analysis.NewService(cfg, offlineSource{}, classifier, report.NewPDFRenderer(cfg.FontDir))

	now := time.Now()
	sampleComments := []models.Comment{
		{ID: "c1", Author: "ml_engineer_pro", Text: "Excellent walkthrough, I really love how clear this is!", LikeCount: 234, PublishedAt: now.Add(-2 * time.Hour)},
		{ID: "c2", Author: "devops_rookie", Text: "I really hate that the audio cuts out halfway through.", LikeCount: 12, PublishedAt: now.Add(-3 * time.Hour)},
		{ID: "c3", Author: "cloud_enthusiast", Text: "Great video, thanks for sharing.", LikeCount: 47, PublishedAt: now.Add(-5 * time.Hour)},
		{ID: "c4", Author: "curious_viewer", Text: "Which camera did you use for this?", LikeCount: 3, PublishedAt: now.Add(-8 * time.Hour)},
		{ID: "c5", Author: "José", Text: "Really useful, but it’s a bit too long. 很好 👍", LikeCount: 9, PublishedAt: now.Add(-12 * time.Hour)},
		{ID: "c6", Author: "skeptic42", Text: "This is the worst explanation I have seen, terrible pacing.", LikeCount: 5, PublishedAt: now.Add(-24 * time.Hour)},
	}

	fmt.Printf("\n📊 Generating report with %d sample comments...\n", len(sampleComments))

	rep, err := service.GenerateTestReport(models.AnalysisRequest{VideoID: "dQw4w9WgXcQ", Keyword: "really"}, sampleComments)
	if err != nil {
		fmt.Printf("❌ Error generating report: %v\n", err)
		os.Exit(1)
	}

	printReport(rep)

	fmt.Printf("\n💾 PDF generated: %s\n", rep.OutputPath)
	fmt.Println("\n✅ Test report generation completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Open the PDF in 'test_output' to review the layout")
	fmt.Println("   • Run 'go test ./internal/...' for the unit tests")
	fmt.Println("   • Set YOUTUBE_API_KEY and run 'go run ./cmd/commentbot -video <id> -keyword <word>'")
}
