package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/ytcomments/comment-sentiment-bot/internal/analysis"
	"github.com/ytcomments/comment-sentiment-bot/internal/config"
	"github.com/ytcomments/comment-sentiment-bot/internal/models"
	"github.com/ytcomments/comment-sentiment-bot/internal/sources"
)

func main() {
	videoFlag := flag.String("video", "", "YouTube video ID or URL (prompted when omitted)")
	keywordFlag := flag.String("keyword", "", "keyword to search in comments (prompted when omitted)")
	outFlag := flag.String("out", "", "output PDF path (defaults to OUTPUT_FILE)")
	titleFlag := flag.Bool("title", false, "include the video title in the report header")
	linkFlag := flag.Bool("link", false, "include the video link in the report header")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stderr)

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	if *outFlag != "" {
		cfg.OutputFile = *outFlag
	}
	if explicit["title"] {
		cfg.IncludeVideoTitle = *titleFlag
	}
	if explicit["link"] {
		cfg.IncludeVideoLink = *linkFlag
	}

	prompt := config.TerminalPrompt(os.Stdin, os.Stdout)

	if _, err := cfg.ResolveAPIKey(prompt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	req, err := buildRequest(prompt, *videoFlag, *keywordFlag, explicit["video"], explicit["keyword"])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service, err := analysis.Setup(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rep, err := service.Run(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("PDF generated: %s\n", rep.OutputPath)
}

// buildRequest takes the video and keyword from flags, prompting for the
// ones that were not given. An empty keyword is valid and matches everything.
func buildRequest(prompt config.PromptFunc, video, keyword string, haveVideo, haveKeyword bool) (models.AnalysisRequest, error) {
	if !haveVideo {
		value, err := prompt("Enter YouTube video ID: ", false)
		if err != nil {
			return models.AnalysisRequest{}, fmt.Errorf("failed to read video ID: %w", err)
		}
		video = value
	}

	videoID := sources.ExtractVideoID(strings.TrimSpace(video))
	if videoID == "" {
		return models.AnalysisRequest{}, analysis.ErrEmptyVideoID
	}

	if !haveKeyword {
		value, err := prompt("Enter keyword to search in comments: ", false)
		if err != nil {
			return models.AnalysisRequest{}, fmt.Errorf("failed to read keyword: %w", err)
		}
		keyword = value
	}

	return models.AnalysisRequest{VideoID: videoID, Keyword: keyword}, nil
}
