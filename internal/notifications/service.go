package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/ytcomments/comment-sentiment-bot/internal/config"
	"github.com/ytcomments/comment-sentiment-bot/internal/models"
	"github.com/ytcomments/comment-sentiment-bot/internal/report"
	"gopkg.in/gomail.v2"
)

const topCommentLimit = 5

// Service delivers reports via Teams webhook and e-mail
type Service struct {
	config *config.Config
	client *resty.Client
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Sections   []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// IsConfigured reports whether any delivery channel is set up
func (s *Service) IsConfigured() bool {
	return s.config.TeamsWebhookURL != "" || s.config.NotificationEmail != ""
}

// SendReport sends a report via configured notification channels
func (s *Service) SendReport(rep *models.Report) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.postToTeams(s.buildTeamsMessage(rep)); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent report to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(rep); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent report via email")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// SendAlert posts a failed-run alert to Teams
func (s *Service) SendAlert(alert *models.Alert) error {
	if s.config.TeamsWebhookURL == "" {
		logrus.Warnf("Alert not delivered (no Teams webhook): %s - %s", alert.Type, alert.Message)
		return nil
	}

	message := &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: "d13438",
		Title:      alert.Title,
		Text:       alert.Message,
		Sections: []TeamsSection{{
			Facts: []TeamsFact{
				{Name: "Type", Value: alert.Type},
				{Name: "Video", Value: alert.VideoID},
				{Name: "Time", Value: alert.CreatedAt.Format("2006-01-02 15:04:05 UTC")},
			},
		}},
	}

	return s.postToTeams(message)
}

func (s *Service) postToTeams(message *TeamsMessage) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsMessage(rep *models.Report) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   fmt.Sprintf("YouTube Comments Report - %s", videoLabel(rep)),
		Text:    fmt.Sprintf("Analyzed %d comments, %d matched keyword \"%s\"", rep.TotalComments(), len(rep.Filtered), rep.Keyword),
	}

	facts := []TeamsFact{
		{Name: "Total Comments", Value: fmt.Sprintf("%d", rep.TotalComments())},
		{Name: "Keyword Matches", Value: fmt.Sprintf("%d", len(rep.Filtered))},
		{Name: "Generated", Value: rep.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
	}
	for _, label := range []models.Sentiment{models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral} {
		facts = append(facts, TeamsFact{
			Name:  fmt.Sprintf("%s Comments", label),
			Value: fmt.Sprintf("%d", rep.Summary[string(label)]),
		})
	}

	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	if len(rep.Filtered) > 0 {
		var lines []string
		for i, comment := range rep.Filtered {
			if i >= topCommentLimit {
				break
			}
			lines = append(lines, fmt.Sprintf("**%s** (%s, %d likes): %s",
				comment.Author, comment.Sentiment, comment.LikeCount, truncate(comment.Text, 200)))
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Keyword Matches",
			ActivityText:  strings.Join(lines, "\n\n"),
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) sendEmail(rep *models.Report) error {
	m, err := s.buildEmailMessage(rep)
	if err != nil {
		return err
	}

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) buildEmailMessage(rep *models.Report) (*gomail.Message, error) {
	subject := fmt.Sprintf("YouTube Comments Report - %s (%d comments)", videoLabel(rep), rep.TotalComments())

	htmlBody, err := s.buildEmailHTML(rep)
	if err != nil {
		return nil, fmt.Errorf("failed to build email HTML: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", s.buildEmailText(rep))
	m.AddAlternative("text/html", htmlBody)

	if rep.OutputPath != "" {
		if _, err := os.Stat(rep.OutputPath); err == nil {
			m.Attach(rep.OutputPath)
		} else {
			logrus.Warnf("Report artifact %s not attached: %v", rep.OutputPath, err)
		}
	}

	return m, nil
}

const emailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>YouTube Comments Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #c4302b; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .comment { border-left: 4px solid #605e5c; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .comment-meta { color: #666; font-size: 0.9em; }
        .Positive { border-left-color: #107c10; }
        .Negative { border-left-color: #d13438; }
    </style>
</head>
<body>
    <div class="header">
        <h1>YouTube Comments Report</h1>
        <p>Video {{.VideoID}}{{if .VideoTitle}} ({{.VideoTitle}}){{end}} analyzed on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Total Comments:</strong> {{len .Comments}}</p>
        <p><strong>Matches for "{{.Keyword}}":</strong> {{len .Filtered}}</p>
        {{range $label, $count := .Summary}}
            <p><strong>{{$label}} Comments:</strong> {{$count}}</p>
        {{end}}
    </div>

    {{if .Filtered}}
    <h2>Keyword Matches</h2>
    {{range $index, $comment := .Filtered}}
        {{if lt $index 10}}
        <div class="comment {{$comment.Sentiment}}">
            <div class="comment-meta">{{$comment.Author}} | {{$comment.LikeCount}} likes | {{$comment.Sentiment}}</div>
            <p>{{$comment.Text | truncate 200}}</p>
        </div>
        {{end}}
    {{end}}
    {{end}}

    <hr>
    <p><small>The full report is attached as a PDF.</small></p>
</body>
</html>
`

func (s *Service) buildEmailHTML(rep *models.Report) (string, error) {
	t := template.New("email").Funcs(template.FuncMap{
		"truncate": func(length int, s string) string {
			return truncate(s, length)
		},
	})

	t, err := t.Parse(emailTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, rep); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(rep *models.Report) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("YouTube Comments Report - %s\n", videoLabel(rep)))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Total Comments: %d\n", rep.TotalComments()))
	text.WriteString(fmt.Sprintf("Matches for %q: %d\n", rep.Keyword, len(rep.Filtered)))
	for _, label := range []models.Sentiment{models.SentimentPositive, models.SentimentNegative, models.SentimentNeutral} {
		text.WriteString(fmt.Sprintf("%s Comments: %d\n", label, rep.Summary[string(label)]))
	}

	if len(rep.Filtered) > 0 {
		text.WriteString("\nKEYWORD MATCHES\n")
		text.WriteString("===============\n")

		for i, comment := range rep.Filtered {
			if i >= 10 {
				break
			}
			text.WriteString(fmt.Sprintf("%d. %s\n", i+1, report.FormatCommentLine(comment)))
		}
	}

	text.WriteString("\n---\nThe full report is attached as a PDF.\n")

	return text.String()
}

func videoLabel(rep *models.Report) string {
	if rep.VideoTitle != "" {
		return rep.VideoTitle
	}
	return rep.VideoID
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}
