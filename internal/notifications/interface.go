package notifications

import "github.com/ytcomments/comment-sentiment-bot/internal/models"

// NotificationInterface defines the contract for delivering finished reports
type NotificationInterface interface {
	SendReport(report *models.Report) error
	SendAlert(alert *models.Alert) error
}
