package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/ytcomments/comment-sentiment-bot/internal/analysis"
	"github.com/ytcomments/comment-sentiment-bot/internal/models"
	"github.com/ytcomments/comment-sentiment-bot/internal/sources"
	"github.com/ytcomments/comment-sentiment-bot/internal/storage"
)

// analyzer is the part of the analysis service the HTTP layer needs
type analyzer interface {
	Run(ctx context.Context, req models.AnalysisRequest) (*models.Report, error)
	GetMetrics() string
	ListReports(ctx context.Context, videoID string) ([]storage.ArchiveEntry, error)
	GetReport(ctx context.Context, name string) ([]byte, error)
}

type analyzeRequest struct {
	VideoID string `json:"video_id"`
	Keyword string `json:"keyword"`
}

func newRouter(ctx context.Context, service analyzer) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.HandleFunc("/metrics", metricsHandler(service)).Methods("GET")
	router.HandleFunc("/analyze", analyzeHandler(ctx, service)).Methods("POST")
	router.HandleFunc("/reports", listReportsHandler(service)).Methods("GET")
	router.HandleFunc("/reports/{name}", getReportHandler(service)).Methods("GET")

	return router
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func metricsHandler(service analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics := service.GetMetrics()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(metrics))
	}
}

// analyzeHandler starts a run in the background and answers 202 at once.
// Runs use ctx rather than the request context so they outlive the request.
func analyzeHandler(ctx context.Context, service analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		videoID := sources.ExtractVideoID(strings.TrimSpace(body.VideoID))
		if videoID == "" {
			writeJSONError(w, http.StatusBadRequest, "video_id is required")
			return
		}

		req := models.AnalysisRequest{VideoID: videoID, Keyword: body.Keyword}
		go func() {
			if _, err := service.Run(ctx, req); err != nil {
				logrus.Errorf("Triggered analysis of %s failed: %v", req.VideoID, err)
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"message":  "Analysis started",
			"video_id": videoID,
		})
	}
}

// listReportsHandler lists archived artifacts, optionally for one video (?video=)
func listReportsHandler(service analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		videoID := ""
		if raw := strings.TrimSpace(r.URL.Query().Get("video")); raw != "" {
			videoID = sources.ExtractVideoID(raw)
			if videoID == "" {
				writeJSONError(w, http.StatusBadRequest, "video is not a YouTube video")
				return
			}
		}

		entries, err := service.ListReports(r.Context(), videoID)
		if err != nil {
			writeArchiveError(w, err)
			return
		}
		if entries == nil {
			entries = []storage.ArchiveEntry{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"reports": entries,
			"count":   len(entries),
		})
	}
}

// getReportHandler serves one archived artifact with its content type
func getReportHandler(service analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]

		data, err := service.GetReport(r.Context(), name)
		if err != nil {
			writeArchiveError(w, err)
			return
		}

		w.Header().Set("Content-Type", storage.ContentType(name))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

func writeArchiveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analysis.ErrNoArchive):
		writeJSONError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "report not found")
	default:
		logrus.Errorf("Report archive request failed: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "report archive unavailable")
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
