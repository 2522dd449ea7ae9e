package sources

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure classes reported by a comment source
const (
	ReasonAuth     = "auth"
	ReasonQuota    = "quota"
	ReasonNotFound = "not_found"
	ReasonNetwork  = "network"
	ReasonDecode   = "decode"
	ReasonOther    = "other"
)

// SourceError is returned when the comment source cannot be reached or rejects a request.
// It is always fatal for a run.
type SourceError struct {
	Source     string
	VideoID    string
	StatusCode int
	Reason     string
	Err        error
}

func (e *SourceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s source error for video %s (%s, status %d): %v", e.Source, e.VideoID, e.Reason, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s source error for video %s (%s): %v", e.Source, e.VideoID, e.Reason, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsSourceError reports whether err wraps a SourceError
func IsSourceError(err error) bool {
	var srcErr *SourceError
	return errors.As(err, &srcErr)
}

// googleAPIError is the error envelope returned by Google APIs
type googleAPIError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

// classifyFailure maps an HTTP status and Google error reason to a failure class
func classifyFailure(status int, apiReason string) string {
	switch apiReason {
	case "keyInvalid", "keyExpired", "authError", "forbidden", "ipRefererBlocked":
		return ReasonAuth
	case "quotaExceeded", "dailyLimitExceeded", "rateLimitExceeded", "userRateLimitExceeded":
		return ReasonQuota
	case "videoNotFound", "notFound":
		return ReasonNotFound
	}

	switch status {
	case http.StatusUnauthorized:
		return ReasonAuth
	case http.StatusTooManyRequests:
		return ReasonQuota
	case http.StatusNotFound:
		return ReasonNotFound
	}

	return ReasonOther
}
