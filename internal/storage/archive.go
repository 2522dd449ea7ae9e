package storage

import (
	"fmt"
	"regexp"
	"time"
)

// Artifact kinds written for every archived run
const (
	KindPDF      = ".pdf"
	KindComments = "-comments.json"
)

const runStampLayout = "2006-01-02-15-04-05"

var archiveNameRE = regexp.MustCompile(`^(.+)-(\d{4}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2})(\.pdf|-comments\.json)$`)

// ArchiveEntry is a parsed archive artifact name
type ArchiveEntry struct {
	Name    string `json:"name"`
	VideoID string `json:"video_id"`
	Run     string `json:"run"` // sortable run stamp
	Kind    string `json:"kind"`
}

// ArchiveName names the artifact of one run: <video>-<stamp><kind>
func ArchiveName(videoID string, generatedAt time.Time, kind string) string {
	return fmt.Sprintf("%s-%s%s", videoID, generatedAt.UTC().Format(runStampLayout), kind)
}

// ParseArchiveName splits an artifact name; names not written by ArchiveName are rejected
func ParseArchiveName(name string) (ArchiveEntry, bool) {
	m := archiveNameRE.FindStringSubmatch(name)
	if m == nil {
		return ArchiveEntry{}, false
	}
	return ArchiveEntry{Name: name, VideoID: m[1], Run: m[2], Kind: m[3]}, true
}

// ContentType returns the MIME type of an archived artifact
func ContentType(name string) string {
	entry, _ := ParseArchiveName(name)
	switch entry.Kind {
	case KindPDF:
		return "application/pdf"
	case KindComments:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
