package docx

import (
	"strings"

	"github.com/secwatch/wafreport/pkg/models/domain"
)

// textRun is one styled segment of a narrative paragraph.
type textRun struct {
	Text     string
	Emphasis bool
}

// splitRuns parses narrative markup into styled runs: the text is split on
// the emphasis marker and odd-position segments are emphasized. Text without
// the marker becomes a single plain run; empty segments produce no run.
func splitRuns(text string) []textRun {
	parts := strings.Split(text, domain.EmphasisMarker)
	runs := make([]textRun, 0, len(parts))
	for i, part := range parts {
		if part == "" {
			continue
		}
		runs = append(runs, textRun{Text: part, Emphasis: i%2 == 1})
	}
	return runs
}
