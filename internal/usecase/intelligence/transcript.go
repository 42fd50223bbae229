package intelligence

import (
	"fmt"
	"strings"

	"github.com/omniscope-hq/meeting-intel/pkg/fathom"
)

const (
	// transcriptAnalysisLimit is the hard character budget for transcript
	// text submitted to the LLM.
	transcriptAnalysisLimit = 8000

	truncationMarker = "\n\n[Transcript truncated for analysis...]"
)

// BuildTranscriptText flattens ordered speaker turns into plain text, one
// "[timestamp] speaker: text" line each. Vendor ordering is preserved.
func BuildTranscriptText(entries []fathom.TranscriptEntry) string {
	if len(entries) == 0 {
		return ""
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", entry.Timestamp, entry.Speaker.DisplayName, entry.Text))
	}
	return strings.Join(lines, "\n")
}

// TruncateForAnalysis enforces the token-budget guard before LLM submission
func TruncateForAnalysis(transcript string) string {
	if len(transcript) <= transcriptAnalysisLimit {
		return transcript
	}
	return transcript[:transcriptAnalysisLimit] + truncationMarker
}
