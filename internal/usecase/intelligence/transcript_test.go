package intelligence

import (
	"strings"
	"testing"

	"github.com/omniscope-hq/meeting-intel/pkg/fathom"
)

func TestBuildTranscriptText(t *testing.T) {
	t.Run("empty transcript", func(t *testing.T) {
		if got := BuildTranscriptText(nil); got != "" {
			t.Errorf("expected empty string, got %q", got)
		}
	})

	t.Run("single entry", func(t *testing.T) {
		entries := []fathom.TranscriptEntry{
			{Speaker: fathom.Speaker{DisplayName: "A"}, Text: "hi", Timestamp: "00:00:01"},
		}
		want := "[00:00:01] A: hi"
		if got := BuildTranscriptText(entries); got != want {
			t.Errorf("BuildTranscriptText = %q, want %q", got, want)
		}
	})

	t.Run("preserves vendor order", func(t *testing.T) {
		entries := []fathom.TranscriptEntry{
			{Speaker: fathom.Speaker{DisplayName: "A"}, Text: "first", Timestamp: "00:00:01"},
			{Speaker: fathom.Speaker{DisplayName: "B"}, Text: "second", Timestamp: "00:00:05"},
		}
		want := "[00:00:01] A: first\n[00:00:05] B: second"
		if got := BuildTranscriptText(entries); got != want {
			t.Errorf("BuildTranscriptText = %q, want %q", got, want)
		}
	})
}

func TestTruncateForAnalysis(t *testing.T) {
	t.Run("under limit unchanged", func(t *testing.T) {
		in := strings.Repeat("a", transcriptAnalysisLimit)
		if got := TruncateForAnalysis(in); got != in {
			t.Error("transcript at limit must not be modified")
		}
	})

	t.Run("over limit truncated with marker", func(t *testing.T) {
		in := strings.Repeat("a", transcriptAnalysisLimit+500)
		got := TruncateForAnalysis(in)

		if !strings.HasSuffix(got, truncationMarker) {
			t.Fatalf("expected truncation marker suffix, got %q", got[len(got)-60:])
		}
		if len(got) != transcriptAnalysisLimit+len(truncationMarker) {
			t.Errorf("unexpected truncated length %d", len(got))
		}
	})
}
