package intelligence

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
	"github.com/omniscope-hq/meeting-intel/pkg/fathom"
)

type fakeExtractor struct {
	result *entities.AnalysisResult
	err    error
	calls  int
}

func (f *fakeExtractor) ExtractAnalysis(ctx context.Context, systemPrompt, userPrompt string) (*entities.AnalysisResult, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAnalyzeMeeting_LLMPathPostProcessed(t *testing.T) {
	extractor := &fakeExtractor{
		result: &entities.AnalysisResult{
			ExecutiveSummary:    "Discussed the fund structure.",
			StrategicHighlights: []string{"Fund II launch"},
			Sectors:             []string{"Private Equity"},
			MeetingType:         "Deal Review",
			ActionItems: []entities.AnalyzedActionItem{
				{
					Title:    strings.Repeat("x", 120),
					Priority: "URGENT",
				},
			},
		},
	}

	a := NewAnalyzer(extractor, nil)
	a.now = fixedClock(time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC))

	result := a.AnalyzeMeeting(context.Background(), &fathom.RawRecordingPayload{Title: "Deal Review"})

	require.Equal(t, 1, extractor.calls)
	require.Len(t, result.ActionItems, 1)

	item := result.ActionItems[0]
	assert.Len(t, item.Title, 80)
	assert.Equal(t, "medium", item.Priority, "unknown priority must coerce to medium")
	assert.Equal(t, "2026-03-03", item.DueDate, "empty due date defaults to two days out")
	assert.Equal(t, "Unassigned", item.AssignedTo)

	assert.Equal(t, "Deal Review", result.MeetingType)
	assert.NotNil(t, result.Opportunities)
	assert.NotNil(t, result.Risks)
	assert.NotNil(t, result.KeyQuotes)
	assert.NotNil(t, result.Jurisdictions)
}

func TestAnalyzeMeeting_FallbackOnExtractorError(t *testing.T) {
	extractor := &fakeExtractor{err: fmt.Errorf("groq returned status 500")}

	a := NewAnalyzer(extractor, nil)
	a.now = fixedClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	payload := &fathom.RawRecordingPayload{
		Title:          "Hassan x Jake",
		DefaultSummary: "Vendor summary of the call.",
		ActionItems: []fathom.RawActionItem{
			{Description: "Send the revised deck and schedule a follow-up", Assignee: "Hassan"},
			{Description: "Share fund documents"},
		},
	}

	result := a.AnalyzeMeeting(context.Background(), payload)

	assert.Equal(t, "Vendor summary of the call.", result.ExecutiveSummary)
	assert.Equal(t, []string{"General"}, result.Sectors)
	assert.Equal(t, string(entities.MeetingTypeGeneral), result.MeetingType)
	assert.Empty(t, result.StrategicHighlights)
	assert.Empty(t, result.Opportunities)

	// Fallback never splits compound items: vendor items pass through 1:1.
	require.Len(t, result.ActionItems, 2)
	assert.Equal(t, "Hassan", result.ActionItems[0].AssignedTo)
	assert.Equal(t, "Unassigned", result.ActionItems[1].AssignedTo)
	for _, item := range result.ActionItems {
		assert.Equal(t, "medium", item.Priority)
		assert.Equal(t, "2026-03-03", item.DueDate)
	}
}

func TestAnalyzeMeeting_FallbackSynthesizesSummary(t *testing.T) {
	a := NewAnalyzer(nil, nil)
	a.now = fixedClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	payload := &fathom.RawRecordingPayload{
		Title: "Strategy Session",
		CalendarInvitees: []fathom.CalendarInvitee{
			{Name: "Sara Lane"},
			{Name: "Omar"},
		},
	}

	result := a.AnalyzeMeeting(context.Background(), payload)
	assert.Equal(t, "Meeting: Strategy Session with Sara Lane, Omar.", result.ExecutiveSummary)
	assert.Empty(t, result.ActionItems)
}

func TestBuildSystemPromptCarriesDefaultDueDate(t *testing.T) {
	prompt := buildSystemPrompt("2026-03-03")
	assert.Contains(t, prompt, "2026-03-03")
	assert.Contains(t, prompt, "Private Equity")
	assert.Contains(t, prompt, "Unassigned")
}
