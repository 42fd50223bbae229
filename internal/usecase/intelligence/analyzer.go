package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
	"github.com/omniscope-hq/meeting-intel/pkg/fathom"
)

// StructuredExtractor is the capability of turning prompts into a parsed
// analysis result, or an explicit failure. Implemented by the Groq client and
// by deterministic fakes in tests.
type StructuredExtractor interface {
	ExtractAnalysis(ctx context.Context, systemPrompt, userPrompt string) (*entities.AnalysisResult, error)
}

// sectorTaxonomy is the fixed sector tag vocabulary
var sectorTaxonomy = []string{
	"Private Equity", "Venture Capital", "Real Estate", "Energy",
	"Technology", "Healthcare", "Financial Services", "Infrastructure",
	"Logistics", "General",
}

// jurisdictionTaxonomy is the fixed jurisdiction tag vocabulary
var jurisdictionTaxonomy = []string{
	"UAE", "KSA", "Qatar", "Bahrain", "UK", "US", "EU", "India", "Singapore",
}

var meetingTypes = []entities.MeetingType{
	entities.MeetingTypeNewClient, entities.MeetingTypeFollowUp,
	entities.MeetingTypeInternal, entities.MeetingTypeDealReview,
	entities.MeetingTypePartnership, entities.MeetingTypeGeneral,
}

const analyzedTitleMaxLen = 80

// Analyzer turns a raw recording payload into a structured analysis result.
// It never fails: when the extractor errors, a deterministic degraded result
// is produced from the vendor's own summary and action items.
type Analyzer struct {
	extractor StructuredExtractor
	logger    *zap.Logger
	now       func() time.Time
}

// NewAnalyzer constructs an analyzer around a structured extractor
func NewAnalyzer(extractor StructuredExtractor, logger *zap.Logger) *Analyzer {
	return &Analyzer{
		extractor: extractor,
		logger:    logger,
		now:       time.Now,
	}
}

// AnalyzeMeeting runs LLM structured extraction over the normalized
// transcript, vendor summary and raw action items. The returned result is
// always structurally complete, on both the LLM and fallback paths.
func (a *Analyzer) AnalyzeMeeting(ctx context.Context, payload *fathom.RawRecordingPayload) *entities.AnalysisResult {
	defaultDueDate := a.now().UTC().AddDate(0, 0, 2).Format("2006-01-02")
	participants := ExtractParticipants(payload)

	result, err := a.runExtraction(ctx, payload, participants, defaultDueDate)
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("LLM analysis failed, using deterministic fallback",
				zap.String("meeting_title", payload.BestTitle()),
				zap.Error(err),
			)
		}
		result = fallbackAnalysis(payload, participants, defaultDueDate)
	}

	postProcess(result, defaultDueDate)
	return result
}

func (a *Analyzer) runExtraction(ctx context.Context, payload *fathom.RawRecordingPayload, participants []string, defaultDueDate string) (*entities.AnalysisResult, error) {
	if a.extractor == nil {
		return nil, fmt.Errorf("no structured extractor configured")
	}

	systemPrompt := buildSystemPrompt(defaultDueDate)
	userPrompt := buildUserPrompt(payload, participants)

	return a.extractor.ExtractAnalysis(ctx, systemPrompt, userPrompt)
}

// buildSystemPrompt encodes the domain taxonomy and extraction rules. The
// computed default due date is threaded in so the model's default matches the
// system's default.
func buildSystemPrompt(defaultDueDate string) string {
	var sb strings.Builder

	sb.WriteString("You are a business-intelligence analyst. Analyze the meeting content and respond with a single JSON object, no prose, matching exactly this schema:\n")
	sb.WriteString(`{"executive_summary": string, "strategic_highlights": string[], "opportunities": string[], "risks": string[], "key_quotes": string[], "sectors": string[], "jurisdictions": string[], "meeting_type": string, "action_items": [{"title": string, "description": string, "assigned_to": string, "priority": "low"|"medium"|"high", "due_date": "YYYY-MM-DD"}]}`)
	sb.WriteString("\nAll fields are required. Use empty arrays when nothing applies.\n\n")

	sb.WriteString("Allowed sectors: " + strings.Join(sectorTaxonomy, ", ") + ".\n")
	sb.WriteString("Allowed jurisdictions: " + strings.Join(jurisdictionTaxonomy, ", ") + ".\n")
	sb.WriteString("Allowed meeting_type values: ")
	for i, mt := range meetingTypes {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(mt))
	}
	sb.WriteString(".\n\n")

	sb.WriteString("Extraction rules:\n")
	sb.WriteString("1. Split compound action items into separate atomic tasks. \"Send the deck and book a follow-up\" is two tasks, each independently assignable and completable.\n")
	sb.WriteString(fmt.Sprintf("2. Each action item title is the action only, maximum %d characters, no assignee name baked in. Put full context in the description.\n", analyzedTitleMaxLen))
	sb.WriteString("3. assigned_to must be the participant the transcript indicates should do the work, not whoever recorded the meeting and not the vendor's assignee field. Use \"Unassigned\" when unclear.\n")
	sb.WriteString(fmt.Sprintf("4. due_date: use a deadline explicitly mentioned in the meeting; otherwise use %s.\n", defaultDueDate))
	sb.WriteString("5. Tag only sectors that were actually discussed. Never default to a sector the meeting did not touch.\n")

	return sb.String()
}

func buildUserPrompt(payload *fathom.RawRecordingPayload, participants []string) string {
	var sb strings.Builder

	sb.WriteString("Meeting title: " + payload.BestTitle() + "\n")
	if payload.CreatedAt != "" {
		sb.WriteString("Meeting date: " + payload.CreatedAt + "\n")
	}
	if len(participants) > 0 {
		sb.WriteString("Participants: " + strings.Join(participants, ", ") + "\n")
	}

	if payload.DefaultSummary != "" {
		sb.WriteString("\nVendor summary:\n" + payload.DefaultSummary + "\n")
	}

	if len(payload.ActionItems) > 0 {
		sb.WriteString("\nVendor action items (raw, may be compound):\n")
		for _, item := range payload.ActionItems {
			sb.WriteString("- " + item.Description)
			if item.Assignee != "" {
				sb.WriteString(" (vendor assignee: " + item.Assignee + ")")
			}
			sb.WriteString("\n")
		}
	}

	transcript := TruncateForAnalysis(BuildTranscriptText(payload.Transcript))
	if transcript != "" {
		sb.WriteString("\nTranscript:\n" + transcript + "\n")
	}

	return sb.String()
}

// fallbackAnalysis is the availability guarantee when the LLM is down or
// misbehaving: vendor summary (or a synthesized one-liner), empty lists except
// sectors=["General"], and vendor action items passed through 1:1.
func fallbackAnalysis(payload *fathom.RawRecordingPayload, participants []string, defaultDueDate string) *entities.AnalysisResult {
	summary := payload.DefaultSummary
	if summary == "" {
		summary = synthesizeSummary(payload, participants)
	}

	items := make([]entities.AnalyzedActionItem, 0, len(payload.ActionItems))
	for _, raw := range payload.ActionItems {
		assignee := raw.Assignee
		if assignee == "" {
			assignee = "Unassigned"
		}
		items = append(items, entities.AnalyzedActionItem{
			Title:       truncateTitle(raw.Description),
			Description: raw.Description,
			AssignedTo:  assignee,
			Priority:    string(entities.TaskPriorityMedium),
			DueDate:     defaultDueDate,
		})
	}

	return &entities.AnalysisResult{
		ExecutiveSummary:    summary,
		StrategicHighlights: []string{},
		Opportunities:       []string{},
		Risks:               []string{},
		KeyQuotes:           []string{},
		Sectors:             []string{"General"},
		Jurisdictions:       []string{},
		MeetingType:         string(entities.MeetingTypeGeneral),
		ActionItems:         items,
	}
}

func synthesizeSummary(payload *fathom.RawRecordingPayload, participants []string) string {
	title := payload.BestTitle()
	if title == "" {
		title = "Untitled meeting"
	}
	if len(participants) == 0 {
		return fmt.Sprintf("Meeting: %s.", title)
	}
	return fmt.Sprintf("Meeting: %s with %s.", title, strings.Join(participants, ", "))
}

// postProcess enforces the output invariants regardless of which path
// produced the result: titles capped, priorities coerced, due dates
// defaulted, meeting type valid, no nil lists.
func postProcess(result *entities.AnalysisResult, defaultDueDate string) {
	for i := range result.ActionItems {
		item := &result.ActionItems[i]
		item.Title = truncateTitle(item.Title)
		item.Priority = string(entities.CoercePriority(item.Priority))
		if item.DueDate == "" {
			item.DueDate = defaultDueDate
		}
		if item.AssignedTo == "" {
			item.AssignedTo = "Unassigned"
		}
	}

	if !isKnownMeetingType(result.MeetingType) {
		result.MeetingType = string(entities.MeetingTypeGeneral)
	}

	if result.StrategicHighlights == nil {
		result.StrategicHighlights = []string{}
	}
	if result.Opportunities == nil {
		result.Opportunities = []string{}
	}
	if result.Risks == nil {
		result.Risks = []string{}
	}
	if result.KeyQuotes == nil {
		result.KeyQuotes = []string{}
	}
	if result.Sectors == nil {
		result.Sectors = []string{}
	}
	if result.Jurisdictions == nil {
		result.Jurisdictions = []string{}
	}
	if result.ActionItems == nil {
		result.ActionItems = []entities.AnalyzedActionItem{}
	}
}

func isKnownMeetingType(raw string) bool {
	for _, mt := range meetingTypes {
		if string(mt) == raw {
			return true
		}
	}
	return false
}

func truncateTitle(title string) string {
	if len(title) <= analyzedTitleMaxLen {
		return title
	}
	return title[:analyzedTitleMaxLen]
}

// mustJSON marshals list fields for jsonb storage; the inputs are plain
// slices and cannot fail to marshal.
func mustJSON(v interface{}) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		return []byte("[]")
	}
	return b
}
