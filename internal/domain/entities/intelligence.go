package entities

import (
	"encoding/json"
)

// IntelligenceData is the canonical, vendor-agnostic meeting record: the
// contract between the analyzer (or a generic webhook sender) and the
// ingestion pipeline. sourceId + sourceType is the dedup key.
type IntelligenceData struct {
	SourceID            string          `json:"sourceId" validate:"required"`
	SourceType          SourceType      `json:"sourceType"`
	MeetingTitle        string          `json:"meetingTitle,omitempty"`
	MeetingDate         string          `json:"meetingDate" validate:"required"`
	PrimaryLead         string          `json:"primaryLead,omitempty"`
	Participants        []string        `json:"participants,omitempty"`
	Organizations       []string        `json:"organizations,omitempty"`
	Jurisdictions       []string        `json:"jurisdictions,omitempty"`
	Sectors             []string        `json:"sectors,omitempty"`
	Tags                []string        `json:"tags,omitempty"`
	ExecutiveSummary    string          `json:"executiveSummary" validate:"required"`
	MeetingType         MeetingType     `json:"meetingType,omitempty"`
	StrategicHighlights []string        `json:"strategicHighlights,omitempty"`
	Opportunities       []string        `json:"opportunities,omitempty"`
	Risks               []string        `json:"risks,omitempty"`
	KeyQuotes           []string        `json:"keyQuotes,omitempty"`
	ActionItems         []ActionItem    `json:"actionItems,omitempty"`
	FullTranscript      string          `json:"fullTranscript,omitempty"`
	IntelligenceData    json.RawMessage `json:"intelligenceData,omitempty"`
}

// ActionItem is a tagged union: senders may supply either a bare string or a
// structured action item. Unmarshalling accepts both; a bare string populates
// Title only.
type ActionItem struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

// UnmarshalJSON accepts both "do the thing" and {"title": "...", ...}
func (a *ActionItem) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = ActionItem{Title: s}
		return nil
	}

	type alias ActionItem
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*a = ActionItem(obj)
	return nil
}

// AnalyzedActionItem is one atomic, person-assigned, dated task produced by
// the analyzer. Title is action-only and hard-capped at 80 characters;
// AssignedTo is a participant name or "Unassigned".
type AnalyzedActionItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

// AnalysisResult is the structured output of meeting analysis, on both the
// LLM path and the deterministic fallback path.
type AnalysisResult struct {
	ExecutiveSummary    string               `json:"executive_summary"`
	StrategicHighlights []string             `json:"strategic_highlights"`
	Opportunities       []string             `json:"opportunities"`
	Risks               []string             `json:"risks"`
	KeyQuotes           []string             `json:"key_quotes"`
	Sectors             []string             `json:"sectors"`
	Jurisdictions       []string             `json:"jurisdictions"`
	MeetingType         string               `json:"meeting_type"`
	ActionItems         []AnalyzedActionItem `json:"action_items"`
}
