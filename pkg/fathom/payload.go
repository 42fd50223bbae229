package fathom

// RawRecordingPayload is the vendor-shaped meeting payload as delivered by a
// Fathom webhook or fetched from the list-meetings API. It is untrusted and
// fully optional: every field may be absent. Only derived data is persisted.
type RawRecordingPayload struct {
	Title              string            `json:"title,omitempty"`
	MeetingTitle       string            `json:"meeting_title,omitempty"`
	URL                string            `json:"url,omitempty"`
	ShareURL           string            `json:"share_url,omitempty"`
	CreatedAt          string            `json:"created_at,omitempty"`
	RecordingStartTime string            `json:"recording_start_time,omitempty"`
	RecordingEndTime   string            `json:"recording_end_time,omitempty"`
	RecordingID        string            `json:"recording_id,omitempty"`
	Transcript         []TranscriptEntry `json:"transcript,omitempty"`
	DefaultSummary     string            `json:"default_summary,omitempty"`
	ActionItems        []RawActionItem   `json:"action_items,omitempty"`
	CalendarInvitees   []CalendarInvitee `json:"calendar_invitees,omitempty"`
	RecordedBy         *RecordedBy       `json:"recorded_by,omitempty"`
}

// TranscriptEntry is one timestamped speaker turn
type TranscriptEntry struct {
	Speaker   Speaker `json:"speaker"`
	Text      string  `json:"text"`
	Timestamp string  `json:"timestamp"`
}

// Speaker identifies who spoke a transcript turn
type Speaker struct {
	DisplayName string `json:"display_name"`
}

// RawActionItem is a vendor-generated action item
type RawActionItem struct {
	Description   string `json:"description"`
	Assignee      string `json:"assignee,omitempty"`
	Completed     bool   `json:"completed"`
	UserGenerated bool   `json:"user_generated"`
}

// CalendarInvitee is one invitee from the meeting's calendar event
type CalendarInvitee struct {
	Name                      string `json:"name,omitempty"`
	Email                     string `json:"email,omitempty"`
	IsExternal                bool   `json:"is_external"`
	EmailDomain               string `json:"email_domain,omitempty"`
	MatchedSpeakerDisplayName string `json:"matched_speaker_display_name,omitempty"`
}

// RecordedBy identifies the internal staff member who recorded the session
type RecordedBy struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	EmailDomain string `json:"email_domain,omitempty"`
}

// BestTitle returns the meeting title, whichever vendor field carries it
func (p *RawRecordingPayload) BestTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return p.MeetingTitle
}
