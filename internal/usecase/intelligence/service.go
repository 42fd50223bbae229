package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/omniscope-hq/meeting-intel/errors"
	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
	"github.com/omniscope-hq/meeting-intel/pkg/fathom"
)

// VendorClient is the slice of the Fathom API the service depends on
type VendorClient interface {
	ListMeetings(ctx context.Context, limit int, cursor string) (*fathom.ListMeetingsResponse, error)
	RegisterWebhook(ctx context.Context, destinationURL string) (*fathom.WebhookRegistration, error)
	HasAPIKey() bool
}

// CursorStore persists the batch-import pagination cursor between runs.
// Best effort: load and save failures degrade to a fresh import.
type CursorStore interface {
	LoadImportCursor(ctx context.Context) (string, error)
	SaveImportCursor(ctx context.Context, cursor string) error
}

// Service is the meeting-intelligence use case: webhook ingestion on both the
// vendor and canonical paths, batch import, and webhook registration.
type Service interface {
	ProcessRecording(ctx context.Context, payload *fathom.RawRecordingPayload, source entities.SourceType, orgID string) (*ProcessResult, error)
	ProcessIntelligence(ctx context.Context, data *entities.IntelligenceData, orgID string) (*ProcessResult, error)
	ImportFathomMeetings(ctx context.Context, opts ImportOptions) (*ImportResult, error)
	RegisterFathomWebhook(ctx context.Context, destinationURL string) (*fathom.WebhookRegistration, error)
}

type service struct {
	analyzer *Analyzer
	pipeline *Pipeline
	vendor   VendorClient
	cursors  CursorStore
	logger   *zap.Logger
}

// NewService creates the intelligence service. vendor and cursors may be nil;
// without a vendor client only webhook receipt is available.
func NewService(analyzer *Analyzer, pipeline *Pipeline, vendor VendorClient, cursors CursorStore, logger *zap.Logger) Service {
	return &service{
		analyzer: analyzer,
		pipeline: pipeline,
		vendor:   vendor,
		cursors:  cursors,
		logger:   logger,
	}
}

// ProcessRecording runs the full enrichment path over a vendor-shaped
// payload: entity extraction, transcript normalization, analysis, then
// ingestion of the assembled canonical record.
func (s *service) ProcessRecording(ctx context.Context, payload *fathom.RawRecordingPayload, source entities.SourceType, orgID string) (*ProcessResult, error) {
	participants := ExtractParticipants(payload)
	organizations := ExtractOrganizations(payload)
	primaryLead := DeterminePrimaryLead(payload)
	transcript := BuildTranscriptText(payload.Transcript)

	analysis := s.analyzer.AnalyzeMeeting(ctx, payload)

	data := &entities.IntelligenceData{
		SourceID:            deriveSourceID(payload),
		SourceType:          source,
		MeetingTitle:        payload.BestTitle(),
		MeetingDate:         deriveMeetingDate(payload),
		PrimaryLead:         primaryLead,
		Participants:        participants,
		Organizations:       organizations,
		Jurisdictions:       analysis.Jurisdictions,
		Sectors:             analysis.Sectors,
		ExecutiveSummary:    analysis.ExecutiveSummary,
		MeetingType:         entities.MeetingType(analysis.MeetingType),
		StrategicHighlights: analysis.StrategicHighlights,
		Opportunities:       analysis.Opportunities,
		Risks:               analysis.Risks,
		KeyQuotes:           analysis.KeyQuotes,
		ActionItems:         toActionItems(analysis.ActionItems),
		FullTranscript:      transcript,
		IntelligenceData:    vendorMetadataJSON(payload),
	}

	return s.pipeline.ProcessIntelligenceData(ctx, data, orgID)
}

// ProcessIntelligence ingests an already-canonical payload without analysis
func (s *service) ProcessIntelligence(ctx context.Context, data *entities.IntelligenceData, orgID string) (*ProcessResult, error) {
	return s.pipeline.ProcessIntelligenceData(ctx, data, orgID)
}

// RegisterFathomWebhook performs one-time vendor-side webhook setup
func (s *service) RegisterFathomWebhook(ctx context.Context, destinationURL string) (*fathom.WebhookRegistration, error) {
	if s.vendor == nil || !s.vendor.HasAPIKey() {
		return nil, errors.ErrMissingAPIKey("Fathom")
	}

	reg, err := s.vendor.RegisterWebhook(ctx, destinationURL)
	if err != nil {
		return nil, errors.ErrFathomAPIFailed("register webhook", err)
	}

	if s.logger != nil {
		s.logger.Info("fathom webhook registered",
			zap.String("webhook_id", reg.ID),
			zap.String("destination", reg.URL),
		)
	}
	return reg, nil
}

// deriveSourceID picks the most stable vendor identifier available. The
// title+date fallback keeps redelivery of identifier-less payloads idempotent.
func deriveSourceID(payload *fathom.RawRecordingPayload) string {
	if payload.RecordingID != "" {
		return payload.RecordingID
	}
	if payload.ShareURL != "" {
		return payload.ShareURL
	}
	if payload.URL != "" {
		return payload.URL
	}
	return fmt.Sprintf("%s-%s", payload.BestTitle(), payload.CreatedAt)
}

func deriveMeetingDate(payload *fathom.RawRecordingPayload) string {
	if payload.CreatedAt != "" {
		return payload.CreatedAt
	}
	if payload.RecordingStartTime != "" {
		return payload.RecordingStartTime
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func toActionItems(items []entities.AnalyzedActionItem) []entities.ActionItem {
	out := make([]entities.ActionItem, 0, len(items))
	for _, item := range items {
		out = append(out, entities.ActionItem{
			Title:       item.Title,
			Description: item.Description,
			AssignedTo:  item.AssignedTo,
			Priority:    item.Priority,
			DueDate:     item.DueDate,
		})
	}
	return out
}

// vendorMetadataJSON preserves the vendor identifiers and links alongside the
// canonical record.
func vendorMetadataJSON(payload *fathom.RawRecordingPayload) json.RawMessage {
	meta := map[string]string{}
	if payload.RecordingID != "" {
		meta["recording_id"] = payload.RecordingID
	}
	if payload.URL != "" {
		meta["url"] = payload.URL
	}
	if payload.ShareURL != "" {
		meta["share_url"] = payload.ShareURL
	}
	if payload.RecordingStartTime != "" {
		meta["recording_start_time"] = payload.RecordingStartTime
	}
	if payload.RecordingEndTime != "" {
		meta["recording_end_time"] = payload.RecordingEndTime
	}
	if len(meta) == 0 {
		return nil
	}
	return mustJSON(meta)
}
