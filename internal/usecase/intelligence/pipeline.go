package intelligence

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/omniscope-hq/meeting-intel/errors"
	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
	"github.com/omniscope-hq/meeting-intel/internal/domain/repositories"
)

// DedupCache is a best-effort fast path in front of the database dedup
// lookup. A miss or a cache failure always falls through to the repository;
// the unique index remains the correctness backstop.
type DedupCache interface {
	GetMeetingID(ctx context.Context, sourceID string, sourceType entities.SourceType) (string, bool)
	SetMeetingID(ctx context.Context, sourceID string, sourceType entities.SourceType, meetingID string)
}

// ProcessResult is the outcome of one ingestion attempt. Duplicate delivery
// is a non-error outcome: Success is false and Reason is "duplicate".
type ProcessResult struct {
	Success   bool   `json:"success"`
	MeetingID string `json:"meetingId,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

func duplicateResult(meetingID string) *ProcessResult {
	return &ProcessResult{Success: false, MeetingID: meetingID, Reason: "duplicate"}
}

// Pipeline persists canonical intelligence data: the meeting record, resolved
// contacts and companies, and extracted tasks.
type Pipeline struct {
	meetings  repositories.MeetingRepository
	contacts  repositories.ContactRepository
	companies repositories.CompanyRepository
	tasks     repositories.TaskRepository
	cache     DedupCache
	logger    *zap.Logger
}

// NewPipeline creates an ingestion pipeline. cache may be nil.
func NewPipeline(
	meetings repositories.MeetingRepository,
	contacts repositories.ContactRepository,
	companies repositories.CompanyRepository,
	tasks repositories.TaskRepository,
	cache DedupCache,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		meetings:  meetings,
		contacts:  contacts,
		companies: companies,
		tasks:     tasks,
		cache:     cache,
		logger:    logger,
	}
}

// meetingDateLayouts are accepted in order. Date-only values land at midnight
// UTC.
var meetingDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseMeetingDate(raw string) (time.Time, error) {
	for _, layout := range meetingDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.ErrInvalidArgument("meetingDate is not a recognized date format")
}

// ProcessIntelligenceData validates, deduplicates and persists one canonical
// meeting record. Safe to call repeatedly with the same payload: redelivery
// of an already-ingested (sourceId, sourceType) yields a duplicate outcome,
// never a second row and never an error.
func (p *Pipeline) ProcessIntelligenceData(ctx context.Context, data *entities.IntelligenceData, orgID string) (*ProcessResult, error) {
	if data.SourceType == "" {
		data.SourceType = entities.SourceTypeGeneric
	}

	if missing := missingRequiredFields(data); missing != "" {
		return nil, errors.ErrMissingFields(missing)
	}

	meetingDate, err := parseMeetingDate(data.MeetingDate)
	if err != nil {
		return nil, err
	}

	if existing := p.lookupExisting(ctx, data); existing != "" {
		if p.logger != nil {
			p.logger.Info("duplicate delivery skipped",
				zap.String("source_id", data.SourceID),
				zap.String("source_type", string(data.SourceType)),
			)
		}
		return duplicateResult(existing), nil
	}

	contactIDs, contactsByName := p.resolveContacts(ctx, orgID, data.Participants)
	companyIDs := p.resolveCompanies(ctx, orgID, data.Organizations)

	meeting := p.buildMeeting(data, orgID, meetingDate, contactIDs, companyIDs)
	if err := p.meetings.Create(ctx, meeting); err != nil {
		if stderrors.Is(err, repositories.ErrDuplicateMeeting) {
			// Lost a concurrent-delivery race. The winner's row is
			// authoritative.
			if winner, ferr := p.meetings.FindBySource(ctx, data.SourceID, data.SourceType); ferr == nil && winner != nil {
				return duplicateResult(winner.ID.String()), nil
			}
			return duplicateResult(""), nil
		}
		return nil, errors.ErrDBQueryFailed("create meeting", err)
	}

	p.createTasks(ctx, meeting, data.ActionItems, orgID, contactsByName)
	p.recordMeetingStats(ctx, contactIDs, companyIDs, meetingDate)

	if p.cache != nil {
		p.cache.SetMeetingID(ctx, data.SourceID, data.SourceType, meeting.ID.String())
	}

	if p.logger != nil {
		p.logger.Info("meeting ingested",
			zap.String("meeting_id", meeting.ID.String()),
			zap.String("source_id", data.SourceID),
			zap.String("source_type", string(data.SourceType)),
			zap.Int("contacts", len(contactIDs)),
			zap.Int("companies", len(companyIDs)),
			zap.Int("tasks", len(data.ActionItems)),
		)
	}

	return &ProcessResult{Success: true, MeetingID: meeting.ID.String()}, nil
}

func missingRequiredFields(data *entities.IntelligenceData) string {
	var missing []string
	if strings.TrimSpace(data.SourceID) == "" {
		missing = append(missing, "sourceId")
	}
	if strings.TrimSpace(data.MeetingDate) == "" {
		missing = append(missing, "meetingDate")
	}
	if strings.TrimSpace(data.ExecutiveSummary) == "" {
		missing = append(missing, "executiveSummary")
	}
	return strings.Join(missing, ", ")
}

// lookupExisting returns the meeting ID of an already-ingested record for
// this dedup key, or "". Cache first, then the database.
func (p *Pipeline) lookupExisting(ctx context.Context, data *entities.IntelligenceData) string {
	if p.cache != nil {
		if id, ok := p.cache.GetMeetingID(ctx, data.SourceID, data.SourceType); ok {
			return id
		}
	}

	existing, err := p.meetings.FindBySource(ctx, data.SourceID, data.SourceType)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("dedup lookup failed, relying on unique index", zap.Error(err))
		}
		return ""
	}
	if existing == nil {
		return ""
	}
	if p.cache != nil {
		p.cache.SetMeetingID(ctx, data.SourceID, data.SourceType, existing.ID.String())
	}
	return existing.ID.String()
}

// resolveContacts upserts each participant. Resolution failures degrade the
// record rather than failing ingestion.
func (p *Pipeline) resolveContacts(ctx context.Context, orgID string, names []string) ([]uuid.UUID, map[string]uuid.UUID) {
	ids := make([]uuid.UUID, 0, len(names))
	byName := make(map[string]uuid.UUID, len(names))

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		contact, err := p.contacts.FindOrCreate(ctx, orgID, name)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("contact resolution failed", zap.String("name", name), zap.Error(err))
			}
			continue
		}
		ids = append(ids, contact.ID)
		byName[entities.NormalizeName(name)] = contact.ID
	}
	return ids, byName
}

func (p *Pipeline) resolveCompanies(ctx context.Context, orgID string, names []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		company, err := p.companies.FindOrCreate(ctx, orgID, name)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("company resolution failed", zap.String("name", name), zap.Error(err))
			}
			continue
		}
		ids = append(ids, company.ID)
	}
	return ids
}

func (p *Pipeline) buildMeeting(data *entities.IntelligenceData, orgID string, meetingDate time.Time, contactIDs, companyIDs []uuid.UUID) *entities.Meeting {
	meetingType := data.MeetingType
	if meetingType == "" {
		meetingType = entities.MeetingTypeGeneral
	}

	var transcript *string
	if data.FullTranscript != "" {
		t := data.FullTranscript
		transcript = &t
	}

	vendorMetadata := datatypes.JSON([]byte("{}"))
	if len(data.IntelligenceData) > 0 {
		vendorMetadata = datatypes.JSON(data.IntelligenceData)
	}

	return &entities.Meeting{
		ID:                  uuid.New(),
		OrgID:               orgID,
		SourceID:            data.SourceID,
		SourceType:          data.SourceType,
		Title:               data.MeetingTitle,
		MeetingDate:         meetingDate,
		MeetingType:         meetingType,
		PrimaryLead:         data.PrimaryLead,
		ExecutiveSummary:    data.ExecutiveSummary,
		FullTranscript:      transcript,
		Participants:        datatypes.JSON(mustJSON(emptyIfNil(data.Participants))),
		Organizations:       datatypes.JSON(mustJSON(emptyIfNil(data.Organizations))),
		Jurisdictions:       datatypes.JSON(mustJSON(emptyIfNil(data.Jurisdictions))),
		Sectors:             datatypes.JSON(mustJSON(emptyIfNil(data.Sectors))),
		Tags:                datatypes.JSON(mustJSON(emptyIfNil(data.Tags))),
		StrategicHighlights: datatypes.JSON(mustJSON(emptyIfNil(data.StrategicHighlights))),
		Opportunities:       datatypes.JSON(mustJSON(emptyIfNil(data.Opportunities))),
		Risks:               datatypes.JSON(mustJSON(emptyIfNil(data.Risks))),
		KeyQuotes:           datatypes.JSON(mustJSON(emptyIfNil(data.KeyQuotes))),
		ContactIDs:          datatypes.JSON(mustJSON(contactIDs)),
		CompanyIDs:          datatypes.JSON(mustJSON(companyIDs)),
		VendorMetadata:      vendorMetadata,
	}
}

// createTasks persists action items, linking each to a contact when the
// assignee matches a resolved participant by normalized name. Task failures
// are logged and skipped; the meeting record is already committed.
func (p *Pipeline) createTasks(ctx context.Context, meeting *entities.Meeting, items []entities.ActionItem, orgID string, contactsByName map[string]uuid.UUID) {
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}

		task := &entities.Task{
			ID:          uuid.New(),
			OrgID:       orgID,
			MeetingID:   meeting.ID,
			Title:       truncateTitle(title),
			Description: item.Description,
			AssignedTo:  "Unassigned",
			Priority:    entities.CoercePriority(item.Priority),
			Status:      entities.TaskStatusPending,
		}

		if assignee := strings.TrimSpace(item.AssignedTo); assignee != "" {
			task.AssignedTo = assignee
			if contactID, ok := contactsByName[entities.NormalizeName(assignee)]; ok {
				id := contactID
				task.ContactID = &id
			}
		}

		if item.DueDate != "" {
			if due, err := time.Parse("2006-01-02", item.DueDate); err == nil {
				task.DueDate = &due
			} else if due, err := time.Parse(time.RFC3339, item.DueDate); err == nil {
				task.DueDate = &due
			}
		}

		if err := p.tasks.Create(ctx, task); err != nil && p.logger != nil {
			p.logger.Warn("task creation failed",
				zap.String("meeting_id", meeting.ID.String()),
				zap.String("title", task.Title),
				zap.Error(err),
			)
		}
	}
}

func (p *Pipeline) recordMeetingStats(ctx context.Context, contactIDs, companyIDs []uuid.UUID, meetingDate time.Time) {
	for _, id := range contactIDs {
		if err := p.contacts.RecordMeeting(ctx, id, meetingDate); err != nil && p.logger != nil {
			p.logger.Warn("contact stats update failed", zap.String("contact_id", id.String()), zap.Error(err))
		}
	}
	for _, id := range companyIDs {
		if err := p.companies.RecordMeeting(ctx, id, meetingDate); err != nil && p.logger != nil {
			p.logger.Warn("company stats update failed", zap.String("company_id", id.String()), zap.Error(err))
		}
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
