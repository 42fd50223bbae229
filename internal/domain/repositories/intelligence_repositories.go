package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
)

// ErrDuplicateMeeting is returned by MeetingRepository.Create when a meeting
// with the same (source_id, source_type) already exists. The unique index is
// the correctness backstop for idempotent ingestion.
var ErrDuplicateMeeting = errors.New("meeting already ingested for this source")

// MeetingRepository persists ingested meetings. Create must surface a
// duplicate (source_id, source_type) insert as ErrDuplicateMeeting so the
// pipeline can translate a lost dedup race into a duplicate outcome.
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	FindBySource(ctx context.Context, sourceID string, sourceType entities.SourceType) (*entities.Meeting, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
}

// ContactRepository resolves and persists contacts, deduplicated by
// case-insensitive name within an org scope.
type ContactRepository interface {
	FindOrCreate(ctx context.Context, orgID, name string) (*entities.Contact, error)
	RecordMeeting(ctx context.Context, id uuid.UUID, meetingDate time.Time) error
}

// CompanyRepository resolves and persists companies, deduplicated by
// case-insensitive name within an org scope.
type CompanyRepository interface {
	FindOrCreate(ctx context.Context, orgID, name string) (*entities.Company, error)
	RecordMeeting(ctx context.Context, id uuid.UUID, meetingDate time.Time) error
}

// TaskRepository persists action items extracted from meetings
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	FindByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*entities.Task, error)
}
