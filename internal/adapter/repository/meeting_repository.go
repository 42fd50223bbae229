package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
	"github.com/omniscope-hq/meeting-intel/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// Create inserts a meeting, translating a unique-index violation on the
// dedup key into ErrDuplicateMeeting.
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	err := r.db.WithContext(ctx).Create(meeting).Error
	if err == nil {
		return nil
	}
	if isDuplicateKeyError(err) {
		return repositories.ErrDuplicateMeeting
	}
	return err
}

// FindBySource retrieves a meeting by its dedup key. Returns (nil, nil) when
// no meeting exists.
func (r *meetingRepository) FindBySource(ctx context.Context, sourceID string, sourceType entities.SourceType) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Where("source_id = ? AND source_type = ?", sourceID, sourceType).
		First(&meeting).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// FindByID retrieves a meeting by its primary key
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&meeting).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

// isDuplicateKeyError detects unique-constraint violations across gorm and
// the postgres driver (SQLSTATE 23505).
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
