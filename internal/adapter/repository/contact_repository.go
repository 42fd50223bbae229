package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
	"github.com/omniscope-hq/meeting-intel/internal/domain/repositories"
)

// contactRepository implements the ContactRepository interface
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *gorm.DB) repositories.ContactRepository {
	return &contactRepository{db: db}
}

// FindOrCreate resolves a contact by case-insensitive name within the org
// scope, creating it when absent. A lost create race falls back to the
// concurrent winner's row.
func (r *contactRepository) FindOrCreate(ctx context.Context, orgID, name string) (*entities.Contact, error) {
	normalized := entities.NormalizeName(name)

	var contact entities.Contact
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND normalized_name = ?", orgID, normalized).
		First(&contact).Error
	if err == nil {
		return &contact, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := entities.NewContact(orgID, name)
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		if isDuplicateKeyError(err) {
			err = r.db.WithContext(ctx).
				Where("org_id = ? AND normalized_name = ?", orgID, normalized).
				First(&contact).Error
			if err != nil {
				return nil, err
			}
			return &contact, nil
		}
		return nil, err
	}
	return created, nil
}

// RecordMeeting bumps the contact's last meeting date and meeting count
func (r *contactRepository) RecordMeeting(ctx context.Context, id uuid.UUID, meetingDate time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Contact{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_meeting_date": meetingDate,
			"meeting_count":     gorm.Expr("meeting_count + 1"),
			"updated_at":        time.Now().UTC(),
		}).Error
}
