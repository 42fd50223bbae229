package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
	"github.com/omniscope-hq/meeting-intel/internal/domain/repositories"
)

// companyRepository implements the CompanyRepository interface
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(db *gorm.DB) repositories.CompanyRepository {
	return &companyRepository{db: db}
}

// FindOrCreate resolves a company by case-insensitive name within the org
// scope, creating it when absent.
func (r *companyRepository) FindOrCreate(ctx context.Context, orgID, name string) (*entities.Company, error) {
	normalized := entities.NormalizeName(name)

	var company entities.Company
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND normalized_name = ?", orgID, normalized).
		First(&company).Error
	if err == nil {
		return &company, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	created := entities.NewCompany(orgID, name)
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		if isDuplicateKeyError(err) {
			err = r.db.WithContext(ctx).
				Where("org_id = ? AND normalized_name = ?", orgID, normalized).
				First(&company).Error
			if err != nil {
				return nil, err
			}
			return &company, nil
		}
		return nil, err
	}
	return created, nil
}

// RecordMeeting bumps the company's last meeting date and meeting count
func (r *companyRepository) RecordMeeting(ctx context.Context, id uuid.UUID, meetingDate time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entities.Company{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_meeting_date": meetingDate,
			"meeting_count":     gorm.Expr("meeting_count + 1"),
			"updated_at":        time.Now().UTC(),
		}).Error
}
