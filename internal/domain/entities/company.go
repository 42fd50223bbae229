package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Company is an organization resolved from external participant email domains,
// deduplicated by case-insensitive name within an org scope.
type Company struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID           string     `gorm:"type:varchar(64);uniqueIndex:idx_companies_name,priority:1;default:''" json:"org_id,omitempty"`
	Name            string     `gorm:"type:varchar(255);not null" json:"name"`
	NormalizedName  string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_companies_name,priority:2" json:"-"`
	LastMeetingDate *time.Time `json:"last_meeting_date,omitempty"`
	MeetingCount    int        `gorm:"default:0" json:"meeting_count"`
	CreatedAt       time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Company
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a company with its normalized dedup key
func NewCompany(orgID, name string) *Company {
	return &Company{
		ID:             uuid.New(),
		OrgID:          orgID,
		Name:           strings.TrimSpace(name),
		NormalizedName: NormalizeName(name),
	}
}
