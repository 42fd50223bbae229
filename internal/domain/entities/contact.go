package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Contact is a person resolved from meeting participants, deduplicated by
// case-insensitive name within an org scope.
type Contact struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID           string     `gorm:"type:varchar(64);uniqueIndex:idx_contacts_name,priority:1;default:''" json:"org_id,omitempty"`
	Name            string     `gorm:"type:varchar(255);not null" json:"name"`
	NormalizedName  string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_contacts_name,priority:2" json:"-"`
	LastMeetingDate *time.Time `json:"last_meeting_date,omitempty"`
	MeetingCount    int        `gorm:"default:0" json:"meeting_count"`
	CreatedAt       time.Time  `gorm:"default:now()" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a contact with its normalized dedup key
func NewContact(orgID, name string) *Contact {
	return &Contact{
		ID:             uuid.New(),
		OrgID:          orgID,
		Name:           strings.TrimSpace(name),
		NormalizedName: NormalizeName(name),
	}
}

// NormalizeName lowercases and trims a name for case-insensitive matching
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
