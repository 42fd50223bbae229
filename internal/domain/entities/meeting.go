package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SourceType identifies the vendor a meeting was ingested from
type SourceType string

const (
	SourceTypeFathom  SourceType = "fathom"
	SourceTypePlaud   SourceType = "plaud"
	SourceTypeGeneric SourceType = "generic"
)

// MeetingType classifies a meeting by its business purpose
type MeetingType string

const (
	MeetingTypeNewClient   MeetingType = "New Client"
	MeetingTypeFollowUp    MeetingType = "Follow-Up"
	MeetingTypeInternal    MeetingType = "Internal"
	MeetingTypeDealReview  MeetingType = "Deal Review"
	MeetingTypePartnership MeetingType = "Partnership"
	MeetingTypeGeneral     MeetingType = "General"
)

// Meeting is one ingested meeting intelligence record.
// (source_id, source_type) is unique: the database constraint is the
// correctness backstop for idempotent ingestion, the pipeline pre-check is
// only an optimization.
type Meeting struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrgID               string         `gorm:"type:varchar(64);index;default:''" json:"org_id,omitempty"`
	SourceID            string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_meetings_source,priority:1" json:"source_id"`
	SourceType          SourceType     `gorm:"type:varchar(32);not null;uniqueIndex:idx_meetings_source,priority:2" json:"source_type"`
	Title               string         `gorm:"type:varchar(512)" json:"title"`
	MeetingDate         time.Time      `gorm:"not null;index" json:"meeting_date"`
	MeetingType         MeetingType    `gorm:"type:varchar(32);default:'General'" json:"meeting_type"`
	PrimaryLead         string         `gorm:"type:varchar(255)" json:"primary_lead"`
	ExecutiveSummary    string         `gorm:"type:text" json:"executive_summary"`
	FullTranscript      *string        `gorm:"type:text" json:"full_transcript,omitempty"`
	Participants        datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"participants"`
	Organizations       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"organizations"`
	Jurisdictions       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"jurisdictions"`
	Sectors             datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"sectors"`
	Tags                datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"tags"`
	StrategicHighlights datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"strategic_highlights"`
	Opportunities       datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"opportunities"`
	Risks               datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"risks"`
	KeyQuotes           datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"key_quotes"`
	ContactIDs          datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"contact_ids"`
	CompanyIDs          datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"company_ids"`
	VendorMetadata      datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"vendor_metadata"`
	CreatedAt           time.Time      `gorm:"default:now()" json:"created_at"`
	UpdatedAt           time.Time      `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for Meeting
func (Meeting) TableName() string {
	return "meetings"
}
