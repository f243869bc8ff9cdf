// file: internals/features/performances/model/performance_model.go
package model

import "strings"

/* ===================== Enums ===================== */

// LifecycleStatus: NULL / "" are legacy spellings of Scheduled.
type LifecycleStatus string

const (
	LifecycleScheduled LifecycleStatus = "Scheduled"
	LifecycleCancelled LifecycleStatus = "Cancelled"
)

func (s LifecycleStatus) IsCancelled() bool { return s == LifecycleCancelled }

// ParseLifecycleStatus accepts the values a create form may send.
func ParseLifecycleStatus(v string) (LifecycleStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "scheduled":
		return LifecycleScheduled, true
	case "cancelled", "canceled":
		return LifecycleCancelled, true
	default:
		return "", false
	}
}

type ApprovalStatus string

const (
	ApprovalUnreviewed ApprovalStatus = "Unreviewed"
	ApprovalApproved   ApprovalStatus = "Approved"
	ApprovalRejected   ApprovalStatus = "Rejected"
)

// Labels written by older deployments.
const (
	LegacyUnreviewedLabel = "미승인"
	LegacyApprovedLabel   = "승인"
	LegacyRejectedLabel   = "반려"
)

// NormalizeApproval maps stored values (including legacy labels) onto the canonical enum.
func NormalizeApproval(v string) ApprovalStatus {
	switch strings.TrimSpace(v) {
	case string(ApprovalApproved), LegacyApprovedLabel:
		return ApprovalApproved
	case string(ApprovalRejected), LegacyRejectedLabel:
		return ApprovalRejected
	default:
		return ApprovalUnreviewed
	}
}

/* ===================== Columns ===================== */

// Physical column names. Kept in the legacy spelling so existing tables keep working.
const (
	ColID              = "ID"
	ColLocation        = "Location"
	ColCategory        = "Category"
	ColTitle           = "Title"
	ColDate            = "Date"
	ColVenue           = "Venue"
	ColTeamSetup       = "TeamSetup"
	ColNotes           = "Notes"
	ColStatus          = "Status"
	ColApprovalStatus  = "ApprovalStatus"
	ColRejectionReason = "RejectionReason"
)

/* ===================== Model ===================== */

type PerformanceModel struct {
	ID        string  `gorm:"type:text;primaryKey;column:ID"  json:"id"`
	Location  *string `gorm:"type:text;column:Location"       json:"location"`
	Category  *string `gorm:"type:text;column:Category"       json:"category"`
	Title     *string `gorm:"type:text;column:Title"          json:"title"`
	Date      *string `gorm:"type:text;column:Date"           json:"date"`
	Venue     *string `gorm:"type:text;column:Venue"          json:"venue"`
	TeamSetup *string `gorm:"type:text;column:TeamSetup"      json:"team_setup"`
	Notes     *string `gorm:"type:text;column:Notes"          json:"notes"`

	// Status is nullable in legacy rows; read through Lifecycle().
	Status *string `gorm:"type:text;column:Status" json:"status"`

	ApprovalStatus  *string `gorm:"type:text;default:Unreviewed;column:ApprovalStatus" json:"approval_status"`
	RejectionReason *string `gorm:"type:text;column:RejectionReason"                    json:"rejection_reason,omitempty"`
}

func (PerformanceModel) TableName() string { return "performances" }

func (m *PerformanceModel) Lifecycle() LifecycleStatus {
	if m.Status != nil && *m.Status == string(LifecycleCancelled) {
		return LifecycleCancelled
	}
	return LifecycleScheduled
}

func (m *PerformanceModel) Approval() ApprovalStatus {
	if m.ApprovalStatus == nil {
		return ApprovalUnreviewed
	}
	return NormalizeApproval(*m.ApprovalStatus)
}

func (m *PerformanceModel) DateValue() string {
	return deref(m.Date)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
