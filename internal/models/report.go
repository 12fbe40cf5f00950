package models

import (
	"time"
)

// ReportStatus represents the review state of a misconduct report
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusReviewing ReportStatus = "reviewing"
	ReportStatusResolved  ReportStatus = "resolved"
)

// ReportType categorizes what the reporter is complaining about
type ReportType string

const (
	ReportTypeNoShow        ReportType = "no_show"
	ReportTypeMisconduct    ReportType = "misconduct"
	ReportTypeAbusiveSpeech ReportType = "abusive_speech"
	ReportTypeSpam          ReportType = "spam"
	ReportTypeOther         ReportType = "other"
)

// ReportResolution is the administrative decision that closes a report
type ReportResolution string

const (
	ResolutionDismissed        ReportResolution = "dismissed"
	ResolutionWarningIssued    ReportResolution = "warning_issued"
	ResolutionPenaltyApplied   ReportResolution = "penalty_applied"
	ResolutionAccountSuspended ReportResolution = "account_suspended"
	ResolutionAccountBanned    ReportResolution = "account_banned"
)

// ValidReportType reports whether t is one of the known categories.
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportTypeNoShow, ReportTypeMisconduct, ReportTypeAbusiveSpeech, ReportTypeSpam, ReportTypeOther:
		return true
	}
	return false
}

// ValidResolution reports whether r is one of the known decisions.
func ValidResolution(r ReportResolution) bool {
	switch r {
	case ResolutionDismissed, ResolutionWarningIssued, ResolutionPenaltyApplied,
		ResolutionAccountSuspended, ResolutionAccountBanned:
		return true
	}
	return false
}

// Report represents a misconduct report filed by one user against another,
// optionally tied to a specific appointment.
type Report struct {
	BaseModel
	ReporterID    string           `gorm:"size:36;index" json:"reporterId"`
	ReportedID    string           `gorm:"size:36;index" json:"reportedId"`
	ReportType    ReportType       `gorm:"size:30" json:"reportType"`
	Title         string           `gorm:"size:255" json:"title"`
	Description   string           `gorm:"type:text" json:"description"`
	AppointmentID *string          `gorm:"size:36;index" json:"appointmentId,omitempty"`
	Status        ReportStatus     `gorm:"size:20;default:'pending';index" json:"status"`
	Resolution    ReportResolution `gorm:"size:30" json:"resolution,omitempty"`
	AdminNote     string           `gorm:"type:text" json:"adminNote,omitempty"`
	ResolvedAt    *time.Time       `json:"resolvedAt,omitempty"`

	// Relations
	Reporter    User         `gorm:"foreignKey:ReporterID" json:"-"`
	Reported    User         `gorm:"foreignKey:ReportedID" json:"-"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}
