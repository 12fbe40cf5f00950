package models

import (
	"time"
)

// WarningSeverity grades how serious a warning is
type WarningSeverity string

const (
	SeverityLow    WarningSeverity = "low"
	SeverityMedium WarningSeverity = "medium"
	SeverityHigh   WarningSeverity = "high"
)

// WarningType records what triggered the warning
type WarningType string

const (
	WarningTypeConduct     WarningType = "conduct"
	WarningTypeNoShow      WarningType = "no_show"
	WarningTypeLateCancels WarningType = "late_cancellations"
	WarningTypeOther       WarningType = "other"
)

// Warning represents a formal notice issued to a user, either directly by
// an admin or as the outcome of a report resolution. Warnings do not block
// booking; they only mark the account as in bad standing while active.
type Warning struct {
	BaseModel
	UserID      string          `gorm:"size:36;index" json:"userId"`
	WarningType WarningType     `gorm:"size:30" json:"warningType"`
	Severity    WarningSeverity `gorm:"size:10;default:'medium'" json:"severity"`
	Message     string          `gorm:"type:text" json:"message"`
	ExpiresAt   *time.Time      `json:"expiresAt,omitempty"`
	IsRead      bool            `gorm:"default:false" json:"isRead"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Active reports whether the warning still counts against the user at now.
// A nil ExpiresAt means the warning never expires on its own.
func (w Warning) Active(now time.Time) bool {
	return w.ExpiresAt == nil || w.ExpiresAt.After(now)
}
