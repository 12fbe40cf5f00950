package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/config"
	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
)

// ModerationService owns the report lifecycle:
// pending -> reviewing -> resolved, where reviewing may be skipped.
// Resolving a report applies its sanction in the same transaction.
type ModerationService struct {
	reports ReportStore
	policy  config.PolicyConfig
}

// NewModerationService creates a new ModerationService.
func NewModerationService(reports ReportStore, policy config.PolicyConfig) *ModerationService {
	return &ModerationService{reports: reports, policy: policy}
}

// Submit files a new report in pending status. A reporter may hold only
// one unresolved report per appointment.
func (s *ModerationService) Submit(ctx context.Context, reporterID, reportedID string, reportType models.ReportType, title, description string, appointmentID *string) (*models.Report, error) {
	if !models.ValidReportType(reportType) {
		return nil, fmt.Errorf("unknown report type %q", reportType)
	}

	existing, err := s.reports.FindUnresolved(ctx, reporterID, appointmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReport
	}

	report := &models.Report{
		ReporterID:    reporterID,
		ReportedID:    reportedID,
		ReportType:    reportType,
		Title:         title,
		Description:   description,
		AppointmentID: appointmentID,
		Status:        models.ReportStatusPending,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// BeginReview moves a pending report to reviewing. Calling it on a report
// already in review is a no-op; a resolved report cannot be reopened.
func (s *ModerationService) BeginReview(ctx context.Context, id string) (*models.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch report.Status {
	case models.ReportStatusReviewing:
		return report, nil
	case models.ReportStatusResolved:
		return nil, ErrInvalidTransition
	}
	report.Status = models.ReportStatusReviewing
	if err := s.reports.Save(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// Resolve closes a report with the given decision and applies the sanction
// it implies to the reported user. The status change and the sanction
// record are persisted in one transaction.
func (s *ModerationService) Resolve(ctx context.Context, id string, resolution models.ReportResolution, adminNote string, now time.Time) (*models.Report, error) {
	if !models.ValidResolution(resolution) {
		return nil, fmt.Errorf("unknown resolution %q", resolution)
	}

	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status == models.ReportStatusResolved {
		return nil, ErrInvalidTransition
	}

	warning, penalty := s.sanctionFor(report.ReportedID, resolution, now)

	report.Status = models.ReportStatusResolved
	report.Resolution = resolution
	report.AdminNote = adminNote
	report.ResolvedAt = &now

	if err := s.reports.ResolveWithEffect(ctx, report, warning, penalty); err != nil {
		return nil, err
	}
	return report, nil
}

// sanctionFor maps a resolution to the record it produces. Dismissal
// produces nothing. All durations and multipliers come from policy config.
func (s *ModerationService) sanctionFor(userID string, resolution models.ReportResolution, now time.Time) (*models.Warning, *models.Penalty) {
	switch resolution {
	case models.ResolutionWarningIssued:
		expires := now.Add(s.policy.WarningExpiry)
		return &models.Warning{
			UserID:      userID,
			WarningType: models.WarningTypeConduct,
			Severity:    models.SeverityMedium,
			Message:     "A report against your account was upheld. Further misconduct may lead to penalties.",
			ExpiresAt:   &expires,
		}, nil
	case models.ResolutionPenaltyApplied:
		until := now.Add(s.policy.FeePenaltyDuration)
		return nil, &models.Penalty{
			UserID:         userID,
			PenaltyType:    models.PenaltyFeeMultiplier,
			Reason:         "report upheld: consultation fee surcharge",
			Multiplier:     s.policy.FeePenaltyMultiplier,
			EffectiveFrom:  now,
			EffectiveUntil: &until,
		}
	case models.ResolutionAccountSuspended:
		until := now.Add(s.policy.SuspensionDuration)
		return nil, &models.Penalty{
			UserID:         userID,
			PenaltyType:    models.PenaltyTemporarySuspension,
			Reason:         "report upheld: booking suspended",
			Multiplier:     1.0,
			EffectiveFrom:  now,
			EffectiveUntil: &until,
		}
	case models.ResolutionAccountBanned:
		return nil, &models.Penalty{
			UserID:        userID,
			PenaltyType:   models.PenaltyTemporarySuspension,
			Reason:        "report upheld: account banned",
			Multiplier:    1.0,
			EffectiveFrom: now,
			// No end date: an indefinite suspension is a ban.
		}
	}
	return nil, nil
}

// IsNotFound reports whether err is any of the entity not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAppointmentNotFound) ||
		errors.Is(err, ErrReportNotFound) ||
		errors.Is(err, ErrWarningNotFound) ||
		errors.Is(err, ErrPenaltyNotFound)
}
