package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Hoangsonvjppro/clinic-booking-app-sub001/internal/models"
)

type mockReportStore struct {
	mock.Mock
}

func (m *mockReportStore) GetByID(ctx context.Context, id string) (*models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *mockReportStore) Create(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	if args.Error(0) == nil {
		report.ID = uuid.New().String()
	}
	return args.Error(0)
}

func (m *mockReportStore) Save(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *mockReportStore) FindUnresolved(ctx context.Context, reporterID string, appointmentID *string) (*models.Report, error) {
	args := m.Called(ctx, reporterID, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *mockReportStore) ResolveWithEffect(ctx context.Context, report *models.Report, warning *models.Warning, penalty *models.Penalty) error {
	args := m.Called(ctx, report, warning, penalty)
	return args.Error(0)
}

func TestModerationService_Submit_Success(t *testing.T) {
	store := new(mockReportStore)
	svc := NewModerationService(store, testPolicy())
	ctx := context.Background()

	appointmentID := uuid.New().String()
	store.On("FindUnresolved", ctx, "reporter-1", &appointmentID).Return(nil, nil)
	store.On("Create", ctx, mock.AnythingOfType("*models.Report")).Return(nil)

	report, err := svc.Submit(ctx, "reporter-1", "reported-1", models.ReportTypeNoShow,
		"Doctor did not show up", "Waited 40 minutes past the slot.", &appointmentID)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)
	assert.Equal(t, "reporter-1", report.ReporterID)
	assert.Equal(t, "reported-1", report.ReportedID)
	store.AssertExpectations(t)
}

func TestModerationService_Submit_Duplicate(t *testing.T) {
	store := new(mockReportStore)
	svc := NewModerationService(store, testPolicy())
	ctx := context.Background()

	appointmentID := uuid.New().String()
	open := &models.Report{Status: models.ReportStatusPending}
	store.On("FindUnresolved", ctx, "reporter-1", &appointmentID).Return(open, nil)

	_, err := svc.Submit(ctx, "reporter-1", "reported-1", models.ReportTypeMisconduct,
		"title", "description", &appointmentID)
	assert.ErrorIs(t, err, ErrDuplicateReport)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestModerationService_Submit_UnknownType(t *testing.T) {
	store := new(mockReportStore)
	svc := NewModerationService(store, testPolicy())

	_, err := svc.Submit(context.Background(), "reporter-1", "reported-1",
		models.ReportType("gossip"), "title", "description", nil)
	assert.Error(t, err)
}

func TestModerationService_BeginReview(t *testing.T) {
	ctx := context.Background()

	t.Run("pending moves to reviewing", func(t *testing.T) {
		store := new(mockReportStore)
		svc := NewModerationService(store, testPolicy())
		report := &models.Report{Status: models.ReportStatusPending}
		store.On("GetByID", ctx, "r1").Return(report, nil)
		store.On("Save", ctx, report).Return(nil)

		updated, err := svc.BeginReview(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, models.ReportStatusReviewing, updated.Status)
	})

	t.Run("reviewing is a no-op", func(t *testing.T) {
		store := new(mockReportStore)
		svc := NewModerationService(store, testPolicy())
		report := &models.Report{Status: models.ReportStatusReviewing}
		store.On("GetByID", ctx, "r1").Return(report, nil)

		updated, err := svc.BeginReview(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, models.ReportStatusReviewing, updated.Status)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("resolved cannot be reopened", func(t *testing.T) {
		store := new(mockReportStore)
		svc := NewModerationService(store, testPolicy())
		report := &models.Report{Status: models.ReportStatusResolved}
		store.On("GetByID", ctx, "r1").Return(report, nil)

		_, err := svc.BeginReview(ctx, "r1")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestModerationService_Resolve_SideEffects(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	policy := testPolicy()

	tests := []struct {
		name        string
		resolution  models.ReportResolution
		wantWarning func(t *testing.T, w *models.Warning)
		wantPenalty func(t *testing.T, p *models.Penalty)
	}{
		{
			name:       "dismissed produces nothing",
			resolution: models.ResolutionDismissed,
			wantWarning: func(t *testing.T, w *models.Warning) {
				assert.Nil(t, w)
			},
			wantPenalty: func(t *testing.T, p *models.Penalty) {
				assert.Nil(t, p)
			},
		},
		{
			name:       "warning issued",
			resolution: models.ResolutionWarningIssued,
			wantWarning: func(t *testing.T, w *models.Warning) {
				require.NotNil(t, w)
				assert.Equal(t, "reported-1", w.UserID)
				assert.Equal(t, models.SeverityMedium, w.Severity)
				require.NotNil(t, w.ExpiresAt)
				assert.Equal(t, now.Add(policy.WarningExpiry), *w.ExpiresAt)
			},
			wantPenalty: func(t *testing.T, p *models.Penalty) {
				assert.Nil(t, p)
			},
		},
		{
			name:       "penalty applied",
			resolution: models.ResolutionPenaltyApplied,
			wantWarning: func(t *testing.T, w *models.Warning) {
				assert.Nil(t, w)
			},
			wantPenalty: func(t *testing.T, p *models.Penalty) {
				require.NotNil(t, p)
				assert.Equal(t, "reported-1", p.UserID)
				assert.Equal(t, models.PenaltyFeeMultiplier, p.PenaltyType)
				assert.Equal(t, policy.FeePenaltyMultiplier, p.Multiplier)
				require.NotNil(t, p.EffectiveUntil)
				assert.Equal(t, now.Add(policy.FeePenaltyDuration), *p.EffectiveUntil)
			},
		},
		{
			name:       "account suspended",
			resolution: models.ResolutionAccountSuspended,
			wantWarning: func(t *testing.T, w *models.Warning) {
				assert.Nil(t, w)
			},
			wantPenalty: func(t *testing.T, p *models.Penalty) {
				require.NotNil(t, p)
				assert.Equal(t, models.PenaltyTemporarySuspension, p.PenaltyType)
				require.NotNil(t, p.EffectiveUntil)
				assert.Equal(t, now.Add(policy.SuspensionDuration), *p.EffectiveUntil)
			},
		},
		{
			name:       "account banned is an indefinite suspension",
			resolution: models.ResolutionAccountBanned,
			wantWarning: func(t *testing.T, w *models.Warning) {
				assert.Nil(t, w)
			},
			wantPenalty: func(t *testing.T, p *models.Penalty) {
				require.NotNil(t, p)
				assert.Equal(t, models.PenaltyTemporarySuspension, p.PenaltyType)
				assert.Nil(t, p.EffectiveUntil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mockReportStore)
			svc := NewModerationService(store, policy)

			report := &models.Report{ReportedID: "reported-1", Status: models.ReportStatusReviewing}
			store.On("GetByID", ctx, "r1").Return(report, nil)

			var gotWarning *models.Warning
			var gotPenalty *models.Penalty
			store.On("ResolveWithEffect", ctx, report, mock.Anything, mock.Anything).
				Run(func(args mock.Arguments) {
					gotWarning, _ = args.Get(2).(*models.Warning)
					gotPenalty, _ = args.Get(3).(*models.Penalty)
				}).
				Return(nil)

			resolved, err := svc.Resolve(ctx, "r1", tt.resolution, "reviewed", now)
			require.NoError(t, err)
			assert.Equal(t, models.ReportStatusResolved, resolved.Status)
			assert.Equal(t, tt.resolution, resolved.Resolution)
			require.NotNil(t, resolved.ResolvedAt)
			assert.Equal(t, now, *resolved.ResolvedAt)

			tt.wantWarning(t, gotWarning)
			tt.wantPenalty(t, gotPenalty)
			store.AssertNumberOfCalls(t, "ResolveWithEffect", 1)
		})
	}
}

func TestModerationService_Resolve_AlreadyResolved(t *testing.T) {
	ctx := context.Background()
	store := new(mockReportStore)
	svc := NewModerationService(store, testPolicy())

	report := &models.Report{Status: models.ReportStatusResolved}
	store.On("GetByID", ctx, "r1").Return(report, nil)

	_, err := svc.Resolve(ctx, "r1", models.ResolutionDismissed, "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
	store.AssertNotCalled(t, "ResolveWithEffect", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestModerationService_Resolve_UnknownResolution(t *testing.T) {
	store := new(mockReportStore)
	svc := NewModerationService(store, testPolicy())

	_, err := svc.Resolve(context.Background(), "r1", models.ReportResolution("shrug"), "", time.Now())
	assert.Error(t, err)
	store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
