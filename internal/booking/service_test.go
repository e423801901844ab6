package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trainercal/internal/calendar"
	"trainercal/internal/events"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListRequests(ctx context.Context, trainerID int, window calendar.Window) ([]Request, error) {
	args := m.Called(ctx, trainerID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Request), args.Error(1)
}

func (m *MockRepository) ListAllRequests(ctx context.Context, trainerID int) ([]Request, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Request), args.Error(1)
}

func (m *MockRepository) GetRequestByID(ctx context.Context, id int) (*Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockRepository) UpdateRequestStatus(ctx context.Context, id int, fromStatus, toStatus string) (*Request, error) {
	args := m.Called(ctx, id, fromStatus, toStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Request), args.Error(1)
}

func (m *MockRepository) ListEvents(ctx context.Context, trainerID int, window calendar.Window) ([]Event, error) {
	args := m.Called(ctx, trainerID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Event), args.Error(1)
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusDenied, true},
		{StatusPending, StatusConfirmed, false},
		{StatusApproved, StatusConfirmed, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusDenied, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusDenied, StatusApproved, false},
		{StatusCancelled, StatusConfirmed, false},
		{" Pending", "APPROVED", true},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestService_ListRequests_InvalidWindow(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, events.NewBus())

	w := calendar.Window{
		From: time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local),
		To:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
	}
	_, err := svc.ListRequests(context.Background(), 7, w)

	assert.ErrorIs(t, err, calendar.ErrInvalidWindow)
	mockRepo.AssertNotCalled(t, "ListRequests", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_PendingRequests(t *testing.T) {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	mockRepo := new(MockRepository)
	mockRepo.On("ListAllRequests", mock.Anything, 7).Return([]Request{
		{ID: 2, Status: StatusPending, CreatedAt: base.Add(time.Hour)},
		{ID: 1, Status: StatusApproved, CreatedAt: base},
		{ID: 3, Status: StatusPending, CreatedAt: base},
	}, nil)

	svc := NewService(mockRepo, events.NewBus())
	pending, err := svc.PendingRequests(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "request-3", pending[0].ID)
	assert.Equal(t, "request-2", pending[1].ID)
	mockRepo.AssertExpectations(t)
}

func TestService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		status        string
		setupMock     func(*MockRepository)
		expectedError error
		expectEvent   bool
	}{
		{
			name:   "approve pending request",
			status: StatusApproved,
			setupMock: func(m *MockRepository) {
				m.On("GetRequestByID", mock.Anything, 3).Return(&Request{ID: 3, TrainerID: 7, Status: StatusPending}, nil)
				m.On("UpdateRequestStatus", mock.Anything, 3, StatusPending, StatusApproved).
					Return(&Request{ID: 3, TrainerID: 7, Status: StatusApproved}, nil)
			},
			expectEvent: true,
		},
		{
			name:   "request not found",
			status: StatusApproved,
			setupMock: func(m *MockRepository) {
				m.On("GetRequestByID", mock.Anything, 3).Return(nil, sql.ErrNoRows)
			},
			expectedError: ErrRequestNotFound,
		},
		{
			name:   "invalid transition",
			status: StatusConfirmed,
			setupMock: func(m *MockRepository) {
				m.On("GetRequestByID", mock.Anything, 3).Return(&Request{ID: 3, TrainerID: 7, Status: StatusPending}, nil)
			},
			expectedError: ErrInvalidTransition,
		},
		{
			name:   "changed concurrently",
			status: StatusDenied,
			setupMock: func(m *MockRepository) {
				m.On("GetRequestByID", mock.Anything, 3).Return(&Request{ID: 3, TrainerID: 7, Status: StatusPending}, nil)
				m.On("UpdateRequestStatus", mock.Anything, 3, StatusPending, StatusDenied).
					Return(nil, ErrRequestNotFoundOrChanged)
			},
			expectedError: ErrRequestNotFoundOrChanged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)
			tt.setupMock(mockRepo)

			bus := events.NewBus()
			var published []events.CalendarChanged
			events.Subscribe(bus, func(e events.CalendarChanged) {
				published = append(published, e)
			})

			svc := NewService(mockRepo, bus)
			updated, err := svc.UpdateStatus(context.Background(), 3, tt.status)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, updated)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.status, updated.Status)
			}

			if tt.expectEvent {
				assert.Equal(t, []events.CalendarChanged{{TrainerID: 7, Reason: "booking_status"}}, published)
			} else {
				assert.Empty(t, published)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}
