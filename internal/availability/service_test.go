package availability

import (
	"context"
	"testing"

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

func (m *MockRepository) List(ctx context.Context, trainerID int, window calendar.Window) ([]calendar.Availability, error) {
	args := m.Called(ctx, trainerID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]calendar.Availability), args.Error(1)
}

func (m *MockRepository) Upsert(ctx context.Context, a calendar.Availability) (*calendar.Availability, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.Availability), args.Error(1)
}

func (m *MockRepository) BulkUpsert(ctx context.Context, records []calendar.Availability) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockRepository) GetBlockedWeekdays(ctx context.Context, trainerID int) ([]int, error) {
	args := m.Called(ctx, trainerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockRepository) ReplaceBlockedWeekdays(ctx context.Context, trainerID int, weekdays []int) error {
	args := m.Called(ctx, trainerID, weekdays)
	return args.Error(0)
}

type recorder struct {
	changes []events.CalendarChanged
}

func newRecordingBus() (*events.Bus, *recorder) {
	bus := events.NewBus()
	rec := &recorder{}
	events.Subscribe(bus, func(e events.CalendarChanged) {
		rec.changes = append(rec.changes, e)
	})
	return bus, rec
}

func TestService_Set(t *testing.T) {
	t.Run("normalizes and saves", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("Upsert", mock.Anything, calendar.Availability{TrainerID: 7, Date: "2024-03-04", Status: "available"}).
			Return(&calendar.Availability{ID: 1, TrainerID: 7, Date: "2024-03-04", Status: "available"}, nil)

		bus, rec := newRecordingBus()
		svc := NewService(mockRepo, bus)

		saved, err := svc.Set(context.Background(), 7, SetRequest{Date: "2024-03-04", Status: " Available "})
		require.NoError(t, err)
		assert.Equal(t, 1, saved.ID)
		assert.Equal(t, []events.CalendarChanged{{TrainerID: 7, Reason: "availability"}}, rec.changes)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects blocked status", func(t *testing.T) {
		mockRepo := new(MockRepository)
		bus, rec := newRecordingBus()
		svc := NewService(mockRepo, bus)

		_, err := svc.Set(context.Background(), 7, SetRequest{Date: "2024-03-04", Status: "blocked"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
		assert.Empty(t, rec.changes)
		mockRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		svc := NewService(new(MockRepository), events.NewBus())

		_, err := svc.Set(context.Background(), 7, SetRequest{Date: "2024-02-30", Status: "available"})
		assert.ErrorIs(t, err, calendar.ErrMalformedDate)
	})
}

func TestService_BulkSet(t *testing.T) {
	t.Run("expands the range inclusively", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("BulkUpsert", mock.Anything, mock.MatchedBy(func(records []calendar.Availability) bool {
			if len(records) != 3 {
				return false
			}
			return records[0].Date == "2024-02-28" && records[1].Date == "2024-02-29" && records[2].Date == "2024-03-01"
		})).Return(nil)

		bus, rec := newRecordingBus()
		svc := NewService(mockRepo, bus)

		n, err := svc.BulkSet(context.Background(), 7, BulkRequest{StartDate: "2024-02-28", EndDate: "2024-03-01", Status: "tentative"})
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Len(t, rec.changes, 1)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects inverted range before expanding", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, events.NewBus())

		n, err := svc.BulkSet(context.Background(), 7, BulkRequest{StartDate: "2024-03-10", EndDate: "2024-03-01", Status: "available"})
		assert.ErrorIs(t, err, calendar.ErrInvalidWindow)
		assert.Zero(t, n)
		mockRepo.AssertNotCalled(t, "BulkUpsert", mock.Anything, mock.Anything)
	})

	t.Run("accepts a full leap year", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("BulkUpsert", mock.Anything, mock.MatchedBy(func(records []calendar.Availability) bool {
			return len(records) == MaxBulkDays
		})).Return(nil)
		svc := NewService(mockRepo, events.NewBus())

		n, err := svc.BulkSet(context.Background(), 7, BulkRequest{StartDate: "2024-01-01", EndDate: "2024-12-31", Status: "available"})
		require.NoError(t, err)
		assert.Equal(t, MaxBulkDays, n)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rejects ranges longer than the cap before expanding", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, events.NewBus())

		for _, req := range []BulkRequest{
			{StartDate: "2024-01-01", EndDate: "2025-01-01", Status: "available"},
			{StartDate: "0001-01-01", EndDate: "9999-12-31", Status: "available"},
		} {
			n, err := svc.BulkSet(context.Background(), 7, req)
			assert.ErrorIs(t, err, ErrRangeTooLong)
			assert.Zero(t, n)
		}
		mockRepo.AssertNotCalled(t, "BulkUpsert", mock.Anything, mock.Anything)
	})
}

func TestService_SetBlockedWeekdays(t *testing.T) {
	t.Run("deduplicates and sorts", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("ReplaceBlockedWeekdays", mock.Anything, 7, []int{0, 6}).Return(nil)

		bus, rec := newRecordingBus()
		svc := NewService(mockRepo, bus)

		got, err := svc.SetBlockedWeekdays(context.Background(), 7, []int{6, 0, 6})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 6}, got)
		assert.Equal(t, []events.CalendarChanged{{TrainerID: 7, Reason: "blocked_weekdays"}}, rec.changes)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty set clears", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("ReplaceBlockedWeekdays", mock.Anything, 7, []int{}).Return(nil)

		svc := NewService(mockRepo, events.NewBus())
		got, err := svc.SetBlockedWeekdays(context.Background(), 7, []int{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("rejects out of range weekday", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, events.NewBus())

		_, err := svc.SetBlockedWeekdays(context.Background(), 7, []int{7})
		assert.ErrorIs(t, err, calendar.ErrInvalidWeekday)
		mockRepo.AssertNotCalled(t, "ReplaceBlockedWeekdays", mock.Anything, mock.Anything, mock.Anything)
	})
}
