package shop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, s Shop, hours []WorkingHours) (*Shop, error) {
	args := m.Called(ctx, s, hours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Shop), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Shop), args.Error(1)
}

func (m *MockRepository) GetByOwner(ctx context.Context, ownerID int) (*Shop, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Shop), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, city string) ([]Shop, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Shop), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, s *Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRepository) GetWorkingHours(ctx context.Context, shopID int) ([]WorkingHours, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]WorkingHours), args.Error(1)
}

func (m *MockRepository) ReplaceWorkingHours(ctx context.Context, shopID int, hours []WorkingHours) error {
	args := m.Called(ctx, shopID, hours)
	return args.Error(0)
}

func (m *MockRepository) ListClosures(ctx context.Context, shopID int) ([]string, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRepository) AddClosure(ctx context.Context, shopID int, date string) error {
	args := m.Called(ctx, shopID, date)
	return args.Error(0)
}

func (m *MockRepository) RemoveClosure(ctx context.Context, shopID int, date string) error {
	args := m.Called(ctx, shopID, date)
	return args.Error(0)
}

func (m *MockRepository) UpdateRating(ctx context.Context, shopID int, rating float64, totalReviews int) error {
	args := m.Called(ctx, shopID, rating, totalReviews)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	t.Run("defaults granularity and seeds hours", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByOwner", mock.Anything, 2).Return(nil, ErrShopNotFound)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(s Shop) bool {
			return s.OwnerID == 2 && s.SlotGranularity == 30
		}), mock.MatchedBy(func(hours []WorkingHours) bool {
			return len(hours) == 7
		})).Return(&Shop{ID: 1, OwnerID: 2, SlotGranularity: 30}, nil)

		service := NewService(mockRepo, 30)
		created, err := service.Create(context.Background(), 2, CreateShopRequest{Name: "Fade Factory"})
		require.NoError(t, err)
		assert.Equal(t, 30, created.SlotGranularity)
		mockRepo.AssertExpectations(t)
	})

	t.Run("one shop per owner", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByOwner", mock.Anything, 2).Return(&Shop{ID: 1, OwnerID: 2}, nil)

		service := NewService(mockRepo, 30)
		_, err := service.Create(context.Background(), 2, CreateShopRequest{Name: "Second Shop"})
		assert.ErrorIs(t, err, ErrShopExists)
	})

	t.Run("granularity must divide the hour", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByOwner", mock.Anything, 2).Return(nil, ErrShopNotFound)

		service := NewService(mockRepo, 30)
		_, err := service.Create(context.Background(), 2, CreateShopRequest{
			Name:            "Odd Shop",
			SlotGranularity: 25,
		})
		assert.ErrorIs(t, err, ErrInvalidWorkingHours)
	})
}

func TestService_Update_NotOwner(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("GetByID", mock.Anything, 1).Return(&Shop{ID: 1, OwnerID: 2, SlotGranularity: 30}, nil)

	service := NewService(mockRepo, 30)
	_, err := service.Update(context.Background(), 9, 1, UpdateShopRequest{Name: "Hijacked"})
	assert.ErrorIs(t, err, ErrNotShopOwner)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_ReplaceWorkingHours(t *testing.T) {
	entries := make([]WorkingHoursEntry, 7)
	for d := 0; d < 7; d++ {
		entries[d] = WorkingHoursEntry{Weekday: d, OpenTime: "10:00", CloseTime: "19:00"}
	}

	t.Run("valid template", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", mock.Anything, 1).Return(&Shop{ID: 1, OwnerID: 2}, nil)
		mockRepo.On("ReplaceWorkingHours", mock.Anything, 1, mock.MatchedBy(func(hours []WorkingHours) bool {
			return len(hours) == 7 && hours[0].ShopID == 1 && hours[0].OpenMinute == 600
		})).Return(nil)

		service := NewService(mockRepo, 30)
		err := service.ReplaceWorkingHours(context.Background(), 2, 1, ReplaceHoursRequest{Hours: entries})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("incomplete week rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", mock.Anything, 1).Return(&Shop{ID: 1, OwnerID: 2}, nil)

		service := NewService(mockRepo, 30)
		err := service.ReplaceWorkingHours(context.Background(), 2, 1, ReplaceHoursRequest{Hours: entries[:4]})
		assert.ErrorIs(t, err, ErrInvalidWorkingHours)
	})

	t.Run("not owner", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", mock.Anything, 1).Return(&Shop{ID: 1, OwnerID: 2}, nil)

		service := NewService(mockRepo, 30)
		err := service.ReplaceWorkingHours(context.Background(), 9, 1, ReplaceHoursRequest{Hours: entries})
		assert.ErrorIs(t, err, ErrNotShopOwner)
	})
}

func TestService_AddClosure(t *testing.T) {
	t.Run("valid date", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", mock.Anything, 1).Return(&Shop{ID: 1, OwnerID: 2}, nil)
		mockRepo.On("AddClosure", mock.Anything, 1, "2026-09-15").Return(nil)

		service := NewService(mockRepo, 30)
		err := service.AddClosure(context.Background(), 2, 1, "2026-09-15")
		require.NoError(t, err)
	})

	t.Run("malformed date", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetByID", mock.Anything, 1).Return(&Shop{ID: 1, OwnerID: 2}, nil)

		service := NewService(mockRepo, 30)
		err := service.AddClosure(context.Background(), 2, 1, "15/09/2026")
		assert.ErrorIs(t, err, ErrInvalidWorkingHours)
	})
}

func TestService_OpenWindowForDate(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("GetWorkingHours", mock.Anything, 1).Return(fullWeek(540, 1080), nil)
	mockRepo.On("ListClosures", mock.Anything, 1).Return([]string{"2026-09-08"}, nil)

	service := NewService(mockRepo, 30)

	monday, _ := time.Parse(DateLayout, "2026-09-07")
	window, open, err := service.OpenWindowForDate(context.Background(), 1, monday)
	require.NoError(t, err)
	assert.True(t, open)
	assert.Equal(t, 540, window.Open)

	tuesday, _ := time.Parse(DateLayout, "2026-09-08")
	_, open, err = service.OpenWindowForDate(context.Background(), 1, tuesday)
	require.NoError(t, err)
	assert.False(t, open)
}
