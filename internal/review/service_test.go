package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allin1appd-sys/zenchair/internal/shop"
)

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, r Review) (*Review, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Review), args.Error(1)
}

func (m *MockRepository) ListByShop(ctx context.Context, shopID int) ([]ReviewWithCustomer, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ReviewWithCustomer), args.Error(1)
}

func (m *MockRepository) HasReviewed(ctx context.Context, shopID, customerID int) (bool, error) {
	args := m.Called(ctx, shopID, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) AverageRating(ctx context.Context, shopID int) (float64, int, error) {
	args := m.Called(ctx, shopID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

// MockShopRepository is a mock implementation of shop.Repository
type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) Create(ctx context.Context, s shop.Shop, hours []shop.WorkingHours) (*shop.Shop, error) {
	args := m.Called(ctx, s, hours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Shop), args.Error(1)
}

func (m *MockShopRepository) GetByID(ctx context.Context, id int) (*shop.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Shop), args.Error(1)
}

func (m *MockShopRepository) GetByOwner(ctx context.Context, ownerID int) (*shop.Shop, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Shop), args.Error(1)
}

func (m *MockShopRepository) List(ctx context.Context, city string) ([]shop.Shop, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shop.Shop), args.Error(1)
}

func (m *MockShopRepository) Update(ctx context.Context, s *shop.Shop) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShopRepository) GetWorkingHours(ctx context.Context, shopID int) ([]shop.WorkingHours, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shop.WorkingHours), args.Error(1)
}

func (m *MockShopRepository) ReplaceWorkingHours(ctx context.Context, shopID int, hours []shop.WorkingHours) error {
	args := m.Called(ctx, shopID, hours)
	return args.Error(0)
}

func (m *MockShopRepository) ListClosures(ctx context.Context, shopID int) ([]string, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockShopRepository) AddClosure(ctx context.Context, shopID int, date string) error {
	args := m.Called(ctx, shopID, date)
	return args.Error(0)
}

func (m *MockShopRepository) RemoveClosure(ctx context.Context, shopID int, date string) error {
	args := m.Called(ctx, shopID, date)
	return args.Error(0)
}

func (m *MockShopRepository) UpdateRating(ctx context.Context, shopID int, rating float64, totalReviews int) error {
	args := m.Called(ctx, shopID, rating, totalReviews)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	t.Run("first review updates shop rating", func(t *testing.T) {
		repo := new(MockRepository)
		shops := new(MockShopRepository)

		shops.On("GetByID", mock.Anything, 1).Return(&shop.Shop{ID: 1, OwnerID: 2}, nil)
		repo.On("HasReviewed", mock.Anything, 1, 3).Return(false, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(r Review) bool {
			return r.ShopID == 1 && r.CustomerID == 3 && r.Rating == 5
		})).Return(&Review{ID: 10, ShopID: 1, CustomerID: 3, Rating: 5}, nil)
		repo.On("AverageRating", mock.Anything, 1).Return(5.0, 1, nil)
		shops.On("UpdateRating", mock.Anything, 1, 5.0, 1).Return(nil)

		service := NewService(repo, shops)
		created, err := service.Create(context.Background(), 3, 1, CreateReviewRequest{Rating: 5, Comment: "great cut"})
		require.NoError(t, err)
		assert.Equal(t, 10, created.ID)
		shops.AssertExpectations(t)
	})

	t.Run("second review rejected", func(t *testing.T) {
		repo := new(MockRepository)
		shops := new(MockShopRepository)

		shops.On("GetByID", mock.Anything, 1).Return(&shop.Shop{ID: 1}, nil)
		repo.On("HasReviewed", mock.Anything, 1, 3).Return(true, nil)

		service := NewService(repo, shops)
		_, err := service.Create(context.Background(), 3, 1, CreateReviewRequest{Rating: 4})
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown shop", func(t *testing.T) {
		repo := new(MockRepository)
		shops := new(MockShopRepository)

		shops.On("GetByID", mock.Anything, 99).Return(nil, shop.ErrShopNotFound)

		service := NewService(repo, shops)
		_, err := service.Create(context.Background(), 3, 99, CreateReviewRequest{Rating: 4})
		assert.ErrorIs(t, err, shop.ErrShopNotFound)
	})
}

func TestService_ListByShop(t *testing.T) {
	repo := new(MockRepository)
	shops := new(MockShopRepository)

	shops.On("GetByID", mock.Anything, 1).Return(&shop.Shop{ID: 1}, nil)
	repo.On("ListByShop", mock.Anything, 1).Return([]ReviewWithCustomer{
		{Review: Review{ID: 10, ShopID: 1, Rating: 5}, CustomerName: "Alice"},
	}, nil)

	service := NewService(repo, shops)
	reviews, err := service.ListByShop(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Alice", reviews[0].CustomerName)
}
