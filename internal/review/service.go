package review

import (
	"context"

	"github.com/allin1appd-sys/zenchair/internal/shop"
)

type Service interface {
	Create(ctx context.Context, customerID, shopID int, req CreateReviewRequest) (*Review, error)
	ListByShop(ctx context.Context, shopID int) ([]ReviewWithCustomer, error)
}

type service struct {
	repo     Repository
	shopRepo shop.Repository
}

func NewService(repo Repository, shopRepo shop.Repository) Service {
	return &service{
		repo:     repo,
		shopRepo: shopRepo,
	}
}

// Create stores the review and folds it into the shop's aggregate
// rating. One review per customer per shop.
func (s *service) Create(ctx context.Context, customerID, shopID int, req CreateReviewRequest) (*Review, error) {
	if _, err := s.shopRepo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}

	reviewed, err := s.repo.HasReviewed(ctx, shopID, customerID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, ErrAlreadyReviewed
	}

	created, err := s.repo.Create(ctx, Review{
		ShopID:     shopID,
		CustomerID: customerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return nil, err
	}

	avg, count, err := s.repo.AverageRating(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if err := s.shopRepo.UpdateRating(ctx, shopID, avg, count); err != nil {
		return nil, err
	}

	return created, nil
}

func (s *service) ListByShop(ctx context.Context, shopID int) ([]ReviewWithCustomer, error) {
	if _, err := s.shopRepo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	return s.repo.ListByShop(ctx, shopID)
}
