package catalog

import "context"

type Repository interface {
	Create(ctx context.Context, s Service) (*Service, error)
	GetByID(ctx context.Context, id int) (*Service, error)
	GetByIDs(ctx context.Context, shopID int, ids []int) ([]Service, error)
	ListByShop(ctx context.Context, shopID int) ([]Service, error)
	Update(ctx context.Context, s *Service) error
	Delete(ctx context.Context, id int) error
}
