package shop

import "context"

type Repository interface {
	Create(ctx context.Context, s Shop, hours []WorkingHours) (*Shop, error)
	GetByID(ctx context.Context, id int) (*Shop, error)
	GetByOwner(ctx context.Context, ownerID int) (*Shop, error)
	List(ctx context.Context, city string) ([]Shop, error)
	Update(ctx context.Context, s *Shop) error
	GetWorkingHours(ctx context.Context, shopID int) ([]WorkingHours, error)
	ReplaceWorkingHours(ctx context.Context, shopID int, hours []WorkingHours) error
	ListClosures(ctx context.Context, shopID int) ([]string, error)
	AddClosure(ctx context.Context, shopID int, date string) error
	RemoveClosure(ctx context.Context, shopID int, date string) error
	UpdateRating(ctx context.Context, shopID int, rating float64, totalReviews int) error
}
