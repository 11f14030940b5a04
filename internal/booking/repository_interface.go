package booking

import "context"

// Repository is the booking ledger. Create is the single authority for
// the non-overlap invariant: the conflict check and the insert run as
// one atomic unit, serialized per (shop, date).
type Repository interface {
	Create(ctx context.Context, b Booking, snapshot []ServiceSnapshot) (*Booking, error)
	GetByID(ctx context.Context, id int) (*Booking, error)
	ListActiveByShopDate(ctx context.Context, shopID int, date string) ([]Booking, error)
	Cancel(ctx context.Context, id int) error
	Confirm(ctx context.Context, id int) error
	ListByCustomer(ctx context.Context, customerID int) ([]BookingWithDetails, error)
	ListByShop(ctx context.Context, shopID int, date string) ([]BookingWithDetails, error)
	MarkCompleted(ctx context.Context, date string, minuteOfDay int) (int, error)
}
