package review

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrAlreadyReviewed = errors.New("customer already reviewed this shop")

type Repository interface {
	Create(ctx context.Context, r Review) (*Review, error)
	ListByShop(ctx context.Context, shopID int) ([]ReviewWithCustomer, error)
	HasReviewed(ctx context.Context, shopID, customerID int) (bool, error)
	AverageRating(ctx context.Context, shopID int) (float64, int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rev Review) (*Review, error) {
	query := `
		INSERT INTO reviews (shop_id, customer_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, shop_id, customer_id, rating, comment, created_at
	`

	var created Review
	err := r.db.GetContext(ctx, &created, query, rev.ShopID, rev.CustomerID, rev.Rating, rev.Comment)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) ListByShop(ctx context.Context, shopID int) ([]ReviewWithCustomer, error) {
	query := `
		SELECT r.id, r.shop_id, r.customer_id, r.rating, r.comment, r.created_at,
		       u.name AS customer_name
		FROM reviews r
		JOIN users u ON r.customer_id = u.id
		WHERE r.shop_id = $1
		ORDER BY r.created_at DESC
	`

	var reviews []ReviewWithCustomer
	err := r.db.SelectContext(ctx, &reviews, query, shopID)
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *repository) HasReviewed(ctx context.Context, shopID, customerID int) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reviews WHERE shop_id = $1 AND customer_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, shopID, customerID)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) AverageRating(ctx context.Context, shopID int) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count
		FROM reviews
		WHERE shop_id = $1
	`

	var row struct {
		Avg   float64 `db:"avg"`
		Count int     `db:"count"`
	}
	err := r.db.GetContext(ctx, &row, query, shopID)
	if err != nil {
		return 0, 0, err
	}

	return row.Avg, row.Count, nil
}
