package favorite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Add(ctx context.Context, userID, shopID int) error
	Remove(ctx context.Context, userID, shopID int) error
	ListByUser(ctx context.Context, userID int) ([]FavoriteShop, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Add(ctx context.Context, userID, shopID int) error {
	query := `
		INSERT INTO favorites (user_id, shop_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, shop_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, userID, shopID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *repository) Remove(ctx context.Context, userID, shopID int) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND shop_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, shopID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *repository) ListByUser(ctx context.Context, userID int) ([]FavoriteShop, error) {
	query := `
		SELECT s.id AS shop_id, s.name, s.address, s.city, s.rating, s.total_reviews,
		       f.created_at AS favorited_at
		FROM favorites f
		JOIN shops s ON s.id = f.shop_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	favorites := []FavoriteShop{}
	if err := r.db.SelectContext(ctx, &favorites, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}
