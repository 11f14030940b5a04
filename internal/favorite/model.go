package favorite

import "time"

type Favorite struct {
	UserID    int       `db:"user_id" json:"user_id"`
	ShopID    int       `db:"shop_id" json:"shop_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FavoriteShop is a favorite joined with the shop it points at, for
// rendering lists without a second round trip.
type FavoriteShop struct {
	ShopID       int       `db:"shop_id" json:"shop_id"`
	Name         string    `db:"name" json:"name"`
	Address      string    `db:"address" json:"address"`
	City         string    `db:"city" json:"city"`
	Rating       float64   `db:"rating" json:"rating"`
	TotalReviews int       `db:"total_reviews" json:"total_reviews"`
	FavoritedAt  time.Time `db:"favorited_at" json:"favorited_at"`
}
