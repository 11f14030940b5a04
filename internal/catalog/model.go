package catalog

import "time"

// Service is an offering a shop sells, e.g. a haircut. Duration feeds
// slot computation; price and duration are snapshotted onto bookings so
// later edits or deletion never rewrite history.
type Service struct {
	ID              int       `db:"id" json:"id"`
	ShopID          int       `db:"shop_id" json:"shop_id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description"`
	PriceCents      int64     `db:"price_cents" json:"price_cents"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	PriceCents      int64  `json:"price_cents" binding:"min=0"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
}

type UpdateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	PriceCents      int64  `json:"price_cents" binding:"min=0"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=1"`
}
