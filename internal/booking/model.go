package booking

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Booking is one appointment. Date is the shop-local calendar date,
// start is a minute of day; the occupied interval is
// [StartMinute, StartMinute+DurationMinutes).
type Booking struct {
	ID              int       `db:"id" json:"id"`
	ShopID          int       `db:"shop_id" json:"shop_id"`
	CustomerID      int       `db:"customer_id" json:"customer_id"`
	Date            string    `db:"date" json:"date"`
	StartMinute     int       `db:"start_minute" json:"start_minute"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Status          string    `db:"status" json:"status"`
	TotalPriceCents int64     `db:"total_price_cents" json:"total_price_cents"`
	Notes           string    `db:"notes" json:"notes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// ServiceSnapshot pins name, price and duration of a catalog service at
// booking time. Catalog edits or deletions never rewrite these rows.
type ServiceSnapshot struct {
	BookingID       int    `db:"booking_id" json:"booking_id"`
	ServiceID       int    `db:"service_id" json:"service_id"`
	Name            string `db:"name" json:"name"`
	PriceCents      int64  `db:"price_cents" json:"price_cents"`
	DurationMinutes int    `db:"duration_minutes" json:"duration_minutes"`
}

// BookingWithDetails is the listing view joined with shop, customer and
// snapshot names.
type BookingWithDetails struct {
	Booking
	ShopName     string `db:"shop_name" json:"shop_name"`
	CustomerName string `db:"customer_name" json:"customer_name"`
	ServiceNames string `db:"service_names" json:"service_names"`
}

type CreateBookingRequest struct {
	ShopID     int    `json:"shop_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	ServiceIDs []int  `json:"service_ids" binding:"required,min=1"`
	Notes      string `json:"notes"`
}

// Slot is one bookable start time, in both minute-of-day and clock
// forms.
type Slot struct {
	StartMinute int    `json:"start_minute"`
	StartTime   string `json:"start_time" example:"10:30"`
}

type SlotsResponse struct {
	ShopID          int    `json:"shop_id"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"duration_minutes"`
	Slots           []Slot `json:"slots"`
}
