package shop

import "time"

// DateLayout is the wire and storage format for shop-local calendar dates.
const DateLayout = "2006-01-02"

type Shop struct {
	ID          int    `db:"id" json:"id"`
	OwnerID     int    `db:"owner_id" json:"owner_id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	Address     string `db:"address" json:"address"`
	City        string `db:"city" json:"city"`
	Phone       string `db:"phone" json:"phone"`

	// SlotGranularity is the step in minutes between candidate booking
	// start times for this shop.
	SlotGranularity int `db:"slot_granularity" json:"slot_granularity"`

	Rating       float64   `db:"rating" json:"rating"`
	TotalReviews int       `db:"total_reviews" json:"total_reviews"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// WorkingHours is one weekday's template. Weekday follows time.Weekday:
// 0 = Sunday .. 6 = Saturday. Open and close are minutes of day; on an
// open day OpenMinute < CloseMinute.
type WorkingHours struct {
	ShopID      int  `db:"shop_id" json:"shop_id"`
	Weekday     int  `db:"weekday" json:"weekday"`
	OpenMinute  int  `db:"open_minute" json:"open_minute"`
	CloseMinute int  `db:"close_minute" json:"close_minute"`
	IsClosed    bool `db:"is_closed" json:"is_closed"`
}

type CreateShopRequest struct {
	Name            string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Description     string `json:"description" validate:"max=500"`
	Address         string `json:"address" binding:"required" validate:"required,max=200"`
	City            string `json:"city" binding:"required" validate:"required,max=100"`
	Phone           string `json:"phone" binding:"required" validate:"required,min=7,max=20"`
	SlotGranularity int    `json:"slot_granularity" validate:"gte=0,lte=120"`
}

type UpdateShopRequest struct {
	Name            string `json:"name" binding:"required" validate:"required,min=2,max=100"`
	Description     string `json:"description" validate:"max=500"`
	Address         string `json:"address" binding:"required" validate:"required,max=200"`
	City            string `json:"city" binding:"required" validate:"required,max=100"`
	Phone           string `json:"phone" binding:"required" validate:"required,min=7,max=20"`
	SlotGranularity int    `json:"slot_granularity" validate:"gte=0,lte=120"`
}

// WorkingHoursEntry carries clock times as "15:04" strings on the wire,
// matching how owners enter them.
type WorkingHoursEntry struct {
	Weekday   int    `json:"weekday"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	IsClosed  bool   `json:"is_closed"`
}

type ReplaceHoursRequest struct {
	Hours []WorkingHoursEntry `json:"hours" binding:"required"`
}

type ClosureRequest struct {
	Date string `json:"date" binding:"required"`
}
