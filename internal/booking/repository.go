package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var (
	// ErrBookingConflict is returned when the atomic check-and-insert
	// finds an overlapping active booking. The service surfaces it as
	// ErrSlotUnavailable.
	ErrBookingConflict = errors.New("booking overlaps an existing booking")

	ErrNoStatusTransition = errors.New("booking not in a transitionable status")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// dateLockKey folds "2006-01-02" into an int usable as an advisory lock
// key alongside the shop id.
func dateLockKey(date string) int {
	n := 0
	for _, ch := range date {
		if ch >= '0' && ch <= '9' {
			n = n*10 + int(ch-'0')
		}
	}
	return n
}

// Create inserts a booking and its service snapshot if no active
// booking for the same shop and date overlaps. A transaction-scoped
// advisory lock on (shop, date) serializes concurrent writers for that
// shop-day; writers for other shops or days proceed in parallel.
func (r *repository) Create(ctx context.Context, b Booking, snapshot []ServiceSnapshot) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`,
		b.ShopID, dateLockKey(b.Date)); err != nil {
		return nil, err
	}

	var conflict bool
	err = tx.GetContext(ctx, &conflict, `
		SELECT EXISTS(
			SELECT 1 FROM bookings
			WHERE shop_id = $1
			  AND date = $2::date
			  AND status IN ('pending', 'confirmed')
			  AND start_minute < $3 + $4
			  AND start_minute + duration_minutes > $3
		)
	`, b.ShopID, b.Date, b.StartMinute, b.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrBookingConflict
	}

	var created Booking
	err = tx.GetContext(ctx, &created, `
		INSERT INTO bookings (shop_id, customer_id, date, start_minute, duration_minutes, status, total_price_cents, notes)
		VALUES ($1, $2, $3::date, $4, $5, $6, $7, $8)
		RETURNING id, shop_id, customer_id, to_char(date, 'YYYY-MM-DD') AS date, start_minute, duration_minutes, status, total_price_cents, notes, created_at
	`, b.ShopID, b.CustomerID, b.Date, b.StartMinute, b.DurationMinutes, b.Status, b.TotalPriceCents, b.Notes)
	if err != nil {
		return nil, err
	}

	for _, s := range snapshot {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO booking_services (booking_id, service_id, name, price_cents, duration_minutes)
			VALUES ($1, $2, $3, $4, $5)
		`, created.ID, s.ServiceID, s.Name, s.PriceCents, s.DurationMinutes)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, shop_id, customer_id, to_char(date, 'YYYY-MM-DD') AS date, start_minute, duration_minutes, status, total_price_cents, notes, created_at
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *repository) ListActiveByShopDate(ctx context.Context, shopID int, date string) ([]Booking, error) {
	query := `
		SELECT id, shop_id, customer_id, to_char(date, 'YYYY-MM-DD') AS date, start_minute, duration_minutes, status, total_price_cents, notes, created_at
		FROM bookings
		WHERE shop_id = $1 AND date = $2::date AND status IN ('pending', 'confirmed')
		ORDER BY start_minute ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, shopID, date)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// Cancel moves an active booking to cancelled. The record stays for the
// audit trail. Zero rows affected means the booking was not in an
// active status (or does not exist).
func (r *repository) Cancel(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE id = $1 AND status IN ('pending', 'confirmed')
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNoStatusTransition
	}

	return nil
}

func (r *repository) Confirm(ctx context.Context, id int) error {
	query := `
		UPDATE bookings
		SET status = 'confirmed'
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNoStatusTransition
	}

	return nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.shop_id,
			b.customer_id,
			to_char(b.date, 'YYYY-MM-DD') AS date,
			b.start_minute,
			b.duration_minutes,
			b.status,
			b.total_price_cents,
			b.notes,
			b.created_at,
			s.name AS shop_name,
			u.name AS customer_name,
			COALESCE(string_agg(bs.name, ', ' ORDER BY bs.service_id), '') AS service_names
		FROM bookings b
		JOIN shops s ON b.shop_id = s.id
		JOIN users u ON b.customer_id = u.id
		LEFT JOIN booking_services bs ON bs.booking_id = b.id
		WHERE b.customer_id = $1
		GROUP BY b.id, s.name, u.name
		ORDER BY b.date DESC, b.start_minute ASC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, customerID)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListByShop(ctx context.Context, shopID int, date string) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.shop_id,
			b.customer_id,
			to_char(b.date, 'YYYY-MM-DD') AS date,
			b.start_minute,
			b.duration_minutes,
			b.status,
			b.total_price_cents,
			b.notes,
			b.created_at,
			s.name AS shop_name,
			u.name AS customer_name,
			COALESCE(string_agg(bs.name, ', ' ORDER BY bs.service_id), '') AS service_names
		FROM bookings b
		JOIN shops s ON b.shop_id = s.id
		JOIN users u ON b.customer_id = u.id
		LEFT JOIN booking_services bs ON bs.booking_id = b.id
		WHERE b.shop_id = $1
	`
	args := []interface{}{shopID}

	if date != "" {
		query += " AND b.date = $2::date"
		args = append(args, date)
	}

	query += `
		GROUP BY b.id, s.name, u.name
		ORDER BY b.date DESC, b.start_minute ASC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// MarkCompleted flips confirmed bookings whose window has fully elapsed
// to completed, and returns how many rows changed.
func (r *repository) MarkCompleted(ctx context.Context, date string, minuteOfDay int) (int, error) {
	query := `
		UPDATE bookings
		SET status = 'completed'
		WHERE status = 'confirmed'
		  AND (date < $1::date OR (date = $1::date AND start_minute + duration_minutes <= $2))
	`

	result, err := r.db.ExecContext(ctx, query, date, minuteOfDay)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return int(rowsAffected), nil
}
