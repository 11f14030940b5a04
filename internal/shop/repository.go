package shop

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s Shop, hours []WorkingHours) (*Shop, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO shops (owner_id, name, description, address, city, phone, slot_granularity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, owner_id, name, description, address, city, phone, slot_granularity, rating, total_reviews, created_at
	`

	var created Shop
	err = tx.GetContext(ctx, &created, query,
		s.OwnerID, s.Name, s.Description, s.Address, s.City, s.Phone, s.SlotGranularity)
	if err != nil {
		return nil, err
	}

	for _, wh := range hours {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO working_hours (shop_id, weekday, open_minute, close_minute, is_closed)
			VALUES ($1, $2, $3, $4, $5)
		`, created.ID, wh.Weekday, wh.OpenMinute, wh.CloseMinute, wh.IsClosed)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Shop, error) {
	query := `
		SELECT id, owner_id, name, description, address, city, phone, slot_granularity, rating, total_reviews, created_at
		FROM shops
		WHERE id = $1
	`

	var s Shop
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) GetByOwner(ctx context.Context, ownerID int) (*Shop, error) {
	query := `
		SELECT id, owner_id, name, description, address, city, phone, slot_granularity, rating, total_reviews, created_at
		FROM shops
		WHERE owner_id = $1
	`

	var s Shop
	err := r.db.GetContext(ctx, &s, query, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) List(ctx context.Context, city string) ([]Shop, error) {
	query := `
		SELECT id, owner_id, name, description, address, city, phone, slot_granularity, rating, total_reviews, created_at
		FROM shops
	`
	args := []interface{}{}

	if city != "" {
		query += " WHERE city ILIKE $1"
		args = append(args, city)
	}

	query += " ORDER BY rating DESC, created_at DESC"

	var shops []Shop
	err := r.db.SelectContext(ctx, &shops, query, args...)
	if err != nil {
		return nil, err
	}

	return shops, nil
}

func (r *repository) Update(ctx context.Context, s *Shop) error {
	query := `
		UPDATE shops
		SET name = $1, description = $2, address = $3, city = $4, phone = $5, slot_granularity = $6
		WHERE id = $7
	`

	result, err := r.db.ExecContext(ctx, query,
		s.Name, s.Description, s.Address, s.City, s.Phone, s.SlotGranularity, s.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrShopNotFound
	}

	return nil
}

func (r *repository) GetWorkingHours(ctx context.Context, shopID int) ([]WorkingHours, error) {
	query := `
		SELECT shop_id, weekday, open_minute, close_minute, is_closed
		FROM working_hours
		WHERE shop_id = $1
		ORDER BY weekday ASC
	`

	var hours []WorkingHours
	err := r.db.SelectContext(ctx, &hours, query, shopID)
	if err != nil {
		return nil, err
	}

	return hours, nil
}

func (r *repository) ReplaceWorkingHours(ctx context.Context, shopID int, hours []WorkingHours) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM working_hours WHERE shop_id = $1`, shopID); err != nil {
		return err
	}

	for _, wh := range hours {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO working_hours (shop_id, weekday, open_minute, close_minute, is_closed)
			VALUES ($1, $2, $3, $4, $5)
		`, shopID, wh.Weekday, wh.OpenMinute, wh.CloseMinute, wh.IsClosed)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) ListClosures(ctx context.Context, shopID int) ([]string, error) {
	query := `
		SELECT to_char(date, 'YYYY-MM-DD')
		FROM shop_closures
		WHERE shop_id = $1
		ORDER BY date ASC
	`

	var dates []string
	err := r.db.SelectContext(ctx, &dates, query, shopID)
	if err != nil {
		return nil, err
	}

	return dates, nil
}

func (r *repository) AddClosure(ctx context.Context, shopID int, date string) error {
	query := `
		INSERT INTO shop_closures (shop_id, date)
		VALUES ($1, $2)
		ON CONFLICT (shop_id, date) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query, shopID, date)
	return err
}

func (r *repository) RemoveClosure(ctx context.Context, shopID int, date string) error {
	query := `DELETE FROM shop_closures WHERE shop_id = $1 AND date = $2`

	_, err := r.db.ExecContext(ctx, query, shopID, date)
	return err
}

func (r *repository) UpdateRating(ctx context.Context, shopID int, rating float64, totalReviews int) error {
	query := `UPDATE shops SET rating = $1, total_reviews = $2 WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, rating, totalReviews, shopID)
	return err
}
