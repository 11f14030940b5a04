package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrServiceNotFound = errors.New("service not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s Service) (*Service, error) {
	query := `
		INSERT INTO services (shop_id, name, description, price_cents, duration_minutes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, shop_id, name, description, price_cents, duration_minutes, created_at
	`

	var created Service
	err := r.db.GetContext(ctx, &created, query,
		s.ShopID, s.Name, s.Description, s.PriceCents, s.DurationMinutes)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Service, error) {
	query := `
		SELECT id, shop_id, name, description, price_cents, duration_minutes, created_at
		FROM services
		WHERE id = $1
	`

	var s Service
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) GetByIDs(ctx context.Context, shopID int, ids []int) ([]Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, shop_id, name, description, price_cents, duration_minutes, created_at
		FROM services
		WHERE shop_id = ? AND id IN (?)
	`, shopID, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	var services []Service
	err = r.db.SelectContext(ctx, &services, query, args...)
	if err != nil {
		return nil, err
	}

	return services, nil
}

func (r *repository) ListByShop(ctx context.Context, shopID int) ([]Service, error) {
	query := `
		SELECT id, shop_id, name, description, price_cents, duration_minutes, created_at
		FROM services
		WHERE shop_id = $1
		ORDER BY created_at ASC
	`

	var services []Service
	err := r.db.SelectContext(ctx, &services, query, shopID)
	if err != nil {
		return nil, err
	}

	return services, nil
}

func (r *repository) Update(ctx context.Context, s *Service) error {
	query := `
		UPDATE services
		SET name = $1, description = $2, price_cents = $3, duration_minutes = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		s.Name, s.Description, s.PriceCents, s.DurationMinutes, s.ID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// Delete removes a service from the catalog. Historical bookings keep
// their denormalized snapshot rows in booking_services.
func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}
