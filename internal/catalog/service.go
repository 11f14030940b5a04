package catalog

import (
	"context"

	"github.com/allin1appd-sys/zenchair/internal/shop"
)

type Manager interface {
	Create(ctx context.Context, ownerID, shopID int, req CreateServiceRequest) (*Service, error)
	ListByShop(ctx context.Context, shopID int) ([]Service, error)
	Update(ctx context.Context, ownerID, serviceID int, req UpdateServiceRequest) (*Service, error)
	Delete(ctx context.Context, ownerID, serviceID int) error
}

type manager struct {
	repo     Repository
	shopRepo shop.Repository
}

func NewManager(repo Repository, shopRepo shop.Repository) Manager {
	return &manager{
		repo:     repo,
		shopRepo: shopRepo,
	}
}

func (m *manager) Create(ctx context.Context, ownerID, shopID int, req CreateServiceRequest) (*Service, error) {
	if err := m.requireOwner(ctx, ownerID, shopID); err != nil {
		return nil, err
	}

	return m.repo.Create(ctx, Service{
		ShopID:          shopID,
		Name:            req.Name,
		Description:     req.Description,
		PriceCents:      req.PriceCents,
		DurationMinutes: req.DurationMinutes,
	})
}

func (m *manager) ListByShop(ctx context.Context, shopID int) ([]Service, error) {
	if _, err := m.shopRepo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	return m.repo.ListByShop(ctx, shopID)
}

func (m *manager) Update(ctx context.Context, ownerID, serviceID int, req UpdateServiceRequest) (*Service, error) {
	existing, err := m.repo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if err := m.requireOwner(ctx, ownerID, existing.ShopID); err != nil {
		return nil, err
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.PriceCents = req.PriceCents
	existing.DurationMinutes = req.DurationMinutes

	if err := m.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (m *manager) Delete(ctx context.Context, ownerID, serviceID int) error {
	existing, err := m.repo.GetByID(ctx, serviceID)
	if err != nil {
		return err
	}

	if err := m.requireOwner(ctx, ownerID, existing.ShopID); err != nil {
		return err
	}

	return m.repo.Delete(ctx, serviceID)
}

func (m *manager) requireOwner(ctx context.Context, ownerID, shopID int) error {
	s, err := m.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if s.OwnerID != ownerID {
		return shop.ErrNotShopOwner
	}
	return nil
}
