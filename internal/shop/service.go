package shop

import (
	"context"
	"errors"
	"time"

	"github.com/allin1appd-sys/zenchair/internal/availability"
)

type Service interface {
	Create(ctx context.Context, ownerID int, req CreateShopRequest) (*Shop, error)
	GetByID(ctx context.Context, id int) (*Shop, error)
	GetByOwner(ctx context.Context, ownerID int) (*Shop, error)
	List(ctx context.Context, city string) ([]Shop, error)
	Update(ctx context.Context, ownerID, shopID int, req UpdateShopRequest) (*Shop, error)
	ReplaceWorkingHours(ctx context.Context, ownerID, shopID int, req ReplaceHoursRequest) error
	GetWorkingHours(ctx context.Context, shopID int) ([]WorkingHours, error)
	AddClosure(ctx context.Context, ownerID, shopID int, date string) error
	RemoveClosure(ctx context.Context, ownerID, shopID int, date string) error
	OpenWindowForDate(ctx context.Context, shopID int, date time.Time) (availability.Window, bool, error)
}

type service struct {
	repo               Repository
	defaultGranularity int
}

func NewService(repo Repository, defaultGranularity int) Service {
	return &service{
		repo:               repo,
		defaultGranularity: defaultGranularity,
	}
}

func (s *service) Create(ctx context.Context, ownerID int, req CreateShopRequest) (*Shop, error) {
	_, err := s.repo.GetByOwner(ctx, ownerID)
	if err == nil {
		return nil, ErrShopExists
	}
	if !errors.Is(err, ErrShopNotFound) {
		return nil, err
	}

	granularity := req.SlotGranularity
	if granularity == 0 {
		granularity = s.defaultGranularity
	}
	if granularity <= 0 || 60%granularity != 0 {
		return nil, ErrInvalidWorkingHours
	}

	return s.repo.Create(ctx, Shop{
		OwnerID:         ownerID,
		Name:            req.Name,
		Description:     req.Description,
		Address:         req.Address,
		City:            req.City,
		Phone:           req.Phone,
		SlotGranularity: granularity,
	}, defaultHours())
}

func (s *service) GetByID(ctx context.Context, id int) (*Shop, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByOwner(ctx context.Context, ownerID int) (*Shop, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *service) List(ctx context.Context, city string) ([]Shop, error) {
	return s.repo.List(ctx, city)
}

func (s *service) Update(ctx context.Context, ownerID, shopID int, req UpdateShopRequest) (*Shop, error) {
	existing, err := s.repo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if existing.OwnerID != ownerID {
		return nil, ErrNotShopOwner
	}

	granularity := req.SlotGranularity
	if granularity == 0 {
		granularity = existing.SlotGranularity
	}
	if granularity <= 0 || 60%granularity != 0 {
		return nil, ErrInvalidWorkingHours
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Address = req.Address
	existing.City = req.City
	existing.Phone = req.Phone
	existing.SlotGranularity = granularity

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

// ReplaceWorkingHours swaps in a new weekly template. Existing bookings
// are untouched; only future availability changes.
func (s *service) ReplaceWorkingHours(ctx context.Context, ownerID, shopID int, req ReplaceHoursRequest) error {
	existing, err := s.repo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrNotShopOwner
	}

	hours, err := validateHours(req.Hours)
	if err != nil {
		return err
	}
	for i := range hours {
		hours[i].ShopID = shopID
	}

	return s.repo.ReplaceWorkingHours(ctx, shopID, hours)
}

func (s *service) GetWorkingHours(ctx context.Context, shopID int) ([]WorkingHours, error) {
	if _, err := s.repo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	return s.repo.GetWorkingHours(ctx, shopID)
}

func (s *service) AddClosure(ctx context.Context, ownerID, shopID int, date string) error {
	existing, err := s.repo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrNotShopOwner
	}

	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidWorkingHours
	}

	return s.repo.AddClosure(ctx, shopID, date)
}

func (s *service) RemoveClosure(ctx context.Context, ownerID, shopID int, date string) error {
	existing, err := s.repo.GetByID(ctx, shopID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrNotShopOwner
	}

	return s.repo.RemoveClosure(ctx, shopID, date)
}

// OpenWindowForDate is the calendar lookup used by the booking engine.
func (s *service) OpenWindowForDate(ctx context.Context, shopID int, date time.Time) (availability.Window, bool, error) {
	hours, err := s.repo.GetWorkingHours(ctx, shopID)
	if err != nil {
		return availability.Window{}, false, err
	}

	closures, err := s.repo.ListClosures(ctx, shopID)
	if err != nil {
		return availability.Window{}, false, err
	}

	return OpenWindow(hours, closures, date)
}
