package booking

import (
	"context"
	"errors"
	"time"

	"github.com/allin1appd-sys/zenchair/internal/availability"
	"github.com/allin1appd-sys/zenchair/internal/catalog"
	"github.com/allin1appd-sys/zenchair/internal/events"
	"github.com/allin1appd-sys/zenchair/internal/logger"
	"github.com/allin1appd-sys/zenchair/internal/metrics"
	"github.com/allin1appd-sys/zenchair/internal/shop"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidDuration = errors.New("requested duration must be positive")
	ErrServiceNotFound = errors.New("one or more services not found")
	ErrSlotUnavailable = errors.New("slot is not available")
	ErrForbidden       = errors.New("not allowed to modify this booking")
	ErrInvalidState    = errors.New("booking status does not allow this transition")
	ErrInvalidDate     = errors.New("invalid date or time")
	ErrDateOutOfRange  = errors.New("date outside the bookable window")
)

type Service interface {
	AvailableSlots(ctx context.Context, shopID int, date string, serviceIDs []int, durationMinutes int) (*SlotsResponse, error)
	Create(ctx context.Context, customerID int, req CreateBookingRequest) (*Booking, error)
	Cancel(ctx context.Context, requesterID, bookingID int) error
	Confirm(ctx context.Context, ownerID, bookingID int) error
	ListByCustomer(ctx context.Context, customerID int) ([]BookingWithDetails, error)
	ListByShop(ctx context.Context, requesterID, shopID int, date string) ([]BookingWithDetails, error)
	CompleteElapsed(ctx context.Context) (int, error)
}

type service struct {
	repo        Repository
	shopRepo    shop.Repository
	catalogRepo catalog.Repository
	emitter     *events.Emitter
	horizonDays int
	now         func() time.Time
}

func NewService(
	repo Repository,
	shopRepo shop.Repository,
	catalogRepo catalog.Repository,
	emitter *events.Emitter,
	horizonDays int,
) Service {
	return &service{
		repo:        repo,
		shopRepo:    shopRepo,
		catalogRepo: catalogRepo,
		emitter:     emitter,
		horizonDays: horizonDays,
		now:         time.Now,
	}
}

// AvailableSlots computes bookable start times for a shop, date and
// total duration. The duration is either passed directly or derived
// from the selected services. The listing may be stale by the time the
// customer confirms; Create re-validates against the ledger.
func (s *service) AvailableSlots(ctx context.Context, shopID int, date string, serviceIDs []int, durationMinutes int) (*SlotsResponse, error) {
	shopRecord, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if len(serviceIDs) > 0 {
		durationMinutes, _, err = s.resolveServices(ctx, shopID, serviceIDs)
		if err != nil {
			return nil, err
		}
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	day, err := time.ParseInLocation(shop.DateLayout, date, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}

	resp := &SlotsResponse{
		ShopID:          shopID,
		Date:            date,
		DurationMinutes: durationMinutes,
		Slots:           []Slot{},
	}

	starts, err := s.feasibleStarts(ctx, shopRecord, day, durationMinutes)
	if err != nil {
		return nil, err
	}

	for _, m := range starts {
		resp.Slots = append(resp.Slots, Slot{StartMinute: m, StartTime: shop.FormatClockTime(m)})
	}

	metrics.RecordSlotQuery(len(resp.Slots))
	return resp, nil
}

// feasibleStarts runs the full availability pipeline: open window,
// active bookings as busy intervals, free-interval complement, then
// step enumeration. Past dates, dates past the booking horizon, and
// closed days yield no starts.
func (s *service) feasibleStarts(ctx context.Context, shopRecord *shop.Shop, day time.Time, durationMinutes int) ([]int, error) {
	now := s.now()
	today := now.Format(shop.DateLayout)
	horizon := now.AddDate(0, 0, s.horizonDays).Format(shop.DateLayout)
	dateStr := day.Format(shop.DateLayout)

	if dateStr < today || dateStr > horizon {
		return nil, nil
	}

	hours, err := s.shopRepo.GetWorkingHours(ctx, shopRecord.ID)
	if err != nil {
		return nil, err
	}
	closures, err := s.shopRepo.ListClosures(ctx, shopRecord.ID)
	if err != nil {
		return nil, err
	}

	window, open, err := shop.OpenWindow(hours, closures, day)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, nil
	}

	active, err := s.repo.ListActiveByShopDate(ctx, shopRecord.ID, dateStr)
	if err != nil {
		return nil, err
	}

	busy := make([]availability.Interval, 0, len(active))
	for _, b := range active {
		busy = append(busy, availability.Interval{
			Start: b.StartMinute,
			End:   b.StartMinute + b.DurationMinutes,
		})
	}

	step := shopRecord.SlotGranularity

	notBefore := 0
	if dateStr == today {
		nowMinute := now.Hour()*60 + now.Minute()
		notBefore = availability.RoundUp(nowMinute+1, step)
	}

	free := availability.FreeIntervals(window, busy)
	return availability.Slots(free, durationMinutes, step, notBefore), nil
}

// Create books a slot. The client's slot list is never trusted: the
// requested start is re-checked against fresh availability, and the
// ledger insert performs the final atomic overlap check. A lost race
// surfaces as ErrSlotUnavailable.
func (s *service) Create(ctx context.Context, customerID int, req CreateBookingRequest) (*Booking, error) {
	day, err := time.ParseInLocation(shop.DateLayout, req.Date, time.Local)
	if err != nil {
		return nil, ErrInvalidDate
	}

	startMinute, err := shop.ParseClockTime(req.StartTime)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := s.now()
	today := now.Format(shop.DateLayout)
	horizon := now.AddDate(0, 0, s.horizonDays).Format(shop.DateLayout)
	if req.Date < today || req.Date > horizon {
		return nil, ErrDateOutOfRange
	}

	shopRecord, err := s.shopRepo.GetByID(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}

	services, durationMinutes, totalPriceCents, err := s.resolveServiceRecords(ctx, req.ShopID, req.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	starts, err := s.feasibleStarts(ctx, shopRecord, day, durationMinutes)
	if err != nil {
		return nil, err
	}
	if !containsStart(starts, startMinute) {
		metrics.RecordBooking("rejected")
		return nil, ErrSlotUnavailable
	}

	snapshot := make([]ServiceSnapshot, 0, len(services))
	for _, svc := range services {
		snapshot = append(snapshot, ServiceSnapshot{
			ServiceID:       svc.ID,
			Name:            svc.Name,
			PriceCents:      svc.PriceCents,
			DurationMinutes: svc.DurationMinutes,
		})
	}

	created, err := s.repo.Create(ctx, Booking{
		ShopID:          req.ShopID,
		CustomerID:      customerID,
		Date:            req.Date,
		StartMinute:     startMinute,
		DurationMinutes: durationMinutes,
		Status:          StatusPending,
		TotalPriceCents: totalPriceCents,
		Notes:           req.Notes,
	}, snapshot)
	if err != nil {
		if errors.Is(err, ErrBookingConflict) {
			metrics.RecordBooking("conflict")
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	metrics.RecordBooking("created")

	if err := s.emitter.Publish(ctx, created.ShopID, created.ID, events.TypeBookingCreated); err != nil {
		logger.Errorf("Booking %d created but event publish failed: %v", created.ID, err)
	}

	return created, nil
}

// Cancel is allowed for the booking's customer and the shop's owner,
// and only from pending or confirmed. The slot frees up immediately.
func (s *service) Cancel(ctx context.Context, requesterID, bookingID int) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if b.CustomerID != requesterID {
		shopRecord, err := s.shopRepo.GetByID(ctx, b.ShopID)
		if err != nil {
			return err
		}
		if shopRecord.OwnerID != requesterID {
			return ErrForbidden
		}
	}

	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return ErrInvalidState
	}

	if err := s.repo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, ErrNoStatusTransition) {
			return ErrInvalidState
		}
		return err
	}

	metrics.RecordBookingCancellation()

	if err := s.emitter.Publish(ctx, b.ShopID, b.ID, events.TypeBookingCancelled); err != nil {
		logger.Errorf("Booking %d cancelled but event publish failed: %v", b.ID, err)
	}

	return nil
}

// Confirm moves a pending booking to confirmed. Owner only.
func (s *service) Confirm(ctx context.Context, ownerID, bookingID int) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	shopRecord, err := s.shopRepo.GetByID(ctx, b.ShopID)
	if err != nil {
		return err
	}
	if shopRecord.OwnerID != ownerID {
		return ErrForbidden
	}

	if b.Status != StatusPending {
		return ErrInvalidState
	}

	if err := s.repo.Confirm(ctx, bookingID); err != nil {
		if errors.Is(err, ErrNoStatusTransition) {
			return ErrInvalidState
		}
		return err
	}

	if err := s.emitter.Publish(ctx, b.ShopID, b.ID, events.TypeBookingConfirmed); err != nil {
		logger.Errorf("Booking %d confirmed but event publish failed: %v", b.ID, err)
	}

	return nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID int) ([]BookingWithDetails, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}

func (s *service) ListByShop(ctx context.Context, requesterID, shopID int, date string) ([]BookingWithDetails, error) {
	shopRecord, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shopRecord.OwnerID != requesterID {
		return nil, ErrForbidden
	}

	if date != "" {
		if _, err := time.ParseInLocation(shop.DateLayout, date, time.Local); err != nil {
			return nil, ErrInvalidDate
		}
	}

	return s.repo.ListByShop(ctx, shopID, date)
}

// CompleteElapsed marks confirmed bookings whose window has passed as
// completed. Run periodically from main.
func (s *service) CompleteElapsed(ctx context.Context) (int, error) {
	now := s.now()
	count, err := s.repo.MarkCompleted(ctx, now.Format(shop.DateLayout), now.Hour()*60+now.Minute())
	if err != nil {
		return 0, err
	}

	if count > 0 {
		logger.Info("Marked bookings completed", "count", count)
	}
	return count, nil
}

// resolveServices maps service ids to current catalog rows and sums
// duration and price. A stale or foreign id fails the whole request.
func (s *service) resolveServices(ctx context.Context, shopID int, serviceIDs []int) (durationMinutes int, totalPriceCents int64, err error) {
	_, durationMinutes, totalPriceCents, err = s.resolveServiceRecords(ctx, shopID, serviceIDs)
	return durationMinutes, totalPriceCents, err
}

func (s *service) resolveServiceRecords(ctx context.Context, shopID int, serviceIDs []int) ([]catalog.Service, int, int64, error) {
	unique := make(map[int]bool, len(serviceIDs))
	for _, id := range serviceIDs {
		unique[id] = true
	}

	services, err := s.catalogRepo.GetByIDs(ctx, shopID, serviceIDs)
	if err != nil {
		return nil, 0, 0, err
	}
	if len(services) != len(unique) {
		return nil, 0, 0, ErrServiceNotFound
	}

	var durationMinutes int
	var totalPriceCents int64
	for _, svc := range services {
		durationMinutes += svc.DurationMinutes
		totalPriceCents += svc.PriceCents
	}
	return services, durationMinutes, totalPriceCents, nil
}

func containsStart(starts []int, start int) bool {
	for _, s := range starts {
		if s == start {
			return true
		}
	}
	return false
}
