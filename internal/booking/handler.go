package booking

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/allin1appd-sys/zenchair/internal/auth"
	"github.com/allin1appd-sys/zenchair/internal/shop"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListSlots godoc
// @Summary      List available slots
// @Description  Returns bookable start times for a shop, date and either a set of service IDs or an explicit duration.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        shopID       path      int     true   "Shop ID"
// @Param        date         query     string  true   "Date (YYYY-MM-DD)"
// @Param        service_ids  query     string  false  "Comma-separated service IDs"
// @Param        duration     query     int     false  "Total duration in minutes"
// @Success      200          {object}  SlotsResponse
// @Failure      400          {object}  gin.H
// @Failure      404          {object}  gin.H
// @Router       /shops/{shopID}/slots [get]
func (h *Handler) ListSlots(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter required"})
		return
	}

	serviceIDs, err := parseIDList(c.Query("service_ids"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service_ids"})
		return
	}

	duration := 0
	if raw := c.Query("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid duration"})
			return
		}
	}

	if len(serviceIDs) == 0 && c.Query("duration") == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_ids or duration required"})
		return
	}

	resp, err := h.service.AvailableSlots(c.Request.Context(), shopID, date, serviceIDs, duration)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateBooking godoc
// @Summary      Create booking
// @Description  Books a slot. The requested start time is re-validated against current availability; a lost race returns 409.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Booking data"
// @Success      201      {object}  Booking
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	customerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.Create(c.Request.Context(), customerID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// CancelBooking godoc
// @Summary      Cancel booking
// @Description  Cancels a pending or confirmed booking. Allowed for the booking's customer.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	requesterID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), requesterID, bookingID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully"})
}

// ConfirmBooking godoc
// @Summary      Confirm booking
// @Description  Moves a pending booking to confirmed. Shop owner only.
// @Tags         owner
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      409        {object}  gin.H
// @Router       /owner/bookings/{bookingID}/confirm [post]
func (h *Handler) ConfirmBooking(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	if err := h.service.Confirm(c.Request.Context(), ownerID, bookingID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking confirmed"})
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BookingWithDetails
// @Failure      500  {object}  gin.H
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	customerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	bookings, err := h.service.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// ListShopBookings godoc
// @Summary      List shop bookings
// @Description  Returns bookings for the owner's shop, optionally filtered by date.
// @Tags         owner
// @Security     BearerAuth
// @Produce      json
// @Param        shopID  path      int     true   "Shop ID"
// @Param        date    query     string  false  "Date filter (YYYY-MM-DD)"
// @Success      200     {array}   BookingWithDetails
// @Failure      403     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /owner/shops/{shopID}/bookings [get]
func (h *Handler) ListShopBookings(c *gin.Context) {
	requesterID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	bookings, err := h.service.ListByShop(c.Request.Context(), requesterID, shopID, c.Query("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requested duration must be positive"})
	case errors.Is(err, ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date or time format"})
	case errors.Is(err, ErrDateOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date is outside the bookable window"})
	case errors.Is(err, ErrServiceNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more services no longer exist; refresh the service list"})
	case errors.Is(err, ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "Slot is no longer available; refresh slots and retry"})
	case errors.Is(err, ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking status does not allow this action"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to modify this booking"})
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, shop.ErrShopNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
	case errors.Is(err, shop.ErrInvalidShopConfig):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Shop configuration is invalid; contact support"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

func parseIDList(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
