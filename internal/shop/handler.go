package shop

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allin1appd-sys/zenchair/internal/api"
	"github.com/allin1appd-sys/zenchair/internal/auth"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// ListShops godoc
// @Summary      List shops
// @Description  Returns shops, optionally filtered by city.
// @Tags         shops
// @Security     BearerAuth
// @Produce      json
// @Param        city  query     string  false  "City filter"
// @Success      200   {array}   Shop
// @Failure      500   {object}  gin.H
// @Router       /shops [get]
func (h *Handler) ListShops(c *gin.Context) {
	shops, err := h.service.List(c.Request.Context(), c.Query("city"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shops"})
		return
	}

	c.JSON(http.StatusOK, shops)
}

// GetShop godoc
// @Summary      Get shop
// @Tags         shops
// @Security     BearerAuth
// @Produce      json
// @Param        shopID  path      int  true  "Shop ID"
// @Success      200     {object}  Shop
// @Failure      404     {object}  gin.H
// @Router       /shops/{shopID} [get]
func (h *Handler) GetShop(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	s, err := h.service.GetByID(c.Request.Context(), shopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// GetShopHours godoc
// @Summary      Get shop working hours
// @Tags         shops
// @Security     BearerAuth
// @Produce      json
// @Param        shopID  path      int  true  "Shop ID"
// @Success      200     {array}   WorkingHours
// @Failure      404     {object}  gin.H
// @Router       /shops/{shopID}/hours [get]
func (h *Handler) GetShopHours(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	hours, err := h.service.GetWorkingHours(c.Request.Context(), shopID)
	if err != nil {
		if errors.Is(err, ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch working hours"})
		return
	}

	c.JSON(http.StatusOK, hours)
}

// CreateShop godoc
// @Summary      Create shop
// @Description  Creates the owner's shop with a default weekly template. Barber only.
// @Tags         owner
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateShopRequest  true  "Shop data"
// @Success      201      {object}  Shop
// @Failure      400      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /owner/shops [post]
func (h *Handler) CreateShop(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if verrs := api.ValidateStruct(req); len(verrs) > 0 {
		api.RespondWithValidationErrors(c, verrs)
		return
	}

	s, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrShopExists):
			c.JSON(http.StatusConflict, gin.H{"error": "You already have a shop"})
		case errors.Is(err, ErrInvalidWorkingHours):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Slot granularity must be positive and divide 60"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shop"})
		}
		return
	}

	c.JSON(http.StatusCreated, s)
}

// GetMyShop godoc
// @Summary      Get own shop
// @Tags         owner
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Shop
// @Failure      404  {object}  gin.H
// @Router       /owner/shops/my [get]
func (h *Handler) GetMyShop(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	s, err := h.service.GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}

	c.JSON(http.StatusOK, s)
}

// UpdateShop godoc
// @Summary      Update shop
// @Tags         owner
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        shopID   path      int                true  "Shop ID"
// @Param        request  body      UpdateShopRequest  true  "Shop data"
// @Success      200      {object}  Shop
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /owner/shops/{shopID} [put]
func (h *Handler) UpdateShop(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	var req UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if verrs := api.ValidateStruct(req); len(verrs) > 0 {
		api.RespondWithValidationErrors(c, verrs)
		return
	}

	s, err := h.service.Update(c.Request.Context(), ownerID, shopID, req)
	if err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

// ReplaceHours godoc
// @Summary      Replace working hours
// @Description  Replaces the full weekly template. Affects future availability only.
// @Tags         owner
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        shopID   path      int                  true  "Shop ID"
// @Param        request  body      ReplaceHoursRequest  true  "Seven weekday entries"
// @Success      200      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /owner/shops/{shopID}/hours [put]
func (h *Handler) ReplaceHours(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	var req ReplaceHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.ReplaceWorkingHours(c.Request.Context(), ownerID, shopID, req); err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Working hours updated"})
}

// AddClosure godoc
// @Summary      Add closure date
// @Description  Marks a calendar date as closed (vacation day).
// @Tags         owner
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        shopID   path      int             true  "Shop ID"
// @Param        request  body      ClosureRequest  true  "Closure date"
// @Success      200      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Router       /owner/shops/{shopID}/closures [post]
func (h *Handler) AddClosure(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	var req ClosureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.AddClosure(c.Request.Context(), ownerID, shopID, req.Date); err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Closure added"})
}

// RemoveClosure godoc
// @Summary      Remove closure date
// @Tags         owner
// @Security     BearerAuth
// @Produce      json
// @Param        shopID  path      int     true  "Shop ID"
// @Param        date    path      string  true  "Closure date (YYYY-MM-DD)"
// @Success      200     {object}  gin.H
// @Failure      403     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /owner/shops/{shopID}/closures/{date} [delete]
func (h *Handler) RemoveClosure(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	if err := h.service.RemoveClosure(c.Request.Context(), ownerID, shopID, c.Param("date")); err != nil {
		h.respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Closure removed"})
}

func (h *Handler) respondMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrShopNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
	case errors.Is(err, ErrNotShopOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage your own shop"})
	case errors.Is(err, ErrInvalidWorkingHours):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid working hours"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shop"})
	}
}
