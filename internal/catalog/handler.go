package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allin1appd-sys/zenchair/internal/auth"
	"github.com/allin1appd-sys/zenchair/internal/shop"
)

type Handler struct {
	manager Manager
}

func NewHandler(manager Manager) *Handler {
	return &Handler{manager: manager}
}

// ListShopServices godoc
// @Summary      List shop services
// @Tags         services
// @Security     BearerAuth
// @Produce      json
// @Param        shopID  path      int  true  "Shop ID"
// @Success      200     {array}   Service
// @Failure      404     {object}  gin.H
// @Router       /shops/{shopID}/services [get]
func (h *Handler) ListShopServices(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	services, err := h.manager.ListByShop(c.Request.Context(), shopID)
	if err != nil {
		if errors.Is(err, shop.ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

// CreateService godoc
// @Summary      Create service
// @Tags         owner
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        shopID   path      int                   true  "Shop ID"
// @Param        request  body      CreateServiceRequest  true  "Service data"
// @Success      201      {object}  Service
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Router       /owner/shops/{shopID}/services [post]
func (h *Handler) CreateService(c *gin.Context) {
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

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.manager.Create(c.Request.Context(), ownerID, shopID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

// UpdateService godoc
// @Summary      Update service
// @Tags         owner
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        serviceID  path      int                   true  "Service ID"
// @Param        request    body      UpdateServiceRequest  true  "Service data"
// @Success      200        {object}  Service
// @Failure      400        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /owner/services/{serviceID} [put]
func (h *Handler) UpdateService(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	serviceID, err := strconv.Atoi(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.manager.Update(c.Request.Context(), ownerID, serviceID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

// DeleteService godoc
// @Summary      Delete service
// @Description  Removes a service from the catalog. Existing bookings keep their snapshot.
// @Tags         owner
// @Security     BearerAuth
// @Produce      json
// @Param        serviceID  path      int  true  "Service ID"
// @Success      200        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Router       /owner/services/{serviceID} [delete]
func (h *Handler) DeleteService(c *gin.Context) {
	ownerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	serviceID, err := strconv.Atoi(c.Param("serviceID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid service ID"})
		return
	}

	if err := h.manager.Delete(c.Request.Context(), ownerID, serviceID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted"})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrServiceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
	case errors.Is(err, shop.ErrShopNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
	case errors.Is(err, shop.ErrNotShopOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage your own shop's services"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to modify service"})
	}
}
