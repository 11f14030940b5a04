package review

import (
	"errors"
	"net/http"
	"strconv"

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

// CreateReview godoc
// @Summary      Review a shop
// @Tags         reviews
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        shopID   path      int                  true  "Shop ID"
// @Param        request  body      CreateReviewRequest  true  "Review data"
// @Success      201      {object}  Review
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Router       /shops/{shopID}/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	customerID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), customerID, shopID, req)
	if err != nil {
		switch {
		case errors.Is(err, shop.ErrShopNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		case errors.Is(err, ErrAlreadyReviewed):
			c.JSON(http.StatusConflict, gin.H{"error": "You already reviewed this shop"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// ListReviews godoc
// @Summary      List shop reviews
// @Tags         reviews
// @Security     BearerAuth
// @Produce      json
// @Param        shopID  path      int  true  "Shop ID"
// @Success      200     {array}   ReviewWithCustomer
// @Failure      404     {object}  gin.H
// @Router       /shops/{shopID}/reviews [get]
func (h *Handler) ListReviews(c *gin.Context) {
	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	reviews, err := h.service.ListByShop(c.Request.Context(), shopID)
	if err != nil {
		if errors.Is(err, shop.ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}
