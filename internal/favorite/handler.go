package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allin1appd-sys/zenchair/internal/auth"
	"github.com/allin1appd-sys/zenchair/internal/shop"
)

type Handler struct {
	repo     Repository
	shopRepo shop.Repository
}

func NewHandler(repo Repository, shopRepo shop.Repository) *Handler {
	return &Handler{repo: repo, shopRepo: shopRepo}
}

// AddFavorite godoc
// @Summary      Favorite a shop
// @Tags         favorites
// @Security     BearerAuth
// @Produce      json
// @Param        shopID  path      int  true  "Shop ID"
// @Success      201     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /favorites/{shopID} [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	if _, err := h.shopRepo.GetByID(c.Request.Context(), shopID); err != nil {
		if errors.Is(err, shop.ErrShopNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}

	if err := h.repo.Add(c.Request.Context(), userID, shopID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Shop added to favorites"})
}

// RemoveFavorite godoc
// @Summary      Unfavorite a shop
// @Tags         favorites
// @Security     BearerAuth
// @Produce      json
// @Param        shopID  path      int  true  "Shop ID"
// @Success      200     {object}  gin.H
// @Router       /favorites/{shopID} [delete]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	shopID, err := strconv.Atoi(c.Param("shopID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid shop ID"})
		return
	}

	if err := h.repo.Remove(c.Request.Context(), userID, shopID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shop removed from favorites"})
}

// ListFavorites godoc
// @Summary      List favorite shops
// @Tags         favorites
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   FavoriteShop
// @Failure      500  {object}  gin.H
// @Router       /favorites [get]
func (h *Handler) ListFavorites(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	favorites, err := h.repo.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list favorites"})
		return
	}

	c.JSON(http.StatusOK, favorites)
}
