package public

import (
	"strconv"

	"github.com/kandu-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddWishlistItemRequest 加入心愿单请求
type AddWishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.WishlistService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"items": items})
}

// AddWishlistItem 加入心愿单
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.WishlistService.Add(uid, req.ProductID)
	if err != nil {
		respondWishlistError(c, err)
		return
	}
	response.Success(c, item)
}

// DeleteWishlistItem 移出心愿单
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.WishlistService.Remove(uid, uint(productID)); err != nil {
		respondWishlistError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
