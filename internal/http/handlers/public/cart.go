package public

import (
	"strconv"

	"github.com/kandu-shop/internal/constants"
	"github.com/kandu-shop/internal/http/response"
	"github.com/kandu-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}

	response.Success(c, h.CartService.Totals(items))
}

// AddCartItem 加购商品
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	outcome, err := h.CartService.AddToCart(c.Request.Context(), service.AddToCartInput{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}

	switch outcome.Kind {
	case constants.CartOutcomeOutOfStock:
		response.SuccessWithMsg(c, "cart.out_of_stock", outcome)
	case constants.CartOutcomePartial:
		response.SuccessWithMsg(c, "cart.partial_added", outcome)
	default:
		response.SuccessWithMsg(c, "cart.added", outcome)
	}
}

// UpdateCartItem 修改购物车行数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_item_invalid", err)
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.CartService.UpdateQuantity(uid, uint(itemID), req.Quantity); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteCartItem 删除购物车行并回补库存
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_item_invalid", err)
		return
	}

	if err := h.CartService.RemoveItem(uid, uint(itemID)); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ClearCart 清空购物车并回补库存
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.ClearCart(uid); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"cleared": true})
}
