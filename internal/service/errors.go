package service

import "errors"

// 业务哨兵错误，供 handler 层 errors.Is 匹配
var (
	ErrInvalidCartItem   = errors.New("invalid cart item")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrProductNotFound   = errors.New("product not found")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrStockConflict     = errors.New("stock reserve conflict")
	ErrWishlistDuplicate = errors.New("already in wishlist")
	ErrWishlistInCart    = errors.New("already in cart")
)
