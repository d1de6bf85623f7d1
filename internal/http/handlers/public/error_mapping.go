package public

import (
	"errors"

	"github.com/kandu-shop/internal/http/response"
	"github.com/kandu-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, key: "error.cart_item_invalid"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.quantity_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
	{target: service.ErrStockConflict, code: response.CodeBadRequest, key: "error.stock_conflict"},
}

var wishlistErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCartItem, code: response.CodeBadRequest, key: "error.cart_item_invalid"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, key: "error.product_not_found"},
	{target: service.ErrWishlistDuplicate, code: response.CodeBadRequest, key: "error.wishlist_duplicate"},
	{target: service.ErrWishlistInCart, code: response.CodeBadRequest, key: "error.wishlist_in_cart"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.cart_update_failed")
}

func respondWishlistError(c *gin.Context, err error) {
	respondWithMappedError(c, err, wishlistErrorRules, response.CodeInternal, "error.wishlist_update_failed")
}
