package public

import (
	"errors"
	"strconv"

	handlershared "github.com/kandu-shop/internal/http/handlers/shared"
	"github.com/kandu-shop/internal/http/response"
	"github.com/kandu-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// GetProducts 获取上架商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	result, err := h.CatalogService.ListProducts(c.Request.Context(), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(result.Page, result.PageSize, result.Total)
	response.SuccessWithPage(c, result.Items, pagination)
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	view, err := h.CatalogService.GetProduct(uint(productID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		}
		return
	}

	response.Success(c, view)
}
