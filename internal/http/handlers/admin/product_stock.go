package admin

import (
	"strconv"

	"github.com/kandu-shop/internal/http/response"
	"github.com/kandu-shop/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminProducts 获取商品库存列表（含下架商品）
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	products, total, err := h.ProductRepo.List(repository.ProductListFilter{
		OnlyActive: false,
		Page:       page,
		PageSize:   pageSize,
	})
	if err != nil {
		requestLog(c).Warnw("admin_product_list_failed", "error", err)
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, products, pagination)
}
