package admin

import (
	"strconv"
	"strings"

	"github.com/kandu-shop/internal/http/response"
	"github.com/kandu-shop/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminPromotions 获取促销规则列表
func (h *Handler) GetAdminPromotions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var productID uint
	if raw := strings.TrimSpace(c.Query("product_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		productID = uint(parsed)
	}

	var active *bool
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		active = &parsed
	}

	promotions, total, err := h.PromotionRepo.List(repository.PromotionListFilter{
		ProductID: productID,
		Active:    active,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.promotion_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, promotions, pagination)
}
