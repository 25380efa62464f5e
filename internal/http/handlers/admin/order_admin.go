package admin

import (
	"errors"
	"strconv"
	"time"

	"github.com/vastrika/vastrika-api/internal/http/response"
	"github.com/vastrika/vastrika-api/internal/repository"
	"github.com/vastrika/vastrika-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminListOrders 获取订单列表 (Admin)
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		OrderNo:  c.Query("order_no"),
		Keyword:  c.Query("keyword"),
	}
	if rawUserID := c.Query("user_id"); rawUserID != "" {
		if userID, err := strconv.ParseUint(rawUserID, 10, 64); err == nil {
			filter.UserID = uint(userID)
		}
	}
	if rawFrom := c.Query("created_from"); rawFrom != "" {
		if from, err := time.Parse(time.RFC3339, rawFrom); err == nil {
			filter.CreatedFrom = &from
		}
	}
	if rawTo := c.Query("created_to"); rawTo != "" {
		if to, err := time.Parse(time.RFC3339, rawTo); err == nil {
			filter.CreatedTo = &to
		}
	}

	orders, total, err := h.OrderService.AdminList(filter)
	if err != nil {
		if errors.Is(err, service.ErrOrderStatusInvalid) {
			respondError(c, response.CodeBadRequest, "unknown order status", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load orders", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// AdminGetOrder 获取订单详情 (Admin)
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	order, err := h.OrderService.AdminGetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "order not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to load order", err)
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatusRequest 订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminUpdateOrderStatus 更新订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	order, err := h.OrderService.AdminUpdateStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "order not found", nil)
		case errors.Is(err, service.ErrOrderStatusInvalid):
			respondError(c, response.CodeBadRequest, "unknown order status", nil)
		case errors.Is(err, service.ErrOrderTransitionInvalid):
			respondError(c, response.CodeConflict, "order status transition not allowed", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update order", err)
		}
		return
	}
	response.Success(c, order)
}
