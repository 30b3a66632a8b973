package handlers

import (
	"errors"
	"strconv"
	"time"

	"rentoasis/internal/middleware"
	"rentoasis/internal/models"
	"rentoasis/internal/rent"
	"rentoasis/internal/services"
	apperrors "rentoasis/pkg/errors"
	"rentoasis/pkg/response"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service: service,
	}
}

// CreatePaymentRequest 房东开具一期应收账单
type CreatePaymentRequest struct {
	UnitID  uint   `json:"unit_id" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
	DueDate string `json:"due_date" binding:"required"` // 2006-01-02
}

// PayRequest 租客支付账单
type PayRequest struct {
	Method string `json:"method" binding:"required"`
}

// Create 开具账单
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	amountCents, err := rent.ParseAmountToCents(req.Amount)
	if err != nil {
		response.BadRequest(c, "Invalid amount")
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		response.BadRequest(c, "Invalid due date, expected YYYY-MM-DD")
		return
	}

	landlordID := middleware.CurrentUserID(c)
	payment, err := h.service.Create(landlordID, req.UnitID, amountCents, dueDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Unit not found")
			return
		}
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "Failed to create payment")
		return
	}

	response.Success(c, payment)
}

// GetMine 当前租客的账单列表（带派生字段）
func (h *PaymentHandler) GetMine(c *gin.Context) {
	tenantID := middleware.CurrentUserID(c)

	payments, err := h.service.GetByTenant(tenantID)
	if err != nil {
		response.ServerError(c, "Failed to list payments")
		return
	}

	views, err := h.service.BuildViews(payments)
	if err != nil {
		response.ServerError(c, "Failed to build payment views")
		return
	}

	response.Success(c, views)
}

// Tracker 账期汇总视图：按年月过滤并分桶汇总
//
// 房东可以用property_id限定单个物业；租客只看自己的账单。
func (h *PaymentHandler) Tracker(c *gin.Context) {
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	if err != nil {
		response.BadRequest(c, "Invalid year")
		return
	}
	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(time.Now().Month()))))
	if err != nil {
		response.BadRequest(c, "Invalid month")
		return
	}

	var propertyID uint
	if raw := c.Query("property_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.BadRequest(c, "Invalid property id")
			return
		}
		propertyID = uint(parsed)
	}

	userID := middleware.CurrentUserID(c)
	role, _ := c.Get("role")

	var views []services.PaymentView
	var summary *rent.Summary

	if role == models.RoleLandlord {
		views, summary, err = h.service.SummarizeForLandlord(userID, year, month, propertyID)
	} else {
		views, summary, err = h.service.SummarizeForTenant(userID, year, month)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "Failed to summarize payments")
		return
	}

	response.Success(c, gin.H{
		"summary":  summary,
		"payments": views,
	})
}

// Pay 支付账单
func (h *PaymentHandler) Pay(c *gin.Context) {
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid payment id")
		return
	}

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	tenantID := middleware.CurrentUserID(c)
	payment, err := h.service.Pay(uint(paymentID), tenantID, req.Method)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Payment not found")
			return
		}
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			response.Conflict(c, "Payment already settled")
			return
		}
		if errors.Is(err, apperrors.ErrInvalidArgument) {
			response.BadRequest(c, err.Error())
			return
		}
		response.ServerError(c, "Failed to process payment")
		return
	}

	response.SuccessWithMessage(c, "Payment successful", payment)
}

// Next 当前租客的下一期待付账单
func (h *PaymentHandler) Next(c *gin.Context) {
	tenantID := middleware.CurrentUserID(c)

	payment, err := h.service.NextForTenant(tenantID)
	if err != nil {
		response.ServerError(c, "Failed to load next payment")
		return
	}
	if payment == nil {
		// 没有待付账单不是错误
		response.Success(c, nil)
		return
	}

	views, err := h.service.BuildViews([]models.RentPayment{*payment})
	if err != nil || len(views) == 0 {
		response.ServerError(c, "Failed to build payment view")
		return
	}

	response.Success(c, views[0])
}
