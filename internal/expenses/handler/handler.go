// Package handler exposes the expenses module over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"boekhoud_backend/internal/expenses/service"
	"boekhoud_backend/internal/expenses/transport"
	"boekhoud_backend/platform/httpkit"
	"boekhoud_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid expense id"
)

// Handler handles HTTP requests for expenses.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new expenses handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the expense routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/receipt/presign", h.PresignReceipt)
	rg.GET("/:id/receipt", h.ReceiptDownloadURL)
}

func (h *Handler) Create(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	expense, err := h.svc.Create(c.Request.Context(), id.TenantID(), id.UserID(), service.CreateInput{
		Category:      req.Category,
		Description:   req.Description,
		Vendor:        req.Vendor,
		AmountCents:   req.AmountCents,
		VATRatePct:    req.VATRatePct,
		ExpenseDate:   req.ExpenseDate,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.Created(c, transport.ExpenseResponseFrom(expense))
}

func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	expenses, err := h.svc.List(c.Request.Context(), id.TenantID(), limit, offset)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	items := make([]transport.ExpenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		items = append(items, transport.ExpenseResponseFrom(expense))
	}
	httpkit.OK(c, gin.H{"items": items})
}

func (h *Handler) GetByID(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	expense, err := h.svc.GetByID(c.Request.Context(), expenseID, id.TenantID())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ExpenseResponseFrom(expense))
}

func (h *Handler) Delete(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), expenseID, id.TenantID()); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) PresignReceipt(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.PresignReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	presigned, err := h.svc.PresignReceiptUpload(c.Request.Context(), expenseID, id.TenantID(), req.FileName, req.ContentType)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, presigned)
}

func (h *Handler) ReceiptDownloadURL(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	presigned, err := h.svc.ReceiptDownloadURL(c.Request.Context(), expenseID, id.TenantID())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, presigned)
}
