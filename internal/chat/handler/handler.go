// Package handler exposes the chat engine over HTTP.
package handler

import (
	"net/http"

	"boekhoud_backend/internal/chat/service"
	"boekhoud_backend/internal/chat/transport"
	"boekhoud_backend/platform/httpkit"
	"boekhoud_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for the chat engine.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new chat handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/messages", h.PostMessage)
	rg.POST("/conversations/:id/cancel", h.CancelConversation)
}

// PostMessage runs one conversation turn.
func (h *Handler) PostMessage(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	reply, err := h.svc.HandleMessage(c.Request.Context(), service.MessageInput{
		UserID:    id.UserID().String(),
		TenantID:  id.TenantID().String(),
		UserEmail: id.Email(),
		RequestID: httpkit.GetRequestID(c),
		Message:   req.Message,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.MessageResponseFrom(reply))
}

// CancelConversation terminates the draft behind a conversation ID.
func (h *Handler) CancelConversation(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	reply, err := h.svc.Cancel(c.Request.Context(), id.UserID().String(), httpkit.GetRequestID(c), c.Param("id"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.MessageResponseFrom(reply))
}
