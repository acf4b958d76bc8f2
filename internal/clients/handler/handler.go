// Package handler exposes the clients module over HTTP.
package handler

import (
	"net/http"
	"strconv"

	"boekhoud_backend/internal/clients/service"
	"boekhoud_backend/internal/clients/transport"
	"boekhoud_backend/platform/httpkit"
	"boekhoud_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid client id"
)

// Handler handles HTTP requests for clients.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new clients handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the client routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.DELETE("/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateIfMissing(c.Request.Context(), id.TenantID(), service.CreateInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		PostalCode: req.PostalCode,
		City:       req.City,
		KvkNumber:  req.KvkNumber,
		BtwID:      req.BtwID,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	resp := transport.ClientResponseFrom(result.Client)
	resp.AlreadyExisted = result.AlreadyExisted
	if result.AlreadyExisted {
		httpkit.OK(c, resp)
		return
	}
	httpkit.Created(c, resp)
}

func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	clients, err := h.svc.List(c.Request.Context(), id.TenantID(), limit, offset)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	items := make([]transport.ClientResponse, 0, len(clients))
	for _, client := range clients {
		items = append(items, transport.ClientResponseFrom(client))
	}
	httpkit.OK(c, gin.H{"items": items})
}

func (h *Handler) GetByID(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	client, err := h.svc.GetByID(c.Request.Context(), clientID, id.TenantID())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ClientResponseFrom(client))
}

func (h *Handler) Delete(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), clientID, id.TenantID()); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
