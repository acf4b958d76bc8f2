// Package handler exposes the documents module over HTTP.
package handler

import (
	"net/http"

	"boekhoud_backend/internal/documents/service"
	"boekhoud_backend/internal/documents/transport"
	"boekhoud_backend/platform/httpkit"
	"boekhoud_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid document id"
	msgClientMissing    = "client does not exist; set createClientIfMissing to create it"
)

// Handler handles HTTP requests for documents.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new documents handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the document routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id/status", h.UpdateStatus)
}

func (h *Handler) Create(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lines := make([]service.CalcLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		unit := line.Unit
		if unit == "" {
			unit = "STUK"
		}
		lines = append(lines, service.CalcLine{
			Description: line.Description,
			Quantity:    line.Quantity,
			Unit:        unit,
			Price:       line.Price,
			VATRatePct:  line.VATRatePct,
		})
	}

	result, err := h.svc.DraftDocument(c.Request.Context(), id.TenantID(), id.UserID(), service.DraftInput{
		Kind:                  req.Kind,
		ClientName:            req.ClientName,
		Lines:                 lines,
		IssueDate:             req.IssueDate,
		DueInDays:             req.DueInDays,
		ValidForDays:          req.ValidForDays,
		Notes:                 req.Notes,
		CreateClientIfMissing: req.CreateClientIfMissing,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	if result.NeedsClientCreation {
		httpkit.Error(c, http.StatusConflict, msgClientMissing, nil)
		return
	}

	httpkit.Created(c, transport.DocumentResponseFrom(result.Document, nil))
}

func (h *Handler) List(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	kind := c.Query("kind")
	if kind != "" && kind != "invoice" && kind != "quotation" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	docs, err := h.svc.ListRecent(c.Request.Context(), id.TenantID(), kind, 50)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	items := make([]transport.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		items = append(items, transport.DocumentResponseFrom(doc, nil))
	}
	httpkit.OK(c, gin.H{"items": items})
}

func (h *Handler) GetByID(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	doc, items, err := h.svc.GetByID(c.Request.Context(), docID, id.TenantID())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.DocumentResponseFrom(doc, items))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.UpdateStatus(c.Request.Context(), docID, id.TenantID(), req.Status); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
