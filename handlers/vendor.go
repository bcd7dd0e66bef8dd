package handlers

import (
	"net/http"

	"github.com/DDismyname28/home-portal/middleware"
	"github.com/DDismyname28/home-portal/services/request"
	"github.com/DDismyname28/home-portal/utils"

	"github.com/gin-gonic/gin"
)

// VendorHandler serves the provider-facing request endpoints.
type VendorHandler struct {
	Requests request.RequestService
}

func NewVendorHandler(rs request.RequestService) *VendorHandler {
	return &VendorHandler{Requests: rs}
}

// ListAssignedRequestsHandler handles GET /api/vendor/requests.
func (h *VendorHandler) ListAssignedRequestsHandler(c *gin.Context) {
	views, err := h.Requests.ListForProvider(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": views})
}

// UpdateRequestStatusHandler handles PUT /api/vendor/requests/:id. The
// assigned provider can move the status and/or replace the description in
// one call.
func (h *VendorHandler) UpdateRequestStatusHandler(c *gin.Context) {
	var req struct {
		Status      string `json:"status"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid update payload")
		return
	}

	updated, err := h.Requests.UpdateStatusAndNote(c.Param("id"), middleware.CallerID(c), req.Status, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// AddRequestNoteHandler handles POST /api/vendor/requests/:id/notes and
// returns the full history log so the client can re-render it.
func (h *VendorHandler) AddRequestNoteHandler(c *gin.Context) {
	var req struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid note payload")
		return
	}

	history, err := h.Requests.AddHistoryNote(c.Param("id"), middleware.CallerID(c), req.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
}
