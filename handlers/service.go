package handlers

import (
	"net/http"

	"github.com/DDismyname28/home-portal/middleware"
	"github.com/DDismyname28/home-portal/services/catalog"
	"github.com/DDismyname28/home-portal/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the provider offering endpoints plus the public
// provider directory.
type CatalogHandler struct {
	Catalog catalog.CatalogService
}

func NewCatalogHandler(cs catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Catalog: cs}
}

// ListServicesHandler handles GET /api/services.
func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Catalog.ListForProvider(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": services})
}

// PublishServiceHandler handles POST /api/services. A non-empty "id" edits
// an offering the caller already owns.
func (h *CatalogHandler) PublishServiceHandler(c *gin.Context) {
	var req struct {
		ID             string  `json:"id"`
		Name           string  `json:"name"`
		Description    string  `json:"description"`
		Price          float64 `json:"price"`
		ImportantNotes string  `json:"important_notes"`
		Category       string  `json:"category"`
		Status         string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid service payload")
		return
	}

	svc, err := h.Catalog.Publish(middleware.CallerID(c), catalog.PublishInput{
		ID:             req.ID,
		Title:          req.Name,
		Description:    req.Description,
		Price:          req.Price,
		ImportantNotes: req.ImportantNotes,
		Category:       req.Category,
		Status:         req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": svc})
}

// RetractServiceHandler handles DELETE /api/services/:id.
func (h *CatalogHandler) RetractServiceHandler(c *gin.Context) {
	deleted, err := h.Catalog.Retract(middleware.CallerID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Service could not be deleted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Service deleted"})
}

// ListProvidersHandler handles GET /api/providers.
func (h *CatalogHandler) ListProvidersHandler(c *gin.Context) {
	providers, err := h.Catalog.ListProviders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": providers})
}
