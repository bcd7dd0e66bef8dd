package handlers

import (
	"net/http"

	"github.com/DDismyname28/home-portal/middleware"
	"github.com/DDismyname28/home-portal/services/catalog"
	"github.com/DDismyname28/home-portal/services/request"
	"github.com/DDismyname28/home-portal/services/storage"
	"github.com/DDismyname28/home-portal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestHandler serves the member-facing request endpoints.
type RequestHandler struct {
	Requests request.RequestService
	Catalog  catalog.CatalogService
	Blobs    storage.StorageService
}

func NewRequestHandler(rs request.RequestService, cs catalog.CatalogService, blobs storage.StorageService) *RequestHandler {
	return &RequestHandler{Requests: rs, Catalog: cs, Blobs: blobs}
}

// ListRequestsHandler handles GET /api/requests.
func (h *RequestHandler) ListRequestsHandler(c *gin.Context) {
	requests, err := h.Requests.ListForRequester(middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": requests})
}

// SubmitRequestHandler handles POST /api/requests. The form is multipart so
// photos can ride along; a non-empty "id" field turns the call into an edit
// of an existing request.
func (h *RequestHandler) SubmitRequestHandler(c *gin.Context) {
	logger := utils.GetLogger()
	callerID := middleware.CallerID(c)

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid form payload")
		return
	}

	photos := h.uploadPhotos(c)

	if id := c.PostForm("id"); id != "" {
		in := request.UpdateInput{PhotosToAppend: photos}
		if v, ok := c.GetPostForm("category"); ok {
			in.Category = &v
		}
		if v, ok := c.GetPostForm("provider"); ok {
			in.Provider = &v
		}
		if v, ok := c.GetPostForm("description"); ok {
			in.Description = &v
		}
		if v, ok := c.GetPostForm("date"); ok {
			in.ScheduledDate = &v
		}
		if v, ok := c.GetPostForm("time"); ok {
			in.TimePreference = &v
		}
		if v, ok := c.GetPostForm("status"); ok {
			in.Status = &v
		}

		updated, err := h.Requests.Update(id, callerID, in)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
		return
	}

	created, err := h.Requests.Create(callerID, request.CreateInput{
		Category:       c.PostForm("category"),
		Provider:       c.PostForm("provider"),
		Description:    c.PostForm("description"),
		ScheduledDate:  c.PostForm("date"),
		TimePreference: c.PostForm("time"),
		Photos:         photos,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Request submitted",
		zap.String("id", created.ID), zap.String("category", created.Category))
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// uploadPhotos pushes any attached photo files to blob storage and returns
// their URLs. Upload failures are logged and the file skipped.
func (h *RequestHandler) uploadPhotos(c *gin.Context) []string {
	logger := utils.GetLogger()
	var urls []string
	if h.Blobs == nil || c.Request.MultipartForm == nil {
		return urls
	}
	for _, fh := range c.Request.MultipartForm.File["photos"] {
		f, err := fh.Open()
		if err != nil {
			logger.Warn("Could not open uploaded photo", zap.String("name", fh.Filename), zap.Error(err))
			continue
		}
		url, err := h.Blobs.Upload(c.Request.Context(), f, fh.Filename)
		f.Close()
		if err != nil {
			logger.Warn("Photo upload failed", zap.String("name", fh.Filename), zap.Error(err))
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

// DeleteRequestHandler handles DELETE /api/requests/:id. A non-owner gets a
// plain failure envelope rather than an error status.
func (h *RequestHandler) DeleteRequestHandler(c *gin.Context) {
	deleted, err := h.Requests.Delete(c.Param("id"), middleware.CallerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Request could not be deleted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Request deleted"})
}

// FindVendorsHandler handles GET /api/requests/vendors?category=...
func (h *RequestHandler) FindVendorsHandler(c *gin.Context) {
	matches, message, err := h.Catalog.FindVendorsByCategory(c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(matches) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": matches})
}
