package handlers

import (
	"net/http"

	"github.com/DDismyname28/home-portal/middleware"
	"github.com/DDismyname28/home-portal/models"
	"github.com/DDismyname28/home-portal/services/report"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the monthly dashboard summaries.
type ReportHandler struct {
	Reports report.ReportService
}

func NewReportHandler(rs report.ReportService) *ReportHandler {
	return &ReportHandler{Reports: rs}
}

// MonthlyReportHandler handles GET /api/reports. Providers get their
// assigned-request tallies plus an offering count; members get tallies over
// their own requests.
func (h *ReportHandler) MonthlyReportHandler(c *gin.Context) {
	callerID := middleware.CallerID(c)

	if middleware.CallerRole(c) == models.RoleLocalProvider {
		summary, err := h.Reports.ProviderSummary(callerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
		return
	}

	summary, err := h.Reports.MemberSummary(callerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}
