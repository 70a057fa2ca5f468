package controllers

import (
	"net/http"

	"github.com/sumit-1412/NextBillTracker-sub000/internal/services"
	"github.com/sumit-1412/NextBillTracker-sub000/internal/utils"
)

type ReportsController struct {
	reportService *services.ReportService
}

func NewReportsController(reportService *services.ReportService) *ReportsController {
	return &ReportsController{reportService: reportService}
}

// GET /api/v1/reports/overview
func (c *ReportsController) OverviewHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.reportService.Overview(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
