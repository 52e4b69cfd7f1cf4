package handler

import (
	"net/http"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/apierror"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReportsHandler struct{ svc service.ZReportService }

func NewReportsHandler(svc service.ZReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// ZReport godoc
// @Summary Returns the frozen z-report for a closed session
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} dto.ZReportResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cash/sessions/{id}/z-report [get]
func (h *ReportsHandler) ZReport(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid session id"))
		return
	}
	resp, err := h.svc.GetBySession(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
