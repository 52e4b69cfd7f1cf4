package handler

import (
	"net/http"

	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/apierror"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/dto"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/middleware"
	"github.com/kwamevaughan/richuncle-outlook-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MovementsHandler struct{ svc service.LedgerService }

func NewMovementsHandler(svc service.LedgerService) *MovementsHandler {
	return &MovementsHandler{svc: svc}
}

// Append godoc
// @Summary Appends a manual cash movement to an open session
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AppendMovementRequest true "Movement data"
// @Success 201 {object} dto.AppendMovementResult
// @Success 202 {object} dto.AppendMovementResult "large cash-out awaiting confirmation"
// @Failure 404 {object} apierror.APIError
// @Failure 422 {object} apierror.FieldErrors
// @Router /v1/cash/movements [post]
func (h *MovementsHandler) Append(c *gin.Context) {
	var req dto.AppendMovementRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid user id in token"))
		return
	}

	result, err := h.svc.Append(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	if result.RequiresConfirmation {
		// Nothing was written — the client re-sends with confirmed=true.
		c.JSON(http.StatusAccepted, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Ledger godoc
// @Summary Lists a session's movements with running totals
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Param session_id query string true "Session ID"
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cash/movements [get]
func (h *MovementsHandler) Ledger(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Query("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid session_id"))
		return
	}
	resp, err := h.svc.Ledger(c.Request.Context(), sessionID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
