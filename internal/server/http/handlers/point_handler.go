package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/ledgerkit/pointsvc/internal/domain/errors"
	"github.com/ledgerkit/pointsvc/internal/domain/model"
	"github.com/ledgerkit/pointsvc/internal/server/http/dto"
)

// PointHandler manages point ledger endpoints.
type PointHandler struct {
	facade PointFacade
}

// NewPointHandler constructs PointHandler.
func NewPointHandler(facade PointFacade) *PointHandler {
	return &PointHandler{facade: facade}
}

// Balance handles GET /point/:id.
func (h *PointHandler) Balance(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	record, err := h.facade.Balance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPointResponse(record))
}

// Histories handles GET /point/:id/histories.
func (h *PointHandler) Histories(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	records, err := h.facade.Histories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.HistoryResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, dto.HistoryResponse{
			ID:         r.ID,
			UserID:     r.UserID,
			Amount:     r.Amount,
			Type:       string(r.Type),
			TimeMillis: r.CreatedAt.UnixMilli(),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Charge handles PATCH /point/:id/charge.
func (h *PointHandler) Charge(c *gin.Context) {
	h.mutate(c, h.facade.Charge)
}

// Use handles PATCH /point/:id/use.
func (h *PointHandler) Use(c *gin.Context) {
	h.mutate(c, h.facade.Use)
}

func (h *PointHandler) mutate(c *gin.Context, op func(ctx context.Context, userID, amount int64) (*model.UserPoint, error)) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	var req dto.AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request body"})
		return
	}

	record, err := op(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPointResponse(record))
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id must be an integer"})
		return 0, false
	}
	return id, true
}

func toPointResponse(record *model.UserPoint) dto.PointResponse {
	return dto.PointResponse{
		ID:           record.UserID,
		Point:        record.Balance,
		UpdateMillis: record.UpdatedAt.UnixMilli(),
	}
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainErrors.ErrInvalidUserID):
		status = http.StatusBadRequest
	case errors.Is(err, domainErrors.ErrNegativeBalance), errors.Is(err, domainErrors.ErrNoUsableBalance):
		status = http.StatusPaymentRequired
	case errors.Is(err, domainErrors.ErrValidation):
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
