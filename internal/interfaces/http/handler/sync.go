package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/frituurapp/backend/internal/domain/possync"
	"github.com/frituurapp/backend/internal/domain/shared"
	"github.com/frituurapp/backend/internal/infrastructure/logger"
	"github.com/frituurapp/backend/internal/interfaces/http/dto"
	"github.com/frituurapp/backend/internal/interfaces/http/middleware"
)

// SyncService is the application surface the sync endpoints expose
type SyncService interface {
	SyncCatalogAs(ctx context.Context, shopID uuid.UUID, override possync.Direction) (*possync.RunSummary, error)
	PushOrder(ctx context.Context, shopID, orderID uuid.UUID) (*possync.OrderPushResult, error)
	History(ctx context.Context, shopID uuid.UUID, limit int) ([]possync.SyncRun, error)
}

// SyncHandler handles POS sync API endpoints
type SyncHandler struct {
	service SyncService
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(service SyncService) *SyncHandler {
	return &SyncHandler{service: service}
}

// TriggerSync runs a catalog sync for the shop and returns the run summary
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	var req dto.ShopIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	shopID := uuid.MustParse(req.ShopID)

	// The body is optional; an empty direction uses the stored configuration
	var body dto.SyncTriggerRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			middleware.HandleValidationError(c, err)
			return
		}
	}

	summary, err := h.service.SyncCatalogAs(c.Request.Context(), shopID, possync.Direction(body.Direction))
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(summary))
}

// PushOrder pushes one order of the shop to the POS
func (h *SyncHandler) PushOrder(c *gin.Context) {
	var req dto.OrderPushRequest
	if err := c.ShouldBindUri(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	shopID := uuid.MustParse(req.ShopID)
	orderID := uuid.MustParse(req.OrderID)

	result, err := h.service.PushOrder(c.Request.Context(), shopID, orderID)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// SyncRunResponse represents one recorded sync run
type SyncRunResponse struct {
	ID         uuid.UUID             `json:"id"`
	Direction  possync.Direction     `json:"direction"`
	Status     possync.SyncRunStatus `json:"status"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
	Writes     int                   `json:"writes"`
	Kinds      []possync.KindSummary `json:"kinds,omitempty"`
	Error      string                `json:"error,omitempty"`
}

// GetHistory returns the shop's most recent sync runs, newest first
func (h *SyncHandler) GetHistory(c *gin.Context) {
	var uriReq dto.ShopIDRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	var query dto.HistoryRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	shopID := uuid.MustParse(uriReq.ShopID)

	runs, err := h.service.History(c.Request.Context(), shopID, query.Limit)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	responses := make([]SyncRunResponse, 0, len(runs))
	for i := range runs {
		run := &runs[i]
		kinds, _ := run.KindSummaries()
		responses = append(responses, SyncRunResponse{
			ID:         run.ID,
			Direction:  run.Direction,
			Status:     run.Status,
			StartedAt:  run.StartedAt,
			FinishedAt: run.FinishedAt,
			Writes:     run.Writes,
			Kinds:      kinds,
			Error:      run.Error,
		})
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// respondDomainError maps domain errors onto the API error taxonomy
func (h *SyncHandler) respondDomainError(c *gin.Context, err error) {
	code := dto.ErrCodeInternal

	switch {
	case errors.Is(err, possync.ErrConnectionNotFound), errors.Is(err, shared.ErrNotFound):
		code = dto.ErrCodeNotFound
	case errors.Is(err, possync.ErrConnectionDisabled):
		code = dto.ErrCodeConnectionDisabled
	case errors.Is(err, shared.ErrSyncInFlight):
		code = dto.ErrCodeConflict
	case possync.IsPrecondition(err):
		code = dto.ErrCodePreconditionUnmet
	case possync.IsTransient(err):
		code = dto.ErrCodePOSUnavailable
	case possync.IsSemantic(err):
		code = dto.ErrCodePOSRejected
	}

	if code == dto.ErrCodeInternal {
		logger.FromContext(c.Request.Context()).Error("Unhandled sync error", zap.Error(err))
	}

	respondError(c, code, err.Error())
}

// respondError writes an error response with the status mapped from the code
func respondError(c *gin.Context, code, message string) {
	c.JSON(dto.HTTPStatusForCode(code), dto.NewErrorResponse(code, message))
}
