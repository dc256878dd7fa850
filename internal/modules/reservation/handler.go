package reservation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tourbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations", h.List)
	rg.GET("/reservations/:id", h.Get)
	rg.PATCH("/reservations/:id/status", h.UpdateStatus)
	rg.POST("/reservations/:id/cancel", h.Cancel)
}

func (h *Handler) List(c *gin.Context) {
	status := c.DefaultQuery("status", "scheduled_quoted")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, err := h.service.ListByStatus(c.Request.Context(), status, limit, offset)
	if err != nil {
		if err == ErrInvalidStatus {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown status value")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reservations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": items})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.UpdateStatus(c.Request.Context(), id, actorFrom(c), req)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case ErrInvalidStatus, ErrInvalidTransition:
			response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", err.Error())
		case ErrRaceLostUpdate:
			// field edits land before the status CAS, so on a lost race they
			// are already saved; say so instead of implying a full rollback
			response.ErrorWithDetails(c, http.StatusConflict, "CONFLICT",
				"Reservation status changed concurrently, reload and retry the status change",
				gin.H{"edits_applied": req.HasEdits()})
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update reservation")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case ErrInvalidTransition:
			response.Error(c, http.StatusBadRequest, "INVALID_TRANSITION", "Reservation cannot be cancelled")
		case ErrRaceLostUpdate:
			response.Error(c, http.StatusConflict, "CONFLICT", "Reservation was updated concurrently, reload and retry")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel reservation")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"reservation":     result.Reservation,
		"fee_applies":     result.FeeApplies,
		"fee_amount":      result.FeeAmount,
		"hours_remaining": result.HoursRemaining,
	})
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// actorFrom names the admin behind a write for the audit trail.
func actorFrom(c *gin.Context) string {
	actor := c.GetString("role")
	if userID := c.GetInt64("user_id"); userID > 0 {
		actor = actor + ":" + strconv.FormatInt(userID, 10)
	}
	return actor
}
