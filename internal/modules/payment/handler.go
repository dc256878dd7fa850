package payment

import (
	"bytes"
	"io"
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
	rg.POST("/payments", h.Init)
	rg.POST("/payments/callback", h.Callback)
	rg.GET("/payments/return", h.SuccessReturn)
}

func (h *Handler) Init(c *gin.Context) {
	var req InitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	resp, err := h.service.InitPayment(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrReservationNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
		case ErrNotPayable:
			response.Error(c, http.StatusBadRequest, "NOT_PAYABLE", "Reservation has no payable quote")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to init payment")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"payment": resp})
}

// Callback is the gateway's server-to-server leg. The gateway expects a bare
// "OK<order_id>" body on success, not the usual JSON envelope.
func (h *Handler) Callback(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusBadRequest, "bad body")
		return
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))

	var req CallbackRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	req.RawBody = string(raw)

	ack, err := h.service.HandleResultCallback(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidSignature:
			c.String(http.StatusForbidden, "invalid signature")
		case ErrIntentNotFound:
			c.String(http.StatusNotFound, "unknown order")
		default:
			c.String(http.StatusInternalServerError, "error")
		}
		return
	}

	c.String(http.StatusOK, ack)
}

func (h *Handler) SuccessReturn(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Query("order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order_id")
		return
	}

	r, err := h.service.HandleSuccessReturn(c.Request.Context(), orderID)
	if err != nil {
		switch err {
		case ErrIntentNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process payment return")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}
