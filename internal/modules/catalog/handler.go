package catalog

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
	rg.GET("/services", h.ListServices)
	rg.GET("/vehicles", h.ListVehicles)
	rg.GET("/hotels", h.ListHotels)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list services")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"services": services})
}

func (h *Handler) ListVehicles(c *gin.Context) {
	passengers, _ := strconv.Atoi(c.Query("passengers"))

	vehicles, err := h.service.ListVehicles(c.Request.Context(), passengers)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list vehicles")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

func (h *Handler) ListHotels(c *gin.Context) {
	hotels, err := h.service.ListHotels(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list hotels")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotels": hotels})
}
