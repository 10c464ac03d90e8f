package handlers

import (
	"net/http"
	"strconv"

	"github.com/Techmo404/SafeRoad-Backend/risk"
	"github.com/Techmo404/SafeRoad-Backend/services"

	"github.com/gin-gonic/gin"
)

type IncidentsHandler struct {
	incidents *services.IncidentService
}

func NewIncidentsHandler(incidents *services.IncidentService) *IncidentsHandler {
	return &IncidentsHandler{incidents: incidents}
}

// GetIncidents returns traffic incidents around the given point.
func (h *IncidentsHandler) GetIncidents(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid lat/lng coordinates are required"})
		return
	}
	if err := risk.ValidateCoordinates(lat, lng); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidents, err := h.incidents.GetIncidents(c.Request.Context(), lat, lng)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "incidents provider unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coords":    gin.H{"lat": lat, "lng": lng},
		"incidents": incidents,
	})
}
