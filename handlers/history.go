package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Techmo404/SafeRoad-Backend/middleware"
	"github.com/Techmo404/SafeRoad-Backend/models"
	"github.com/Techmo404/SafeRoad-Backend/risk"
	"github.com/Techmo404/SafeRoad-Backend/services"

	"github.com/gin-gonic/gin"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

type paginationParams struct {
	Limit  int
	Before *time.Time
}

// CursorResponse pages the newest-first history with a created-at cursor.
type CursorResponse struct {
	Data       interface{} `json:"data"`
	NextCursor string      `json:"next_cursor,omitempty"`
	HasMore    bool        `json:"has_more"`
}

func parsePagination(c *gin.Context) paginationParams {
	p := paginationParams{Limit: defaultHistoryLimit}

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			p.Limit = l
		}
	}
	if p.Limit > maxHistoryLimit {
		p.Limit = maxHistoryLimit
	}

	if beforeStr := c.Query("before"); beforeStr != "" {
		if t, err := time.Parse(time.RFC3339Nano, beforeStr); err == nil {
			p.Before = &t
		}
	}

	return p
}

type HistoryHandler struct {
	records *services.RecordService
}

func NewHistoryHandler(records *services.RecordService) *HistoryHandler {
	return &HistoryHandler{records: records}
}

type SaveDataRequest struct {
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Temperature  *float64 `json:"temperature"`
	Visibility   *float64 `json:"visibility"`
	WindSpeed    *float64 `json:"wind_speed"`
	TrafficSpeed *float64 `json:"traffic_speed"`
	JamFactor    *float64 `json:"jam_factor"`
	RiskScore    *int     `json:"risk_score"`
	RiskLevel    *string  `json:"risk_level"`
	Alerts       []string `json:"alerts"`
}

// SaveData appends a risk observation for the authenticated user. Missing
// numeric fields take the extraction-time defaults; a label, when present,
// must be one of the three risk tiers.
func (h *HistoryHandler) SaveData(c *gin.Context) {
	userID := middleware.UserID(c)

	var req SaveDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.RiskLevel != nil {
		switch *req.RiskLevel {
		case risk.LabelLow, risk.LabelMedium, risk.LabelHigh:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "risk_level must be Bajo, Medio or Alto"})
			return
		}
	}

	record := models.RiskRecord{
		UserID:       userID,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Temperature:  req.Temperature,
		Visibility:   risk.DefaultVisibility,
		RiskScore:    req.RiskScore,
		RiskLevel:    req.RiskLevel,
		CreatedAt:    time.Now().UTC(),
	}
	if req.Visibility != nil {
		record.Visibility = *req.Visibility
	}
	if req.WindSpeed != nil {
		record.WindSpeed = *req.WindSpeed
	}
	if req.TrafficSpeed != nil {
		record.TrafficSpeed = *req.TrafficSpeed
	}
	if req.JamFactor != nil {
		record.JamFactor = *req.JamFactor
	}
	if len(req.Alerts) > 0 {
		alertsJSON, _ := json.Marshal(req.Alerts)
		record.Alerts = string(alertsJSON)
	}

	if err := h.records.Append(c.Request.Context(), &record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "ok", "id": record.ID})
}

// History returns the user's records newest first with cursor pagination.
func (h *HistoryHandler) History(c *gin.Context) {
	userID := middleware.UserID(c)
	p := parsePagination(c)

	rows, err := h.records.HistoryByUser(c.Request.Context(), userID, p.Limit+1, p.Before)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}

	var nextCursor string
	if hasMore && len(rows) > 0 {
		nextCursor = rows[len(rows)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	c.JSON(http.StatusOK, CursorResponse{Data: rows, NextCursor: nextCursor, HasMore: hasMore})
}
