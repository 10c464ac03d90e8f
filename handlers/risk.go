package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Techmo404/SafeRoad-Backend/middleware"
	"github.com/Techmo404/SafeRoad-Backend/ml"
	"github.com/Techmo404/SafeRoad-Backend/models"
	"github.com/Techmo404/SafeRoad-Backend/risk"
	"github.com/Techmo404/SafeRoad-Backend/services"

	"github.com/gin-gonic/gin"
)

const (
	modelMachineLearning = "machine_learning"
	modelFallbackRules   = "fallback_rules"
)

type RiskHandler struct {
	weather   *services.WeatherService
	traffic   *services.TrafficService
	records   *services.RecordService
	predictor *ml.Predictor
	cache     *services.CacheService
}

func NewRiskHandler(
	weather *services.WeatherService,
	traffic *services.TrafficService,
	records *services.RecordService,
	predictor *ml.Predictor,
	cache *services.CacheService,
) *RiskHandler {
	return &RiskHandler{
		weather:   weather,
		traffic:   traffic,
		records:   records,
		predictor: predictor,
		cache:     cache,
	}
}

type LocationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

// AlertMessage is what gets published to the live alerts channel.
type AlertMessage struct {
	UserID    uint      `json:"user_id"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	RiskLevel string    `json:"risk_level"`
	RiskScore int       `json:"risk_score"`
	Alerts    []string  `json:"alerts"`
	Timestamp time.Time `json:"timestamp"`
}

// RiskCheck assesses road risk at a location. The trained per-user model is
// preferred for the risk label; the heuristic rules take over when no model
// exists. Rule scores are always computed and returned alongside.
func (h *RiskHandler) RiskCheck(c *gin.Context) {
	userID := middleware.UserID(c)

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "valid lat/lng coordinates are required"})
		return
	}
	if err := risk.ValidateCoordinates(*req.Lat, *req.Lng); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	weather, weatherErr := h.weather.GetWeather(ctx, *req.Lat, *req.Lng)
	if weatherErr != nil {
		log.Printf("weather fetch failed: %v", weatherErr)
	}
	traffic, trafficErr := h.traffic.GetTraffic(ctx, *req.Lat, *req.Lng)
	if trafficErr != nil {
		log.Printf("traffic fetch failed: %v", trafficErr)
	}
	if weatherErr != nil && trafficErr != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "weather and traffic providers unavailable"})
		return
	}

	vector := risk.ExtractFeatures(weather, traffic)

	ruleCtx := risk.Context{Weather: weather, Traffic: traffic}
	weatherAssessment := risk.WeatherRisk(ruleCtx)
	trafficAssessment := risk.TrafficRisk(ruleCtx)
	combinedScore := weatherAssessment.Score + trafficAssessment.Score
	alerts := append(append([]string{}, weatherAssessment.Alerts...), trafficAssessment.Alerts...)

	prediction, err := h.predictor.Predict(ctx, userID, vector)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	label := prediction.Label
	modelUsed := modelMachineLearning
	if !prediction.ModelUsed {
		label = risk.FallbackLabel(vector)
		modelUsed = modelFallbackRules
	}

	alertsJSON, _ := json.Marshal(alerts)
	record := models.RiskRecord{
		UserID:       userID,
		Lat:          *req.Lat,
		Lng:          *req.Lng,
		Temperature:  vector.Temperature,
		Visibility:   vector.Visibility,
		WindSpeed:    vector.WindSpeed,
		TrafficSpeed: vector.TrafficSpeed,
		JamFactor:    vector.JamFactor,
		RiskScore:    &combinedScore,
		RiskLevel:    &label,
		Alerts:       string(alertsJSON),
		ModelUsed:    modelUsed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.records.Append(ctx, &record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save risk record"})
		return
	}

	go func() {
		publishCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.cache.PublishAlert(publishCtx, AlertMessage{
			UserID:    userID,
			Lat:       record.Lat,
			Lng:       record.Lng,
			RiskLevel: label,
			RiskScore: combinedScore,
			Alerts:    alerts,
			Timestamp: record.CreatedAt,
		}); err != nil {
			log.Printf("alert publish failed: %v", err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{
		"id":       record.ID,
		"uid":      userID,
		"coords":   gin.H{"lat": record.Lat, "lng": record.Lng},
		"weather":  weather,
		"traffic":  traffic,
		"ai_input": vector,
		"risk_scores": gin.H{
			"weather":  weatherAssessment.Score,
			"traffic":  trafficAssessment.Score,
			"combined": combinedScore,
		},
		"alerts":         alerts,
		"predicted_risk": label,
		"model":          modelUsed,
		"datetime":       record.CreatedAt,
	})
}
