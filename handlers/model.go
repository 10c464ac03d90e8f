package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Techmo404/SafeRoad-Backend/middleware"
	"github.com/Techmo404/SafeRoad-Backend/ml"
	"github.com/Techmo404/SafeRoad-Backend/risk"
	"github.com/Techmo404/SafeRoad-Backend/services"

	"github.com/gin-gonic/gin"
)

type ModelHandler struct {
	records   *services.RecordService
	trainer   *ml.Trainer
	predictor *ml.Predictor
	weather   *services.WeatherService
	traffic   *services.TrafficService
}

func NewModelHandler(
	records *services.RecordService,
	trainer *ml.Trainer,
	predictor *ml.Predictor,
	weather *services.WeatherService,
	traffic *services.TrafficService,
) *ModelHandler {
	return &ModelHandler{
		records:   records,
		trainer:   trainer,
		predictor: predictor,
		weather:   weather,
		traffic:   traffic,
	}
}

// Dataset returns the user's stored training rows.
func (h *ModelHandler) Dataset(c *gin.Context) {
	userID := middleware.UserID(c)

	records, err := h.records.TrainingRecordsByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_records": len(records),
		"dataset":       records,
	})
}

// Train fits a fresh classifier on the user's records, replacing any prior
// model. Too few records is a structured 422, not a failure.
func (h *ModelHandler) Train(c *gin.Context) {
	userID := middleware.UserID(c)

	report, err := h.trainer.Train(c.Request.Context(), userID)

	var insufficient *ml.InsufficientDataError
	if errors.As(err, &insufficient) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    "not enough records to train",
			"required": insufficient.Required,
			"actual":   insufficient.Actual,
		})
		return
	}
	if err != nil {
		log.Printf("training failed for user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "training failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "classification model trained",
		"accuracy":         report.Accuracy,
		"samples_used":     report.SamplesUsed,
		"generated_labels": report.GeneratedLabels,
	})
}

// Predict fetches live conditions at a location and classifies them with the
// user's trained model. An untrained user gets a warning, not an error.
func (h *ModelHandler) Predict(c *gin.Context) {
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

	prediction, err := h.predictor.Predict(ctx, userID, vector)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "prediction failed"})
		return
	}

	if !prediction.ModelUsed {
		c.JSON(http.StatusOK, gin.H{
			"coords":     gin.H{"lat": *req.Lat, "lng": *req.Lng},
			"input_used": vector,
			"model_used": false,
			"warning":    "model not trained yet",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"coords":          gin.H{"lat": *req.Lat, "lng": *req.Lng},
		"input_used":      vector,
		"model_used":      true,
		"predicted_label": prediction.Label,
	})
}
