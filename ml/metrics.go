package ml

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trainingsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "saferoad_ml_trainings_total",
		Help: "Total number of successful model trainings.",
	})
	trainingsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "saferoad_ml_training_failures_total",
		Help: "Total number of failed model trainings.",
	})
	trainingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "saferoad_ml_training_duration_seconds",
		Help:    "Duration of a full training run.",
		Buckets: []float64{0.05, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0},
	})
	predictionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "saferoad_ml_predictions_total",
		Help: "Total number of predictions served from a trained model.",
	})
	predictionFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "saferoad_ml_prediction_fallbacks_total",
		Help: "Total number of predictions requested without a trained model.",
	})
)
