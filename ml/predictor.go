package ml

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Techmo404/SafeRoad-Backend/risk"
)

// Prediction is the outcome of a predict call. ModelUsed false means the
// user has no trained model; that is a valid steady state, not an error, and
// callers are expected to fall back to the rule engine.
type Prediction struct {
	Label     string             `json:"predicted_label,omitempty"`
	Input     risk.FeatureVector `json:"input_used"`
	ModelUsed bool               `json:"model_used"`
}

// Predictor serves single-shot predictions from persisted per-user models.
// It never trains implicitly.
type Predictor struct {
	store Store
}

func NewPredictor(store Store) *Predictor {
	return &Predictor{store: store}
}

// Predict loads the user's artifact and classifies the feature vector. When
// no artifact exists the returned Prediction carries ModelUsed=false and no
// label. The input vector is echoed back in both cases.
func (p *Predictor) Predict(ctx context.Context, userID uint, v risk.FeatureVector) (*Prediction, error) {
	artifact, err := p.store.Load(ctx, userID)
	if errors.Is(err, ErrModelNotFound) {
		predictionFallbacks.Inc()
		return &Prediction{Input: v, ModelUsed: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load model artifact: %w", err)
	}

	var forest Forest
	if err := json.Unmarshal(artifact.Data, &forest); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	predictionsServed.Inc()
	return &Prediction{
		Label:     forest.Predict(v.Values()),
		Input:     v,
		ModelUsed: true,
	}, nil
}
