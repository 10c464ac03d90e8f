package ml

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Techmo404/SafeRoad-Backend/config"
	"github.com/Techmo404/SafeRoad-Backend/models"
	"github.com/Techmo404/SafeRoad-Backend/risk"
)

const testSplitRatio = 0.25

// RecordSource supplies a user's historical risk records for training.
type RecordSource interface {
	TrainingRecordsByUser(ctx context.Context, userID uint) ([]models.RiskRecord, error)
}

// InsufficientDataError reports that a user has too few records to train.
// Recoverable: the caller surfaces the counts, nothing is retried.
type InsufficientDataError struct {
	Required int `json:"required"`
	Actual   int `json:"actual"`
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("training requires at least %d records, have %d", e.Required, e.Actual)
}

// TrainingReport summarizes one completed training run.
type TrainingReport struct {
	Accuracy        float64 `json:"accuracy"`
	SamplesUsed     int     `json:"samples_used"`
	GeneratedLabels int     `json:"generated_labels"`
}

// Trainer runs the per-user training pipeline. Concurrent Train calls for
// the same user are serialized on a per-user lock so retraining never races
// the artifact upsert; different users train independently.
type Trainer struct {
	source RecordSource
	store  Store
	cfg    config.MLConfig

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewTrainer(source RecordSource, store Store, cfg config.MLConfig) *Trainer {
	return &Trainer{
		source: source,
		store:  store,
		cfg:    cfg,
		locks:  make(map[uint]*sync.Mutex),
	}
}

// Train loads the user's records, backfills missing labels heuristically,
// fits a seeded random forest on a 75/25 split and persists the artifact,
// overwriting any previous model. Reproducible: the same dataset and seed
// yield the same model and accuracy.
func (t *Trainer) Train(ctx context.Context, userID uint) (*TrainingReport, error) {
	lock := t.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()

	records, err := t.source.TrainingRecordsByUser(ctx, userID)
	if err != nil {
		trainingsFailed.Inc()
		return nil, fmt.Errorf("load training records: %w", err)
	}

	if len(records) < t.cfg.MinTrainingRecords {
		return nil, &InsufficientDataError{Required: t.cfg.MinTrainingRecords, Actual: len(records)}
	}

	X, labels, generated := buildDataset(records)

	trainIdx, testIdx := trainTestSplit(len(records), testSplitRatio, int64(t.cfg.Seed))

	forest := TrainForest(
		subsetRows(X, trainIdx),
		subsetLabels(labels, trainIdx),
		DefaultForestConfig(t.cfg.ForestSize, int64(t.cfg.Seed)),
	)

	correct := 0
	for _, i := range testIdx {
		if forest.Predict(X[i]) == labels[i] {
			correct++
		}
	}
	accuracy := round2(float64(correct) / float64(len(testIdx)) * 100)

	data, err := json.Marshal(forest)
	if err != nil {
		trainingsFailed.Inc()
		return nil, fmt.Errorf("encode model artifact: %w", err)
	}

	artifact := &models.ModelArtifact{
		UserID:          userID,
		Data:            data,
		Accuracy:        accuracy,
		SamplesUsed:     len(records),
		GeneratedLabels: generated,
		TrainedAt:       time.Now().UTC(),
	}
	if err := t.store.Save(ctx, artifact); err != nil {
		trainingsFailed.Inc()
		return nil, fmt.Errorf("persist model artifact: %w", err)
	}

	trainingsCompleted.Inc()
	trainingDuration.Observe(time.Since(start).Seconds())

	return &TrainingReport{
		Accuracy:        accuracy,
		SamplesUsed:     len(records),
		GeneratedLabels: generated,
	}, nil
}

func (t *Trainer) userLock(userID uint) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()
	lock, ok := t.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[userID] = lock
	}
	return lock
}

// buildDataset turns records into feature rows and labels, synthesizing a
// heuristic label wherever none was recorded. Present labels are untouched.
func buildDataset(records []models.RiskRecord) ([][]float64, []string, int) {
	X := make([][]float64, len(records))
	labels := make([]string, len(records))
	generated := 0

	for i, rec := range records {
		vector := risk.FromRecord(rec)
		X[i] = vector.Values()
		if rec.RiskLevel != nil && *rec.RiskLevel != "" {
			labels[i] = *rec.RiskLevel
		} else {
			labels[i] = risk.HeuristicLabel(vector)
			generated++
		}
	}

	return X, labels, generated
}

// trainTestSplit shuffles row indices with the given seed and carves off the
// test partition. Deterministic for a fixed n and seed.
func trainTestSplit(n int, testRatio float64, seed int64) (trainIdx, testIdx []int) {
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	nTest := int(math.Round(float64(n) * testRatio))
	if nTest < 1 {
		nTest = 1
	}
	if nTest >= n {
		nTest = n - 1
	}
	return perm[nTest:], perm[:nTest]
}

func subsetRows(X [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = X[j]
	}
	return out
}

func subsetLabels(labels []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = labels[j]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
