package models

import "time"

// ModelArtifact is the latest trained classifier for one user. Data is an
// opaque serialized model; only the ml package reads it. Retraining
// overwrites the row in place, there is no version history.
type ModelArtifact struct {
	UserID          uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	Data            []byte    `gorm:"column:data" json:"-"`
	Accuracy        float64   `gorm:"column:accuracy" json:"accuracy"`
	SamplesUsed     int       `gorm:"column:samples_used" json:"samples_used"`
	GeneratedLabels int       `gorm:"column:generated_labels" json:"generated_labels"`
	TrainedAt       time.Time `gorm:"column:trained_at" json:"trained_at"`
}

func (ModelArtifact) TableName() string { return "model_artifacts" }
