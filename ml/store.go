package ml

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Techmo404/SafeRoad-Backend/models"
)

// ErrModelNotFound marks the expected steady state of a user who has never
// trained. Callers fall back to the rule engine instead of failing.
var ErrModelNotFound = errors.New("no trained model for user")

// Store persists exactly one model artifact per user id. Saving overwrites
// the prior artifact; there is no history.
type Store interface {
	Save(ctx context.Context, artifact *models.ModelArtifact) error
	Load(ctx context.Context, userID uint) (*models.ModelArtifact, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Save(ctx context.Context, artifact *models.ModelArtifact) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(artifact).Error
}

func (s *GormStore) Load(ctx context.Context, userID uint) (*models.ModelArtifact, error) {
	var artifact models.ModelArtifact
	err := s.db.WithContext(ctx).First(&artifact, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrModelNotFound
	}
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}
