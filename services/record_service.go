package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Techmo404/SafeRoad-Backend/models"
)

// RecordService is the append-only risk record store. Records are only ever
// created and queried by user; nothing updates or deletes them.
type RecordService struct {
	db *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{db: db}
}

func (s *RecordService) Append(ctx context.Context, record *models.RiskRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

// TrainingRecordsByUser returns every record for a user, oldest first. This
// is the full training dataset; it implements ml.RecordSource.
func (s *RecordService) TrainingRecordsByUser(ctx context.Context, userID uint) ([]models.RiskRecord, error) {
	var records []models.RiskRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

// HistoryByUser returns up to limit records newest first, optionally only
// those created before the cursor.
func (s *RecordService) HistoryByUser(ctx context.Context, userID uint, limit int, before *time.Time) ([]models.RiskRecord, error) {
	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit)
	if before != nil {
		query = query.Where("created_at < ?", *before)
	}

	var records []models.RiskRecord
	err := query.Find(&records).Error
	return records, err
}
