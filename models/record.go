package models

import "time"

// RiskRecord is one saved risk observation for a user. The five numeric
// feature columns are what the per-user classifier trains on; RiskLevel is
// nil until a label exists (real or synthesized at training time).
type RiskRecord struct {
	ID           uint      `gorm:"column:id;primaryKey" json:"id"`
	UserID       uint      `gorm:"column:user_id;index" json:"user_id"`
	Lat          float64   `gorm:"column:lat" json:"lat"`
	Lng          float64   `gorm:"column:lng" json:"lng"`
	Temperature  *float64  `gorm:"column:temperature" json:"temperature"`
	Visibility   float64   `gorm:"column:visibility" json:"visibility"`
	WindSpeed    float64   `gorm:"column:wind_speed" json:"wind_speed"`
	TrafficSpeed float64   `gorm:"column:traffic_speed" json:"traffic_speed"`
	JamFactor    float64   `gorm:"column:jam_factor" json:"jam_factor"`
	RiskScore    *int      `gorm:"column:risk_score" json:"risk_score"`
	RiskLevel    *string   `gorm:"column:risk_level" json:"risk_level"`
	Alerts       string    `gorm:"column:alerts" json:"alerts"`
	ModelUsed    string    `gorm:"column:model_used" json:"model_used"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (RiskRecord) TableName() string { return "risk_records" }
