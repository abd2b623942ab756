package models

import (
	"time"
)

// StockLog is one append-only audit row per stock reconciliation run,
// whether triggered from the admin panel, the scheduler or a dry run.
// Rows are never updated after insert.
type StockLog struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	RunID      string    `gorm:"type:varchar(36);index" json:"run_id"`
	RunAt      time.Time `gorm:"autoCreateTime;index:idx_run_at" json:"run_at"`
	Code       int       `gorm:"not null;default:0" json:"code"`
	Updated    int       `gorm:"not null;default:0" json:"updated"`
	Unknown    int       `gorm:"not null;default:0" json:"unknown"`
	Skipped    int       `gorm:"not null;default:0" json:"skipped"`
	DurationMS int       `gorm:"column:duration_ms" json:"duration_ms"`
	Message    string    `gorm:"type:varchar(500)" json:"message"`
}

// TableName specifies the table name for the StockLog model
func (StockLog) TableName() string {
	return "stock_logs"
}
