package repository

import (
	"github.com/vpsdeals/vpsdeals/app/models"
	"gorm.io/gorm"
)

// stockLogRepository implements the StockLogRepository interface
type stockLogRepository struct {
	db *gorm.DB
}

// NewStockLogRepository creates a new stock log repository instance
func NewStockLogRepository(db *gorm.DB) StockLogRepository {
	return &stockLogRepository{db: db}
}

// Create appends one run log entry
func (r *stockLogRepository) Create(entry *models.StockLog) error {
	return r.db.Create(entry).Error
}

// List retrieves run log entries, newest first, with pagination
func (r *stockLogRepository) List(offset, limit int) ([]models.StockLog, error) {
	var logs []models.StockLog
	err := r.db.Order("run_at DESC, id DESC").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, err
}

// Count returns the total number of run log entries
func (r *stockLogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.StockLog{}).Count(&count).Error
	return count, err
}
