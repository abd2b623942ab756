package repository

import (
	"time"

	"github.com/vpsdeals/vpsdeals/app/models"
	"gorm.io/gorm"
)

// VendorRepository defines the interface for vendor-related database operations
type VendorRepository interface {
	Create(vendor *models.Vendor) error
	GetByID(id uint) (*models.Vendor, error)
	GetByName(name string) (*models.Vendor, error)
	GetAll() ([]models.Vendor, error)
	Update(vendor *models.Vendor) error
	Delete(id uint) error
	Count() (int64, error)
}

// PlanFilter narrows plan listings for the public API
type PlanFilter struct {
	Query        string
	VendorID     uint
	Billing      string
	Stock        string
	MinPrice     float64
	MaxPrice     float64
	Location     string
	MinCPUCores  float64
	MinRAMMB     int
	MinStorageGB int
}

// PlanRepository defines the interface for plan-related database operations.
// The Find* lookups back the stock matcher's tier chain and always preload
// the owning vendor so the vendor-host safeguard can inspect its website.
type PlanRepository interface {
	Create(plan *models.Plan) error
	GetByID(id uint) (*models.Plan, error)
	Update(plan *models.Plan) error
	Delete(id uint) error
	List(filter PlanFilter, offset, limit int) ([]models.Plan, error)
	Count(filter PlanFilter) (int64, error)
	FindByOrderURLs(urls []string) ([]models.Plan, error)
	FindByHostPath(likeHostPath, pid string) ([]models.Plan, error)
	FindByTitle(title string) ([]models.Plan, error)
	UpdateStockStatus(id uint, status string, checkedAt time.Time) error
}

// SettingRepository defines the interface for the key-value settings store
type SettingRepository interface {
	GetValue(key string) (string, error)
	GetValueOrDefault(key, def string) (string, error)
	SetValue(key, value string) error
	GetAllByPrefix(prefix string) (map[string]string, error)
}

// StockLogRepository defines the interface for the append-only sync audit log
type StockLogRepository interface {
	Create(entry *models.StockLog) error
	List(offset, limit int) ([]models.StockLog, error)
	Count() (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Vendor   VendorRepository
	Plan     PlanRepository
	Setting  SettingRepository
	StockLog StockLogRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Vendor:   NewVendorRepository(db),
		Plan:     NewPlanRepository(db),
		Setting:  NewSettingRepository(db),
		StockLog: NewStockLogRepository(db),
	}
}
