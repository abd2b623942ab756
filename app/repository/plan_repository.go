package repository

import (
	"time"

	"github.com/vpsdeals/vpsdeals/app/models"
	"gorm.io/gorm"
)

// planRepository implements the PlanRepository interface
type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository instance
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// Create creates a new plan in the database
func (r *planRepository) Create(plan *models.Plan) error {
	return r.db.Create(plan).Error
}

// GetByID retrieves a plan with its vendor by ID
func (r *planRepository) GetByID(id uint) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.Preload("Vendor").First(&plan, id).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// Update updates an existing plan in the database
func (r *planRepository) Update(plan *models.Plan) error {
	return r.db.Save(plan).Error
}

// Delete removes a plan by its ID
func (r *planRepository) Delete(id uint) error {
	return r.db.Delete(&models.Plan{}, id).Error
}

// applyFilter translates a PlanFilter into WHERE clauses.
// Mirrors the storefront query surface: keyword, vendor, billing cycle,
// stock state, price range, location and minimum specs.
func applyFilter(q *gorm.DB, filter PlanFilter) *gorm.DB {
	if filter.Query != "" {
		kw := "%" + filter.Query + "%"
		q = q.Where("title LIKE ? OR subtitle LIKE ? OR highlights LIKE ?", kw, kw, kw)
	}
	if filter.VendorID > 0 {
		q = q.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Billing != "" {
		q = q.Where("price_duration = ?", filter.Billing)
	}
	switch filter.Stock {
	case models.StockStatusIn, models.StockStatusOut, models.StockStatusUnknown:
		q = q.Where("stock_status = ?", filter.Stock)
	}
	if filter.MinPrice > 0 {
		q = q.Where("price >= ?", filter.MinPrice)
	}
	if filter.MaxPrice > 0 {
		q = q.Where("price <= ?", filter.MaxPrice)
	}
	if filter.Location != "" {
		q = q.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.MinCPUCores > 0 {
		q = q.Where("cpu_cores IS NOT NULL AND cpu_cores >= ?", filter.MinCPUCores)
	}
	if filter.MinRAMMB > 0 {
		q = q.Where("ram_mb IS NOT NULL AND ram_mb >= ?", filter.MinRAMMB)
	}
	if filter.MinStorageGB > 0 {
		q = q.Where("storage_gb IS NOT NULL AND storage_gb >= ?", filter.MinStorageGB)
	}
	return q
}

// List retrieves plans matching the filter with pagination
func (r *planRepository) List(filter PlanFilter, offset, limit int) ([]models.Plan, error) {
	var plans []models.Plan
	err := applyFilter(r.db.Preload("Vendor"), filter).
		Order("sort_order ASC, id ASC").Offset(offset).Limit(limit).Find(&plans).Error
	return plans, err
}

// Count returns the number of plans matching the filter
func (r *planRepository) Count(filter PlanFilter) (int64, error) {
	var count int64
	err := applyFilter(r.db.Model(&models.Plan{}), filter).Count(&count).Error
	return count, err
}

// FindByOrderURLs retrieves plans whose order_url equals any of the
// given candidate strings (tier 1 exact match)
func (r *planRepository) FindByOrderURLs(urls []string) ([]models.Plan, error) {
	if len(urls) == 0 {
		return nil, nil
	}
	var plans []models.Plan
	err := r.db.Preload("Vendor").Where("order_url IN ?", urls).Find(&plans).Error
	return plans, err
}

// FindByHostPath retrieves plans whose order_url contains the host+path
// substring pattern; when pid is non-empty the URL must also carry that
// pid parameter (tiers 2 and 3)
func (r *planRepository) FindByHostPath(likeHostPath, pid string) ([]models.Plan, error) {
	if likeHostPath == "" {
		return nil, nil
	}
	q := r.db.Preload("Vendor").Where("order_url LIKE ?", likeHostPath)
	if pid != "" {
		q = q.Where("order_url LIKE ?", "%pid="+pid+"%")
	}
	var plans []models.Plan
	err := q.Find(&plans).Error
	return plans, err
}

// FindByTitle retrieves plans by exact title equality (tier 4)
func (r *planRepository) FindByTitle(title string) ([]models.Plan, error) {
	if title == "" {
		return nil, nil
	}
	var plans []models.Plan
	err := r.db.Preload("Vendor").Where("title = ?", title).Find(&plans).Error
	return plans, err
}

// UpdateStockStatus writes the stock columns of one plan without touching
// the rest of the row
func (r *planRepository) UpdateStockStatus(id uint, status string, checkedAt time.Time) error {
	return r.db.Model(&models.Plan{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock_status":     status,
			"stock_checked_at": checkedAt,
		}).Error
}
