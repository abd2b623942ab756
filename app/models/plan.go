package models

import (
	"time"
)

// Stock status values persisted on a plan. The empty string means the plan
// has never been checked.
const (
	StockStatusIn      = "in"
	StockStatusOut     = "out"
	StockStatusUnknown = "unknown"
)

// Plan represents a single VPS offer belonging to a vendor
type Plan struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	VendorID       uint           `gorm:"index:idx_vendor;not null" json:"vendor_id" validate:"required"`
	Vendor         Vendor         `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Title          string         `gorm:"type:varchar(191);not null" json:"title" validate:"required,min=1,max=191"`
	Subtitle       string         `gorm:"type:varchar(191)" json:"subtitle"`
	Price          float64        `gorm:"type:decimal(10,2);not null;index:idx_price" json:"price" validate:"gte=0"`
	PriceDuration  string         `gorm:"type:varchar(32);default:'per year';index:idx_price_duration" json:"price_duration" validate:"omitempty,oneof='per month' 'per year' 'one-time'"`
	DetailsURL     string         `gorm:"type:varchar(255)" json:"details_url"`
	OrderURL       string         `gorm:"type:varchar(255);index:idx_order_url,length:191" json:"order_url"`
	Location       string         `gorm:"type:varchar(255);index:idx_location,length:64" json:"location"`
	Features       *JSON          `gorm:"type:json" json:"features"`
	CPU            string         `gorm:"type:varchar(191)" json:"cpu"`
	RAM            string         `gorm:"type:varchar(191)" json:"ram"`
	Storage        string         `gorm:"type:varchar(191)" json:"storage"`
	CPUCores       *float64       `gorm:"type:decimal(5,2)" json:"cpu_cores"`
	RAMMB          *int           `json:"ram_mb"`
	StorageGB      *int           `json:"storage_gb"`
	Highlights     string         `gorm:"type:varchar(191)" json:"highlights"`
	SortOrder      int            `gorm:"default:0;index:idx_sort_order_id,priority:1" json:"sort_order"`
	StockStatus    string         `gorm:"type:varchar(16);index:idx_stock_status" json:"stock_status"`
	StockCheckedAt *time.Time     `json:"stock_checked_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime;index:idx_updated_at" json:"updated_at"`
}

// TableName specifies the table name for the Plan model
func (Plan) TableName() string {
	return "plans"
}
