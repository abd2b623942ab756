package models

import (
	"time"
)

// Vendor represents a VPS provider listed on the site
type Vendor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"name" validate:"required,min=1,max=191"`
	Website     string    `gorm:"type:varchar(255)" json:"website" validate:"omitempty,url,max=255"`
	LogoURL     string    `gorm:"type:varchar(255)" json:"logo_url" validate:"omitempty,max=255"`
	Description string    `gorm:"type:text" json:"description"`
	Plans       []Plan    `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
