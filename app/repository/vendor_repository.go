package repository

import (
	"github.com/vpsdeals/vpsdeals/app/models"
	"gorm.io/gorm"
)

// vendorRepository implements the VendorRepository interface
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository instance
func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

// Create creates a new vendor in the database
func (r *vendorRepository) Create(vendor *models.Vendor) error {
	return r.db.Create(vendor).Error
}

// GetByID retrieves a vendor by its ID
func (r *vendorRepository) GetByID(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.First(&vendor, id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByName retrieves a vendor by its unique name
func (r *vendorRepository) GetByName(name string) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Where("name = ?", name).First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetAll retrieves all vendors ordered by name
func (r *vendorRepository) GetAll() ([]models.Vendor, error) {
	var vendors []models.Vendor
	err := r.db.Order("name ASC").Find(&vendors).Error
	return vendors, err
}

// Update updates an existing vendor in the database
func (r *vendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Save(vendor).Error
}

// Delete removes a vendor; plans cascade via the foreign key
func (r *vendorRepository) Delete(id uint) error {
	return r.db.Delete(&models.Vendor{}, id).Error
}

// Count returns the total number of vendors
func (r *vendorRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Vendor{}).Count(&count).Error
	return count, err
}
