package repository

import (
	"errors"
	"strings"

	"github.com/vpsdeals/vpsdeals/app/models"
	"gorm.io/gorm"
)

// settingRepository implements the SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// GetValue retrieves a specific setting value by key.
// Missing keys yield the empty string, not an error.
func (r *settingRepository) GetValue(key string) (string, error) {
	var setting models.Setting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

// GetValueOrDefault retrieves a setting value, falling back to def when
// the key is absent or stored empty
func (r *settingRepository) GetValueOrDefault(key, def string) (string, error) {
	val, err := r.GetValue(key)
	if err != nil {
		return def, err
	}
	if val == "" {
		return def, nil
	}
	return val, nil
}

// SetValue upserts a specific setting value by key
func (r *settingRepository) SetValue(key, value string) error {
	var setting models.Setting
	err := r.db.Where("setting_key = ?", key).First(&setting).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.Setting{
			Key:   key,
			Value: value,
		}
		return r.db.Create(&setting).Error
	} else if err != nil {
		return err
	}

	setting.Value = value
	return r.db.Save(&setting).Error
}

// GetAllByPrefix retrieves every setting whose key starts with prefix,
// as a key to value map. Used by the admin panel to load the stock_*
// settings group in one query.
func (r *settingRepository) GetAllByPrefix(prefix string) (map[string]string, error) {
	var settings []models.Setting
	err := r.db.Where("setting_key LIKE ?", strings.ReplaceAll(prefix, "%", "") + "%").Find(&settings).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	return out, nil
}
