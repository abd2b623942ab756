package models

import (
	"time"
)

// Setting represents one row of the string-keyed configuration store.
// All runtime feature switches (including the stock-sync group) live here
// so the admin panel can change them without a restart.
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:191;not null;uniqueIndex" json:"key" validate:"required,min=1,max=191"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Setting model
func (Setting) TableName() string {
	return "settings"
}

// Setting keys consumed by the stock reconciliation engine. Values are
// strings; "0"/"1" for switches, JSON for the field map and last result.
const (
	SettingStockEndpoint          = "stock_endpoint"
	SettingStockMethod            = "stock_method"
	SettingStockAuthHeader        = "stock_auth_header"
	SettingStockQuery             = "stock_query"
	SettingStockMap               = "stock_map"
	SettingStockWebhookEnabled    = "stock_webhook_enabled"
	SettingStockWebhookURL        = "stock_webhook_url"
	SettingStockWebhookAuthHeader = "stock_webhook_auth_header"
	SettingStockRequireVendor     = "stock_match_require_vendor"
	SettingStockDryRunDefault     = "stock_dry_run_default"
	SettingStockLimitDefault      = "stock_limit_default"
	SettingStockLastRunAt         = "stock_last_run_at"
	SettingStockLastResult        = "stock_last_result"
)
