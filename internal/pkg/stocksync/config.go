package stocksync

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vpsdeals/vpsdeals/app/models"
	"github.com/vpsdeals/vpsdeals/app/repository"
)

// DefaultFieldMapJSON is the stock_map value assumed when the setting was
// never configured.
const DefaultFieldMapJSON = `{"match_on":"url","status_field":"status","in":"In Stock","out":"Out of Stock"}`

// FieldMap tells the engine which two dot-paths to read from each feed
// item and which vendor-specific labels mean in/out of stock.
type FieldMap struct {
	MatchOn     string `json:"match_on" validate:"required"`
	StatusField string `json:"status_field" validate:"required"`
	InLabel     string `json:"in"`
	OutLabel    string `json:"out"`
}

// FeedConfig is the full feed request configuration, built once at the
// start of a run and passed by value through every sub-step. No component
// below the orchestrator reads settings directly.
type FeedConfig struct {
	Endpoint          string `validate:"required,url"`
	Method            string
	AuthHeader        string
	Query             string
	Map               FieldMap
	RequireVendorHost bool
}

// WebhookConfig controls the best-effort change notification.
type WebhookConfig struct {
	Enabled    bool
	URL        string
	AuthHeader string
}

var validate = validator.New()

// LoadConfig reads the stock_* settings group into value objects. A
// missing endpoint or a field map that does not parse into an object with
// match_on and status_field is a ConfigError; the caller must not fetch.
func LoadConfig(settings repository.SettingRepository) (FeedConfig, WebhookConfig, error) {
	endpoint, err := settings.GetValue(models.SettingStockEndpoint)
	if err != nil {
		return FeedConfig{}, WebhookConfig{}, err
	}
	method, err := settings.GetValueOrDefault(models.SettingStockMethod, "GET")
	if err != nil {
		return FeedConfig{}, WebhookConfig{}, err
	}
	authHeader, err := settings.GetValue(models.SettingStockAuthHeader)
	if err != nil {
		return FeedConfig{}, WebhookConfig{}, err
	}
	query, err := settings.GetValue(models.SettingStockQuery)
	if err != nil {
		return FeedConfig{}, WebhookConfig{}, err
	}
	mapJSON, err := settings.GetValueOrDefault(models.SettingStockMap, DefaultFieldMapJSON)
	if err != nil {
		return FeedConfig{}, WebhookConfig{}, err
	}
	requireVendor, err := settings.GetValueOrDefault(models.SettingStockRequireVendor, "1")
	if err != nil {
		return FeedConfig{}, WebhookConfig{}, err
	}

	if strings.TrimSpace(endpoint) == "" {
		return FeedConfig{}, WebhookConfig{}, &ConfigError{Reason: "stock settings missing or invalid: no endpoint"}
	}

	var fieldMap FieldMap
	if err := json.Unmarshal([]byte(mapJSON), &fieldMap); err != nil {
		return FeedConfig{}, WebhookConfig{}, &ConfigError{Reason: "stock settings missing or invalid: bad field map"}
	}
	if err := validate.Struct(fieldMap); err != nil {
		return FeedConfig{}, WebhookConfig{}, &ConfigError{Reason: "stock settings missing or invalid: field map needs match_on and status_field"}
	}

	method = strings.ToUpper(strings.TrimSpace(method))
	if method != "GET" && method != "POST" {
		method = "GET"
	}

	cfg := FeedConfig{
		Endpoint:          strings.TrimSpace(endpoint),
		Method:            method,
		AuthHeader:        authHeader,
		Query:             query,
		Map:               fieldMap,
		RequireVendorHost: settingBool(requireVendor),
	}
	if err := validate.Struct(cfg); err != nil {
		return FeedConfig{}, WebhookConfig{}, &ConfigError{Reason: "stock settings missing or invalid: endpoint is not a valid url"}
	}

	webhookEnabled, err := settings.GetValueOrDefault(models.SettingStockWebhookEnabled, "0")
	if err != nil {
		return FeedConfig{}, WebhookConfig{}, err
	}
	webhookURL, err := settings.GetValue(models.SettingStockWebhookURL)
	if err != nil {
		return FeedConfig{}, WebhookConfig{}, err
	}
	webhookAuth, err := settings.GetValue(models.SettingStockWebhookAuthHeader)
	if err != nil {
		return FeedConfig{}, WebhookConfig{}, err
	}

	wh := WebhookConfig{
		Enabled:    settingBool(webhookEnabled),
		URL:        strings.TrimSpace(webhookURL),
		AuthHeader: webhookAuth,
	}
	return cfg, wh, nil
}

// ValidateFieldMapJSON checks a stock_map candidate before the admin
// panel persists it, so a broken map is rejected at write time instead of
// failing every later run.
func ValidateFieldMapJSON(raw string) error {
	var fieldMap FieldMap
	if err := json.Unmarshal([]byte(raw), &fieldMap); err != nil {
		return &ConfigError{Reason: "stock_map is not a JSON object"}
	}
	if err := validate.Struct(fieldMap); err != nil {
		return &ConfigError{Reason: "stock_map needs match_on and status_field"}
	}
	return nil
}

// LoadRunDefaults reads the dry-run and limit defaults for unattended
// callers such as the scheduler entry point.
func LoadRunDefaults(settings repository.SettingRepository) (RunOptions, error) {
	dryRun, err := settings.GetValueOrDefault(models.SettingStockDryRunDefault, "0")
	if err != nil {
		return RunOptions{}, err
	}
	limitStr, err := settings.GetValueOrDefault(models.SettingStockLimitDefault, "0")
	if err != nil {
		return RunOptions{}, err
	}
	limit, err := strconv.Atoi(strings.TrimSpace(limitStr))
	if err != nil || limit < 0 {
		limit = 0
	}
	return RunOptions{DryRun: settingBool(dryRun), Limit: limit}, nil
}

// settingBool interprets the "0"/"1" switch convention of the settings
// table, tolerating true/yes spellings from hand-edited rows.
func settingBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
