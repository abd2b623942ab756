package stocksync

import (
	"errors"
	"testing"

	"github.com/vpsdeals/vpsdeals/app/models"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	settings := newFakeSettings(map[string]string{
		models.SettingStockEndpoint: "https://feed.example.com/stock",
	})

	cfg, wh, err := LoadConfig(settings)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Method != "GET" {
		t.Errorf("method default = %q, want GET", cfg.Method)
	}
	if cfg.Map.MatchOn != "url" || cfg.Map.StatusField != "status" {
		t.Errorf("default field map not applied: %+v", cfg.Map)
	}
	if cfg.Map.InLabel != "In Stock" || cfg.Map.OutLabel != "Out of Stock" {
		t.Errorf("default labels not applied: %+v", cfg.Map)
	}
	if !cfg.RequireVendorHost {
		t.Error("vendor-host safeguard should default on")
	}
	if wh.Enabled {
		t.Error("webhook should default off")
	}
}

func TestLoadConfigMissingEndpoint(t *testing.T) {
	t.Parallel()

	_, _, err := LoadConfig(newFakeSettings(nil))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestLoadConfigEndpointNotURL(t *testing.T) {
	t.Parallel()

	settings := newFakeSettings(map[string]string{
		models.SettingStockEndpoint: "not a url",
	})
	_, _, err := LoadConfig(settings)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError for a non-URL endpoint, got %v", err)
	}
}

func TestLoadConfigBadFieldMap(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":    "definitely not json",
		"no match_on": `{"status_field":"status"}`,
		"no status":   `{"match_on":"url"}`,
	}
	for name, raw := range cases {
		settings := newFakeSettings(map[string]string{
			models.SettingStockEndpoint: "https://feed.example.com/stock",
			models.SettingStockMap:      raw,
		})
		_, _, err := LoadConfig(settings)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("%s: expected ConfigError, got %v", name, err)
		}
	}
}

func TestLoadConfigNormalizesMethod(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]string{
		"post":   "POST",
		" get ":  "GET",
		"DELETE": "GET",
	} {
		settings := newFakeSettings(map[string]string{
			models.SettingStockEndpoint: "https://feed.example.com/stock",
			models.SettingStockMethod:   raw,
		})
		cfg, _, err := LoadConfig(settings)
		if err != nil {
			t.Fatalf("LoadConfig(%q) returned error: %v", raw, err)
		}
		if cfg.Method != want {
			t.Errorf("method for %q = %q, want %q", raw, cfg.Method, want)
		}
	}
}

func TestValidateFieldMapJSON(t *testing.T) {
	t.Parallel()

	if err := ValidateFieldMapJSON(DefaultFieldMapJSON); err != nil {
		t.Errorf("default map should validate: %v", err)
	}
	if err := ValidateFieldMapJSON(`{"match_on":"url"}`); err == nil {
		t.Error("map without status_field should be rejected")
	}
	if err := ValidateFieldMapJSON(`[1,2]`); err == nil {
		t.Error("non-object map should be rejected")
	}
}

func TestLoadRunDefaults(t *testing.T) {
	t.Parallel()

	settings := newFakeSettings(map[string]string{
		models.SettingStockDryRunDefault: "1",
		models.SettingStockLimitDefault:  "25",
	})
	opts, err := LoadRunDefaults(settings)
	if err != nil {
		t.Fatalf("LoadRunDefaults returned error: %v", err)
	}
	if !opts.DryRun || opts.Limit != 25 {
		t.Errorf("got %+v, want dry-run with limit 25", opts)
	}

	opts, err = LoadRunDefaults(newFakeSettings(map[string]string{
		models.SettingStockLimitDefault: "garbage",
	}))
	if err != nil {
		t.Fatalf("LoadRunDefaults returned error: %v", err)
	}
	if opts.DryRun || opts.Limit != 0 {
		t.Errorf("got %+v, want disabled defaults for bad values", opts)
	}
}
