package stocksync

import (
	"encoding/json"
	"strings"

	"github.com/vpsdeals/vpsdeals/app/models"
)

// Vendor feeds are uncontrolled third-party JSON, so the normalizer has to
// accept whatever vocabulary shows up. The lexicons cover the English and
// Chinese variants seen across provider panels.
var truthyStatuses = map[string]struct{}{
	"in": {}, "available": {}, "in stock": {}, "instock": {}, "yes": {},
	"true": {}, "1": {}, "有货": {}, "在售": {}, "现货": {}, "up": {},
	"online": {}, "running": {}, "active": {},
}

var falsyStatuses = map[string]struct{}{
	"out": {}, "unavailable": {}, "out of stock": {}, "sold out": {},
	"no": {}, "false": {}, "0": {}, "无货": {}, "缺货": {}, "down": {},
	"offline": {}, "stopped": {}, "inactive": {},
}

// NormalizeStatus maps a raw feed value to one of in/out/unknown.
// The configured vendor labels win over the lexicon; booleans and numbers
// are interpreted directly; everything else is unknown. Total over all
// JSON value types, never panics.
func NormalizeStatus(raw interface{}, inLabel, outLabel string) string {
	switch v := raw.(type) {
	case string:
		val := strings.TrimSpace(v)
		if val != "" {
			if inLabel != "" && strings.EqualFold(val, inLabel) {
				return models.StockStatusIn
			}
			if outLabel != "" && strings.EqualFold(val, outLabel) {
				return models.StockStatusOut
			}
		}
		lc := strings.ToLower(val)
		if _, ok := truthyStatuses[lc]; ok {
			return models.StockStatusIn
		}
		if _, ok := falsyStatuses[lc]; ok {
			return models.StockStatusOut
		}
	case bool:
		if v {
			return models.StockStatusIn
		}
		return models.StockStatusOut
	case float64:
		if v > 0 {
			return models.StockStatusIn
		}
		return models.StockStatusOut
	case int:
		if v > 0 {
			return models.StockStatusIn
		}
		return models.StockStatusOut
	case int64:
		if v > 0 {
			return models.StockStatusIn
		}
		return models.StockStatusOut
	case json.Number:
		if f, err := v.Float64(); err == nil {
			if f > 0 {
				return models.StockStatusIn
			}
			return models.StockStatusOut
		}
	}
	return models.StockStatusUnknown
}
