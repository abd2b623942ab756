package stocksync

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vpsdeals/vpsdeals/app/models"
	"github.com/vpsdeals/vpsdeals/app/repository"
)

// timeFormat is the timestamp layout used in change events and the
// last-run settings, matching what the admin panel renders.
const timeFormat = "2006-01-02 15:04:05"

// altURLFields are tried when match_on is "url" but the configured path
// resolves to nothing; feeds disagree on what to call the link field.
var altURLFields = []string{"url", "order_url", "href", "link"}

type feedFetcher interface {
	Fetch(ctx context.Context, cfg FeedConfig) (int, []byte, error)
}

type changeNotifier interface {
	Send(ctx context.Context, cfg WebhookConfig, events []ChangeEvent) error
}

// Service is the reconciliation orchestrator. One Run is a fresh,
// independent pass: fetch, parse, match, normalize, diff, persist, log,
// notify. The interactive admin trigger and the scheduler CLI are both
// thin callers of this one implementation.
type Service struct {
	repos    *repository.Repositories
	fetcher  feedFetcher
	notifier changeNotifier
	lock     RunLock
	now      func() time.Time
}

// NewService creates the orchestrator with its default collaborators.
func NewService(repos *repository.Repositories) *Service {
	return &Service{
		repos:    repos,
		fetcher:  NewFetcher(),
		notifier: NewNotifier(),
		lock:     NewRunLock(),
		now:      time.Now,
	}
}

// NewServiceFromDB creates the orchestrator from a GORM handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(repository.NewRepositories(db))
}

// Run executes one reconciliation pass. Config, transport and feed errors
// short-circuit with codes 400/500; per-item problems only move counters.
// Every attempt, including failed ones, leaves a stock_logs row and
// refreshes the last-run settings.
func (s *Service) Run(ctx context.Context, opts RunOptions) RunResult {
	start := s.now()
	res := RunResult{RunID: uuid.NewString()}

	// Settings are read once here; a value changed mid-run does not
	// retroactively affect this run.
	cfg, webhook, err := LoadConfig(s.repos.Setting)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			res.Code = CodeConfig
			res.Message = cfgErr.Error()
		} else {
			res.Code = CodeFeed
			res.Message = "settings read failed: " + err.Error()
		}
		return s.finish(ctx, res, start, opts, nil, WebhookConfig{})
	}

	if ok, lockErr := s.lock.Acquire(res.RunID); lockErr != nil {
		// A broken lock backend degrades to the unguarded behavior the
		// engine always had rather than blocking reconciliation.
		log.Warnf("[StockSync] run lock unavailable, continuing unguarded: %v", lockErr)
	} else if !ok {
		res.Code = CodeConflict
		res.Message = "another sync run is in progress"
		return res
	} else {
		defer s.lock.Release()
	}

	status, body, err := s.fetcher.Fetch(ctx, cfg)
	if err != nil {
		res.Code = CodeFeed
		res.Message = err.Error()
		log.Errorf("[StockSync] feed fetch failed (status=%d): %v", status, err)
		return s.finish(ctx, res, start, opts, nil, WebhookConfig{})
	}

	items, err := ExtractItems(body)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			res.Code = CodeConfig
		} else {
			res.Code = CodeFeed
		}
		res.Message = err.Error()
		return s.finish(ctx, res, start, opts, nil, WebhookConfig{})
	}

	matcher := NewMatcher(s.repos.Plan, cfg.RequireVendorHost)
	now := s.now()
	checkedAt := now.Format(timeFormat)
	var changes []ChangeEvent
	processed := 0

	for _, raw := range items {
		if opts.Limit > 0 && processed >= opts.Limit {
			break
		}
		obj, ok := raw.(map[string]interface{})
		if !ok {
			res.Skipped++
			continue
		}
		item := Item(obj)

		key := item.StringAt(cfg.Map.MatchOn)
		if key == "" && cfg.Map.MatchOn == "url" {
			for _, alt := range altURLFields {
				if key = item.StringAt(alt); key != "" {
					break
				}
			}
		}
		if key == "" {
			res.Skipped++
			continue
		}

		statusRaw, _ := item.Path(cfg.Map.StatusField)
		stock := NormalizeStatus(statusRaw, cfg.Map.InLabel, cfg.Map.OutLabel)

		plans, err := matcher.Match(item, cfg.Map.MatchOn, key)
		if err != nil {
			log.Errorf("[StockSync] match lookup failed for key %q: %v", key, err)
			res.Skipped++
			continue
		}
		// Counted after the lookup so one item lands in at most one tally.
		if stock == models.StockStatusUnknown {
			res.Unknown++
		}
		if len(plans) == 0 {
			// Key resolved but nothing stored matches; deliberately
			// outside every counter so alerting keeps its meaning.
			log.Debugf("[StockSync] no stored plan for key %q", key)
			processed++
			continue
		}

		if opts.DryRun {
			res.Updated += len(plans)
			processed++
			continue
		}

		for _, plan := range plans {
			prev := plan.StockStatus
			if prev == stock {
				continue
			}
			if err := s.repos.Plan.UpdateStockStatus(plan.ID, stock, now); err != nil {
				// Partial progress is intentional: one bad row must not
				// roll back unrelated prior updates.
				log.Errorf("[StockSync] update failed for plan %d: %v", plan.ID, err)
				continue
			}
			res.Updated++
			prevLabel := prev
			if prevLabel == "" {
				prevLabel = models.StockStatusUnknown
			}
			changes = append(changes, ChangeEvent{
				PlanID:    plan.ID,
				Title:     plan.Title,
				OrderURL:  plan.OrderURL,
				Prev:      prevLabel,
				Curr:      stock,
				CheckedAt: checkedAt,
			})
		}
		processed++
	}

	res.Code = CodeOK
	if opts.DryRun {
		res.Message = "dry-run"
	} else {
		res.Message = "ok"
	}
	return s.finish(ctx, res, start, opts, changes, webhook)
}

// finish stamps the duration, appends the audit row, refreshes the
// last-run settings and fires the webhook. Called on every exit path
// except a declined start, so failed attempts are visible in the admin
// panel too.
func (s *Service) finish(ctx context.Context, res RunResult, start time.Time, opts RunOptions, changes []ChangeEvent, webhook WebhookConfig) RunResult {
	res.DurationMS = int(s.now().Sub(start).Milliseconds())

	entry := &models.StockLog{
		RunID:      res.RunID,
		Code:       res.Code,
		Updated:    res.Updated,
		Unknown:    res.Unknown,
		Skipped:    res.Skipped,
		DurationMS: res.DurationMS,
		Message:    res.Message,
	}
	if err := s.repos.StockLog.Create(entry); err != nil {
		log.Errorf("[StockSync] log insert failed: %v", err)
	}

	if err := s.repos.Setting.SetValue(models.SettingStockLastRunAt, s.now().Format(timeFormat)); err != nil {
		log.Errorf("[StockSync] saving last run time failed: %v", err)
	}
	if summary, err := json.Marshal(res); err == nil {
		if err := s.repos.Setting.SetValue(models.SettingStockLastResult, string(summary)); err != nil {
			log.Errorf("[StockSync] saving last result failed: %v", err)
		}
	}

	if webhook.Enabled && !opts.DryRun && webhook.URL != "" && len(changes) > 0 {
		if err := s.notifier.Send(ctx, webhook, changes); err != nil {
			log.Errorf("[StockSync] webhook delivery failed: %v", err)
		}
	}

	log.Infof("[StockSync] run %s finished: code=%d updated=%d unknown=%d skipped=%d duration=%dms",
		res.RunID, res.Code, res.Updated, res.Unknown, res.Skipped, res.DurationMS)
	return res
}
