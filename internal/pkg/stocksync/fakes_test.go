package stocksync

import (
	"context"
	"strings"
	"time"

	"github.com/vpsdeals/vpsdeals/app/models"
	"github.com/vpsdeals/vpsdeals/app/repository"
)

// fakePlanRepo is an in-memory PlanRepository that emulates the SQL
// semantics the matcher relies on: IN over order_url, case-insensitive
// LIKE for the host+path pattern, exact title equality.
type fakePlanRepo struct {
	plans     []models.Plan
	writes    int
	lookupErr error
}

func (f *fakePlanRepo) Create(plan *models.Plan) error { f.plans = append(f.plans, *plan); return nil }

func (f *fakePlanRepo) GetByID(id uint) (*models.Plan, error) {
	for i := range f.plans {
		if f.plans[i].ID == id {
			p := f.plans[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakePlanRepo) Update(plan *models.Plan) error { return nil }
func (f *fakePlanRepo) Delete(id uint) error           { return nil }

func (f *fakePlanRepo) List(filter repository.PlanFilter, offset, limit int) ([]models.Plan, error) {
	return f.plans, nil
}

func (f *fakePlanRepo) Count(filter repository.PlanFilter) (int64, error) {
	return int64(len(f.plans)), nil
}

func (f *fakePlanRepo) FindByOrderURLs(urls []string) ([]models.Plan, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	var out []models.Plan
	for _, p := range f.plans {
		for _, u := range urls {
			if p.OrderURL == u {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakePlanRepo) FindByHostPath(likeHostPath, pid string) ([]models.Plan, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	needle := strings.ToLower(strings.Trim(likeHostPath, "%"))
	if needle == "" {
		return nil, nil
	}
	var out []models.Plan
	for _, p := range f.plans {
		if !strings.Contains(strings.ToLower(p.OrderURL), needle) {
			continue
		}
		if pid != "" && !strings.Contains(p.OrderURL, "pid="+pid) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePlanRepo) FindByTitle(title string) ([]models.Plan, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	var out []models.Plan
	for _, p := range f.plans {
		if p.Title == title {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlanRepo) UpdateStockStatus(id uint, status string, checkedAt time.Time) error {
	for i := range f.plans {
		if f.plans[i].ID == id {
			f.plans[i].StockStatus = status
			t := checkedAt
			f.plans[i].StockCheckedAt = &t
			f.writes++
			return nil
		}
	}
	return nil
}

// fakeSettingRepo is a map-backed SettingRepository.
type fakeSettingRepo struct {
	values map[string]string
}

func newFakeSettings(values map[string]string) *fakeSettingRepo {
	if values == nil {
		values = map[string]string{}
	}
	return &fakeSettingRepo{values: values}
}

func (f *fakeSettingRepo) GetValue(key string) (string, error) {
	return f.values[key], nil
}

func (f *fakeSettingRepo) GetValueOrDefault(key, def string) (string, error) {
	if v := f.values[key]; v != "" {
		return v, nil
	}
	return def, nil
}

func (f *fakeSettingRepo) SetValue(key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeSettingRepo) GetAllByPrefix(prefix string) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range f.values {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}

// fakeStockLogRepo records appended run logs.
type fakeStockLogRepo struct {
	entries []models.StockLog
}

func (f *fakeStockLogRepo) Create(entry *models.StockLog) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeStockLogRepo) List(offset, limit int) ([]models.StockLog, error) {
	return f.entries, nil
}

func (f *fakeStockLogRepo) Count() (int64, error) {
	return int64(len(f.entries)), nil
}

// fakeFetcher returns a canned response.
type fakeFetcher struct {
	status int
	body   []byte
	err    error
	calls  int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ FeedConfig) (int, []byte, error) {
	f.calls++
	return f.status, f.body, f.err
}

// fakeNotifier records delivered change events.
type fakeNotifier struct {
	deliveries [][]ChangeEvent
	err        error
}

func (f *fakeNotifier) Send(_ context.Context, _ WebhookConfig, events []ChangeEvent) error {
	f.deliveries = append(f.deliveries, events)
	return f.err
}
