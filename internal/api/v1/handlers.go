package apiv1

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vpsdeals/vpsdeals/app/models"
	"github.com/vpsdeals/vpsdeals/app/repository"
	"github.com/vpsdeals/vpsdeals/internal/pkg/database"
	"github.com/vpsdeals/vpsdeals/internal/pkg/stocksync"
)

// APIServer holds the handler dependencies for the v1 JSON API
type APIServer struct {
	repos *repository.Repositories
	sync  *stocksync.Service
}

// NewAPIServer creates a new API server instance
func NewAPIServer(repos *repository.Repositories) *APIServer {
	return &APIServer{
		repos: repos,
		sync:  stocksync.NewService(repos),
	}
}

// GetHealth reports service and database health
func (s *APIServer) GetHealth(c *fiber.Ctx) error {
	dbState := "ok"
	code := 0
	db := database.GetDB()
	if db == nil {
		dbState = "error"
		code = fiber.StatusInternalServerError
	} else if sqlDB, err := db.DB(); err != nil || sqlDB.Ping() != nil {
		dbState = "error"
		code = fiber.StatusInternalServerError
	}

	status := "ok"
	httpStatus := fiber.StatusOK
	if code != 0 {
		status = "degraded"
		httpStatus = fiber.StatusInternalServerError
	}
	return c.Status(httpStatus).JSON(fiber.Map{
		"code": code,
		"data": fiber.Map{"status": status, "db": dbState},
	})
}

// GetVendors lists all vendors ordered by name
func (s *APIServer) GetVendors(c *fiber.Ctx) error {
	vendors, err := s.repos.Vendor.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load vendors"})
	}
	return c.JSON(fiber.Map{"code": 0, "data": vendors})
}

// GetPlans lists plans with the storefront filters and pagination
func (s *APIServer) GetPlans(c *fiber.Ctx) error {
	filter := repository.PlanFilter{
		Query:    strings.TrimSpace(c.Query("q")),
		Billing:  strings.TrimSpace(c.Query("billing")),
		Stock:    strings.TrimSpace(c.Query("stock")),
		Location: strings.TrimSpace(c.Query("location")),
	}
	if v, err := strconv.Atoi(c.Query("vendor", "0")); err == nil && v > 0 {
		filter.VendorID = uint(v)
	}
	if v, err := strconv.ParseFloat(c.Query("min_price", "0"), 64); err == nil && v > 0 {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price", "0"), 64); err == nil && v > 0 {
		filter.MaxPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("min_cpu", "0"), 64); err == nil && v > 0 {
		filter.MinCPUCores = v
	}
	if v, err := strconv.ParseFloat(c.Query("min_ram_gb", "0"), 64); err == nil && v > 0 {
		filter.MinRAMMB = int(v * 1024)
	}
	if v, err := strconv.Atoi(c.Query("min_storage_gb", "0")); err == nil && v > 0 {
		filter.MinStorageGB = v
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("page_size", "20"))
	if err != nil || pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	total, err := s.repos.Plan.Count(filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to count plans"})
	}
	plans, err := s.repos.Plan.List(filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load plans"})
	}

	return c.JSON(fiber.Map{
		"code": 0,
		"data": fiber.Map{
			"items": plans,
			"pagination": fiber.Map{
				"page":      page,
				"page_size": pageSize,
				"total":     total,
			},
		},
	})
}

// stockSyncRequest is the admin trigger payload; absent fields fall back
// to the stock_dry_run_default / stock_limit_default settings
type stockSyncRequest struct {
	DryRun *bool `json:"dry_run"`
	Limit  *int  `json:"limit"`
}

// PostStockSync runs one reconciliation synchronously and returns its
// result. Config errors surface as 400, feed failures as 500, an already
// running sync as 409.
func (s *APIServer) PostStockSync(c *fiber.Ctx) error {
	opts, err := stocksync.LoadRunDefaults(s.repos.Setting)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to read sync defaults"})
	}

	var req stockSyncRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
		}
	}
	if req.DryRun != nil {
		opts.DryRun = *req.DryRun
	}
	if req.Limit != nil && *req.Limit >= 0 {
		opts.Limit = *req.Limit
	}

	res := s.sync.Run(c.Context(), opts)
	httpStatus := fiber.StatusOK
	switch res.Code {
	case stocksync.CodeConfig:
		httpStatus = fiber.StatusBadRequest
	case stocksync.CodeConflict:
		httpStatus = fiber.StatusConflict
	case stocksync.CodeFeed:
		httpStatus = fiber.StatusInternalServerError
	}
	return c.Status(httpStatus).JSON(res)
}

// GetStockLogs lists reconciliation run history, newest first
func (s *APIServer) GetStockLogs(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.Query("page_size", "20"))
	if err != nil || pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	total, err := s.repos.StockLog.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to count sync logs"})
	}
	logs, err := s.repos.StockLog.List((page-1)*pageSize, pageSize)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load sync logs"})
	}

	return c.JSON(fiber.Map{
		"code": 0,
		"data": fiber.Map{
			"items": logs,
			"pagination": fiber.Map{
				"page":      page,
				"page_size": pageSize,
				"total":     total,
			},
		},
	})
}

// GetStockSettings returns the stock_* settings group
func (s *APIServer) GetStockSettings(c *fiber.Ctx) error {
	settings, err := s.repos.Setting.GetAllByPrefix("stock_")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load settings"})
	}
	return c.JSON(fiber.Map{"code": 0, "data": settings})
}

// PutStockSettings updates values in the stock_* settings group. Keys
// outside the group are rejected so this endpoint cannot touch unrelated
// configuration.
func (s *APIServer) PutStockSettings(c *fiber.Ctx) error {
	var payload map[string]string
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid JSON body"})
	}
	if len(payload) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "No settings given"})
	}
	for key := range payload {
		if !strings.HasPrefix(key, "stock_") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Unknown setting key: " + key})
		}
	}
	if mapJSON, ok := payload[models.SettingStockMap]; ok {
		if err := stocksync.ValidateFieldMapJSON(mapJSON); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
		}
	}
	for key, value := range payload {
		if err := s.repos.Setting.SetValue(key, value); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to save setting " + key})
		}
	}
	return c.JSON(fiber.Map{"code": 0, "data": fiber.Map{"saved": len(payload)}})
}
