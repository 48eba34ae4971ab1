package controller

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"call-metrics-service/internal/export"
	"call-metrics-service/internal/model"
	"call-metrics-service/internal/service"
)

type DashboardController interface {
	GetDashboard(c *fiber.Ctx) error
	GetRecords(c *fiber.Ctx) error
	ExportRecords(c *fiber.Ctx) error
	TriggerRefresh(c *fiber.Ctx) error
}

type dashboardController struct {
	dashboardService service.DashboardService
}

// NewDashboardController builds a DashboardController.
func NewDashboardController(svc service.DashboardService) DashboardController {
	return &dashboardController{dashboardService: svc}
}

// GetDashboard returns KPIs, trend, heatmap, outcome breakdown and the
// volume comparison over the filtered snapshot.
func (h *dashboardController) GetDashboard(c *fiber.Ctx) error {
	spec, err := h.buildFilter(c)
	if err != nil {
		return err
	}

	resp, svcErr := h.dashboardService.GetDashboard(c.Context(), spec)
	if svcErr != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to build dashboard")
	}

	return c.JSON(resp)
}

// GetRecords returns the filtered normalized records.
func (h *dashboardController) GetRecords(c *fiber.Ctx) error {
	spec, err := h.buildFilter(c)
	if err != nil {
		return err
	}

	resp, svcErr := h.dashboardService.GetRecords(c.Context(), spec)
	if svcErr != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch records")
	}

	return c.JSON(resp)
}

// ExportRecords streams the filtered records as a CSV attachment.
func (h *dashboardController) ExportRecords(c *fiber.Ctx) error {
	spec, err := h.buildFilter(c)
	if err != nil {
		return err
	}

	resp, svcErr := h.dashboardService.GetRecords(c.Context(), spec)
	if svcErr != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch records")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="call_records_%s.csv"`, time.Now().UTC().Format("20060102_150405")))

	if err := export.WriteRecords(c.Response().BodyWriter(), resp.Data); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to write csv")
	}
	return nil
}

// TriggerRefresh forces an immediate re-pull from the source.
func (h *dashboardController) TriggerRefresh(c *fiber.Ctx) error {
	result, err := h.dashboardService.Refresh(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "refresh failed: "+err.Error())
	}
	return c.JSON(result)
}

func (h *dashboardController) buildFilter(c *fiber.Ctx) (model.FilterSpec, error) {
	req := model.FilterRequest{
		From:    utils.Trim(c.Query("from"), ' '),
		To:      utils.Trim(c.Query("to"), ' '),
		Clinics: multiParam(c, "clinic"),
		Doctors: multiParam(c, "doctor"),
	}

	spec, err := h.dashboardService.BuildFilter(req)
	if err != nil {
		if _, ok := err.(*service.ValidationError); ok {
			return model.FilterSpec{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return model.FilterSpec{}, fiber.NewError(fiber.StatusInternalServerError, "failed to build filter")
	}
	return spec, nil
}

// multiParam accepts both repeated params (?clinic=a&clinic=b) and
// comma-separated lists (?clinic=a,b).
func multiParam(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, part := range strings.Split(string(raw), ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
