package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/pkg/errors"
	"github.com/together-as-one/internal/pkg/utils"
	"github.com/together-as-one/internal/pkg/validator"
	"github.com/together-as-one/internal/usecase"
	"github.com/together-as-one/internal/usecase/dto"
)

// WaterPointHandler - обработчик поиска точек водоснабжения
type WaterPointHandler struct {
	waterPointUC *usecase.WaterPointUseCase
	logger       *zap.Logger
}

// NewWaterPointHandler - создание нового WaterPointHandler
func NewWaterPointHandler(waterPointUC *usecase.WaterPointUseCase, logger *zap.Logger) *WaterPointHandler {
	return &WaterPointHandler{
		waterPointUC: waterPointUC,
		logger:       logger,
	}
}

// Find godoc
// @Summary Find water points
// @Description Filters, ranks by distance and paginates water points for one request
// @Tags WaterPoints
// @Produce json
// @Param lat query number false "Detected latitude"
// @Param lng query number false "Detected longitude"
// @Param custom_lat query number false "Map-picked latitude, takes precedence"
// @Param custom_lng query number false "Map-picked longitude"
// @Param max_distance query int false "1..10 km, 10 means unlimited" default(10)
// @Param available_now query bool false "Only points open right now"
// @Param area query string false "Area"
// @Param sub_area query string false "Sub-area"
// @Param days query string false "Comma separated weekdays, 0 = Sunday"
// @Param time_slot query string false "morning, afternoon or evening"
// @Param q query string false "Search text"
// @Param page query int false "Page number" default(1)
// @Param viewport_width query int false "Client width in px, drives the page size"
// @Param geolocation_error query string false "permission_denied, position_unavailable, timeout or unsupported"
// @Success 200 {object} utils.SuccessResponse{data=dto.FindWaterPointsResponse}
// @Failure 400 {object} utils.ErrorResponse "INVALID_COORDINATES, INVALID_FILTER or INVALID_PAGE"
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/water-points [get]
func (h *WaterPointHandler) Find(c *fiber.Ctx) error {
	start := time.Now()

	var req dto.FindWaterPointsRequest
	var err error
	if req.Lat, err = queryFloat(c, "lat"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Lng, err = queryFloat(c, "lng"); err != nil {
		return utils.SendError(c, err)
	}
	if req.CustomLat, err = queryFloat(c, "custom_lat"); err != nil {
		return utils.SendError(c, err)
	}
	if req.CustomLng, err = queryFloat(c, "custom_lng"); err != nil {
		return utils.SendError(c, err)
	}
	if req.Days, err = queryDays(c, "days"); err != nil {
		return utils.SendError(c, err)
	}
	if req.MaxDistance, err = queryInt(c, "max_distance", 0, errors.ErrInvalidFilter); err != nil {
		return utils.SendError(c, err)
	}
	req.AvailableNow = c.QueryBool("available_now", false)
	req.Area = c.Query("area")
	req.SubArea = c.Query("sub_area")
	req.TimeSlot = c.Query("time_slot")
	req.Query = c.Query("q")
	if req.Page, err = queryInt(c, "page", 1, errors.ErrInvalidPage); err != nil {
		return utils.SendError(c, err)
	}
	if req.ViewportWidth, err = queryInt(c, "viewport_width", 0, errors.ErrInvalidRequest); err != nil {
		return utils.SendError(c, err)
	}
	req.GeolocationError = c.Query("geolocation_error")

	// Валидация
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.waterPointUC.Find(c.Context(), req)
	if err != nil {
		h.logger.Warn("Water point search failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:        result.Total,
		Page:         result.Page,
		TotalPages:   result.TotalPages,
		ItemsPerPage: result.ItemsPerPage,
		Empty:        boolPtr(result.Empty),
		TimeMSec:     float64(time.Since(start).Microseconds()) / 1000,
	})
}

// GetByID godoc
// @Summary Get a water point
// @Tags WaterPoints
// @Produce json
// @Param id path string true "Water point ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.WaterPointResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/water-points/{id} [get]
func (h *WaterPointHandler) GetByID(c *fiber.Ctx) error {
	result, err := h.waterPointUC.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// ListAreas godoc
// @Summary List areas and sub-areas
// @Description Distinct areas with their sub-areas, for the filter dropdowns
// @Tags WaterPoints
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.AreaDTO}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/areas [get]
func (h *WaterPointHandler) ListAreas(c *fiber.Ctx) error {
	areas, err := h.waterPointUC.ListAreas(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, areas, &utils.Meta{Total: len(areas)})
}
