package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/pkg/errors"
	"github.com/together-as-one/internal/pkg/utils"
	"github.com/together-as-one/internal/pkg/validator"
	"github.com/together-as-one/internal/usecase"
	"github.com/together-as-one/internal/usecase/dto"
)

// SessionHandler exposes reactive finder sessions
type SessionHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

func NewSessionHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// parseBody decodes and validates a JSON body. An empty body leaves req untouched.
func parseBody(c *fiber.Ctx, req interface{}) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"body": "malformed JSON"})
		}
	}
	return validator.Validate(req)
}

func sessionMeta(s *dto.SessionResponse) *utils.Meta {
	return &utils.Meta{
		Total:        s.Total,
		Page:         s.Page,
		TotalPages:   s.TotalPages,
		ItemsPerPage: s.ItemsPerPage,
		Empty:        boolPtr(s.Empty),
	}
}

func (h *SessionHandler) respond(c *fiber.Ctx, s *dto.SessionResponse, err error) error {
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, s, sessionMeta(s))
}

// Create godoc
// @Summary Start a finder session
// @Description Creates a session whose results refresh whenever filters, search or location change
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest false "Viewport width and detected location"
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	s, err := h.sessionUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, s, sessionMeta(s))
}

// Get godoc
// @Summary Session snapshot
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param page query int false "Page to show; out of range pages are ignored"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	page, err := queryInt(c, "page", 0, errors.ErrInvalidPage)
	if err != nil {
		return utils.SendError(c, err)
	}
	s, err := h.sessionUC.Get(c.Context(), c.Params("id"), page)
	return h.respond(c, s, err)
}

// UpdateFilters godoc
// @Summary Change session filters
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.UpdateFiltersRequest true "Filter mutations"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/filters [patch]
func (h *SessionHandler) UpdateFilters(c *fiber.Ctx) error {
	var req dto.UpdateFiltersRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	s, err := h.sessionUC.UpdateFilters(c.Context(), c.Params("id"), req)
	return h.respond(c, s, err)
}

// SetSearch godoc
// @Summary Set search text
// @Description The text is applied after a short quiet period
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SearchRequest true "Search text"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/sessions/{id}/search [put]
func (h *SessionHandler) SetSearch(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	s, err := h.sessionUC.SetSearch(c.Context(), c.Params("id"), req)
	return h.respond(c, s, err)
}

// SetLocation godoc
// @Summary Report the detected location or why it is unavailable
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.LocationRequest true "Location or error reason"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/sessions/{id}/location [put]
func (h *SessionHandler) SetLocation(c *fiber.Ctx) error {
	var req dto.LocationRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	s, err := h.sessionUC.SetLocation(c.Context(), c.Params("id"), req)
	return h.respond(c, s, err)
}

// SetCustomLocation godoc
// @Summary Pick a location on the map
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.CoordinatesDTO true "Picked point"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/sessions/{id}/custom-location [put]
func (h *SessionHandler) SetCustomLocation(c *fiber.Ctx) error {
	var req dto.CoordinatesDTO
	if len(c.Body()) == 0 {
		return utils.SendError(c, errors.ErrInvalidCoordinates)
	}
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	s, err := h.sessionUC.SetCustomLocation(c.Context(), c.Params("id"), req)
	return h.respond(c, s, err)
}

// ClearCustomLocation godoc
// @Summary Forget the map-picked location
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/sessions/{id}/custom-location [delete]
func (h *SessionHandler) ClearCustomLocation(c *fiber.Ctx) error {
	s, err := h.sessionUC.ClearCustomLocation(c.Context(), c.Params("id"))
	return h.respond(c, s, err)
}

// SetViewport godoc
// @Summary Report the client width
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ViewportRequest true "Width in px"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/sessions/{id}/viewport [put]
func (h *SessionHandler) SetViewport(c *fiber.Ctx) error {
	var req dto.ViewportRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}
	s, err := h.sessionUC.SetViewport(c.Context(), c.Params("id"), req)
	return h.respond(c, s, err)
}

// Reset godoc
// @Summary Reset filters, search and custom location
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/sessions/{id}/reset [post]
func (h *SessionHandler) Reset(c *fiber.Ctx) error {
	s, err := h.sessionUC.Reset(c.Context(), c.Params("id"))
	return h.respond(c, s, err)
}

// Retry godoc
// @Summary Reload water points after a failure
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/sessions/{id}/retry [post]
func (h *SessionHandler) Retry(c *fiber.Ctx) error {
	s, err := h.sessionUC.Retry(c.Context(), c.Params("id"))
	return h.respond(c, s, err)
}

// Delete godoc
// @Summary Close a session
// @Tags Sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	if err := h.sessionUC.Delete(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
