package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/together-as-one/internal/pkg/utils"
	"github.com/together-as-one/internal/usecase"
	"github.com/together-as-one/internal/usecase/dto"
)

// RegistrationHandler - формы "поделиться скважиной" и подписки на новости
type RegistrationHandler struct {
	registrationUC *usecase.RegistrationUseCase
	subscriptionUC *usecase.SubscriptionUseCase
	logger         *zap.Logger
}

func NewRegistrationHandler(
	registrationUC *usecase.RegistrationUseCase,
	subscriptionUC *usecase.SubscriptionUseCase,
	logger *zap.Logger,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrationUC: registrationUC,
		subscriptionUC: subscriptionUC,
		logger:         logger,
	}
}

// Register godoc
// @Summary Share a borehole or tank
// @Description Queues the registration; it is listed once the worker stores it
// @Tags Registrations
// @Accept json
// @Produce json
// @Param request body dto.RegistrationRequest true "Water point details"
// @Success 202 {object} utils.SuccessResponse{data=dto.RegistrationResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 "Registration queue not configured"
// @Router /api/v1/registrations [post]
func (h *RegistrationHandler) Register(c *fiber.Ctx) error {
	if h.registrationUC == nil {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	var req dto.RegistrationRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.registrationUC.Submit(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, result, nil)
}

// Subscribe godoc
// @Summary Subscribe to outage updates
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Param request body dto.SubscriptionRequest true "Contact details"
// @Success 201 {object} utils.SuccessResponse{data=dto.SubscriptionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/subscriptions [post]
func (h *RegistrationHandler) Subscribe(c *fiber.Ctx) error {
	if h.subscriptionUC == nil {
		return c.SendStatus(fiber.StatusNotImplemented)
	}

	var req dto.SubscriptionRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.subscriptionUC.Subscribe(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusCreated)
	return utils.SendSuccess(c, result, nil)
}
