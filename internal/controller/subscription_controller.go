package controller

import (
	"errors"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/pkg/serverutils"
	"vistratv-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISubscriptionController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	SwitchPlan(ctx *fiber.Ctx) error
}

type subscriptionController struct {
	subscriptionService service.ISubscriptionService
}

func NewSubscriptionController(subscriptionService service.ISubscriptionService) ISubscriptionController {
	return &subscriptionController{subscriptionService: subscriptionService}
}

func (c *subscriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/subscription")
	h.Use(serverutils.JwtMiddleware)
	h.Get("/status", c.Status)
	h.Get("/validate", c.Validate)
	h.Post("/cancel", c.Cancel)
	h.Post("/switch-plan", c.SwitchPlan)
}

func currentUserId(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

func (c *subscriptionController) Status(ctx *fiber.Ctx) error {
	res, err := c.subscriptionService.GetStatus(ctx.Context(), currentUserId(ctx))
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSubscription) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success subscription status", res))
}

func (c *subscriptionController) Validate(ctx *fiber.Ctx) error {
	res, err := c.subscriptionService.Validate(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success validate subscription", res))
}

func (c *subscriptionController) Cancel(ctx *fiber.Ctx) error {
	var req dto.CancelSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := c.subscriptionService.Cancel(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSubscription) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Subscription cancelled", nil))
}

func (c *subscriptionController) SwitchPlan(ctx *fiber.Ctx) error {
	var req dto.SwitchPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.subscriptionService.SwitchPlan(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveSubscription) {
			return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan switch processed", res))
}
