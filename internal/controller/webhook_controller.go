package controller

import (
	"errors"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/pkg/serverutils"
	"vistratv-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWebhookController interface {
	RegisterRoutes(r fiber.Router)
	Paygate(ctx *fiber.Ctx) error
	Midtrans(ctx *fiber.Ctx) error
}

type webhookController struct {
	webhookService service.IWebhookService
}

func NewWebhookController(webhookService service.IWebhookService) IWebhookController {
	return &webhookController{webhookService: webhookService}
}

func (c *webhookController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment")
	// Some gateways probe the callback URL with GET before the first
	// real delivery, so both verbs land on the same handler.
	h.Post("/paygate/webhook", c.Paygate)
	h.Get("/paygate/webhook", c.Paygate)
	h.Post("/midtrans/notification", c.Midtrans)
}

func (c *webhookController) Paygate(ctx *fiber.Ctx) error {
	signature := firstHeader(ctx, "x-paygate-signature", "x-webhook-signature", "x-signature")

	ack, err := c.webhookService.HandlePaygate(ctx.Context(), ctx.Body(), signature, ctx.IP())
	if err != nil {
		return webhookError(ctx, err)
	}
	return ctx.JSON(ack)
}

func (c *webhookController) Midtrans(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Malformed payload"))
	}

	ack, err := c.webhookService.HandleMidtrans(ctx.Context(), &req, ctx.IP())
	if err != nil {
		return webhookError(ctx, err)
	}
	return ctx.JSON(ack)
}

func firstHeader(ctx *fiber.Ctx, names ...string) string {
	for _, name := range names {
		if v := ctx.Get(name); v != "" {
			return v
		}
	}
	return ""
}

func webhookError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidSignature):
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid signature"))
	case errors.Is(err, service.ErrMalformedPayload):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Malformed payload"))
	case errors.Is(err, service.ErrUnknownTransaction):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Unknown transaction"))
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, "Internal error"))
}
