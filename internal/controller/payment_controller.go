package controller

import (
	"vistratv-be/internal/dto"
	"vistratv-be/internal/pkg/serverutils"
	"vistratv-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
	OrderSummary(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	TransactionStatus(ctx *fiber.Ctx) error
}

type paymentController struct {
	paymentService service.IPaymentService
}

func NewPaymentController(paymentService service.IPaymentService) IPaymentController {
	return &paymentController{paymentService: paymentService}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/payment")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Post("/order-summary", c.OrderSummary)
	h.Post("/checkout", c.Checkout)
	h.Get("/status/:transactionId", c.TransactionStatus)
}

// optionalUserId reads the user id stashed by the JWT middleware when the
// caller is logged in. Anonymous checkout passes nil through.
func optionalUserId(ctx *fiber.Ctx) *uuid.UUID {
	userIdStr, ok := ctx.Locals("user_id").(string)
	if !ok {
		return nil
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil
	}
	return &userId
}

func (c *paymentController) OrderSummary(ctx *fiber.Ctx) error {
	var req dto.OrderSummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.paymentService.GetOrderSummary(ctx.Context(), &req, optionalUserId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success order summary", res))
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.paymentService.Checkout(ctx.Context(), optionalUserId(ctx), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout created", res))
}

func (c *paymentController) TransactionStatus(ctx *fiber.Ctx) error {
	res, err := c.paymentService.GetTransactionStatus(ctx.Context(), ctx.Params("transactionId"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success transaction status", res))
}
