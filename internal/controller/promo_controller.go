package controller

import (
	"vistratv-be/internal/dto"
	"vistratv-be/internal/pkg/serverutils"
	"vistratv-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPromoController interface {
	RegisterRoutes(r fiber.Router)
	Validate(ctx *fiber.Ctx) error
}

type promoController struct {
	promoService service.IPromoService
}

func NewPromoController(promoService service.IPromoService) IPromoController {
	return &promoController{promoService: promoService}
}

func (c *promoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/promo")
	h.Use(serverutils.OptionalJwtMiddleware)
	h.Post("/validate", c.Validate)
}

// Validate never errors on a bad code; the response carries the verdict
// so the checkout page can show it inline.
func (c *promoController) Validate(ctx *fiber.Ctx) error {
	var req dto.ValidatePromoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.promoService.Validate(ctx.Context(), &req, optionalUserId(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Promo code checked", res))
}
