package controller

import (
	"vistratv-be/internal/dto"
	"vistratv-be/internal/pkg/serverutils"
	"vistratv-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAffiliateController interface {
	RegisterRoutes(r fiber.Router)
	Apply(ctx *fiber.Ctx) error
	Dashboard(ctx *fiber.Ctx) error
	Referrals(ctx *fiber.Ctx) error
}

type affiliateController struct {
	affiliateService service.IAffiliateService
}

func NewAffiliateController(affiliateService service.IAffiliateService) IAffiliateController {
	return &affiliateController{affiliateService: affiliateService}
}

func (c *affiliateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/affiliate")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/apply", c.Apply)
	h.Get("/dashboard", c.Dashboard)
	h.Get("/referrals", c.Referrals)
}

func (c *affiliateController) Apply(ctx *fiber.Ctx) error {
	var req dto.ApplyAffiliateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.affiliateService.Apply(ctx.Context(), currentUserId(ctx), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Affiliate application submitted", res))
}

func (c *affiliateController) Dashboard(ctx *fiber.Ctx) error {
	res, err := c.affiliateService.GetDashboard(ctx.Context(), currentUserId(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success affiliate dashboard", res))
}

func (c *affiliateController) Referrals(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.affiliateService.ListReferrals(ctx.Context(), currentUserId(ctx), page, limit)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list referrals", res))
}
