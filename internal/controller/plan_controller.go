package controller

import (
	"vistratv-be/internal/pkg/serverutils"
	"vistratv-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type planController struct {
	planService service.IPlanService
}

func NewPlanController(planService service.IPlanService) IPlanController {
	return &planController{planService: planService}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/plans")
	h.Get("", c.List)
	h.Get("/:slug", c.Show)
}

func (c *planController) List(ctx *fiber.Ctx) error {
	res, err := c.planService.GetActivePlans(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list plans", res))
}

func (c *planController) Show(ctx *fiber.Ctx) error {
	res, err := c.planService.GetPlanBySlug(ctx.Context(), ctx.Params("slug"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show plan", res))
}
