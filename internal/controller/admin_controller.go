package controller

import (
	"vistratv-be/internal/dto"
	"vistratv-be/internal/pkg/serverutils"
	"vistratv-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	adminService service.IAdminService
	authService  service.IAuthService
	planService  service.IPlanService
	promoService service.IPromoService
}

func NewAdminController(
	adminService service.IAdminService,
	authService service.IAuthService,
	planService service.IPlanService,
	promoService service.IPromoService,
) IAdminController {
	return &adminController{
		adminService: adminService,
		authService:  authService,
		planService:  planService,
		promoService: promoService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")

	// Public Admin Route (Login)
	h.Post("/login", c.Login)

	// Protected Routes
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.AdminMiddleware)

	// Dashboard
	h.Get("/dashboard", c.GetDashboardStats)
	h.Get("/growth", c.GetUserGrowth)

	// Users
	h.Get("/users", c.GetAllUsers)
	h.Put("/users/:id/status", c.UpdateUserStatus)

	// Payments
	h.Get("/transactions", c.GetTransactions)
	h.Get("/webhook-logs", c.GetWebhookLogs)

	// Subscription Actions
	h.Post("/subscriptions/change", c.ProcessSubscriptionChange)

	// Plan Management
	h.Post("/plans", c.CreatePlan)
	h.Put("/plans/:id", c.UpdatePlan)
	h.Delete("/plans/:id", c.DeactivatePlan)

	// Promo Management
	h.Get("/promos", c.ListPromos)
	h.Post("/promos", c.CreatePromo)
	h.Delete("/promos/:id", c.DeactivatePromo)

	// Affiliate Management
	h.Get("/affiliates", c.GetAffiliates)
	h.Put("/affiliates/:id", c.ProcessAffiliateAction)

	// Logs
	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogDetail)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.LoginAdmin(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *adminController) GetDashboardStats(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetDashboardStats(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success dashboard stats", res))
}

func (c *adminController) GetUserGrowth(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetUserGrowth(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success user growth", res))
}

func (c *adminController) GetAllUsers(ctx *fiber.Ctx) error {
	var req dto.AdminUserListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.adminService.GetAllUsers(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *adminController) UpdateUserStatus(ctx *fiber.Ctx) error {
	userId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user id"))
	}

	var req dto.UpdateUserStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.UpdateUserStatus(ctx.Context(), userId, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User status updated", nil))
}

func (c *adminController) GetTransactions(ctx *fiber.Ctx) error {
	var req dto.AdminTransactionListRequest
	if err := ctx.QueryParser(&req); err != nil {
		return err
	}

	res, err := c.adminService.GetTransactions(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list transactions", res))
}

func (c *adminController) GetWebhookLogs(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	provider := ctx.Query("provider")

	res, err := c.adminService.GetWebhookLogs(ctx.Context(), page, limit, provider)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list webhook logs", res))
}

func (c *adminController) ProcessSubscriptionChange(ctx *fiber.Ctx) error {
	var req dto.ProcessSubscriptionChangeRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.adminService.ProcessSubscriptionChange(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription change processed", res))
}

func (c *adminController) CreatePlan(ctx *fiber.Ctx) error {
	var req dto.CreatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.planService.CreatePlan(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan created", res))
}

func (c *adminController) UpdatePlan(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid plan id"))
	}

	var req dto.UpdatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.planService.UpdatePlan(ctx.Context(), id, &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan updated", res))
}

func (c *adminController) DeactivatePlan(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid plan id"))
	}

	if err := c.planService.DeactivatePlan(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Plan deactivated", nil))
}

func (c *adminController) ListPromos(ctx *fiber.Ctx) error {
	res, err := c.promoService.List(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list promos", res))
}

func (c *adminController) CreatePromo(ctx *fiber.Ctx) error {
	var req dto.CreatePromoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.promoService.Create(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Promo created", res))
}

func (c *adminController) DeactivatePromo(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid promo id"))
	}

	if err := c.promoService.Deactivate(ctx.Context(), id); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Promo deactivated", nil))
}

func (c *adminController) GetAffiliates(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)
	status := ctx.Query("status")

	res, err := c.adminService.GetAffiliates(ctx.Context(), page, limit, status)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list affiliates", res))
}

func (c *adminController) ProcessAffiliateAction(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid affiliate id"))
	}

	var req dto.AdminAffiliateActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.ProcessAffiliateAction(ctx.Context(), id, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Affiliate updated", nil))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 50)
	level := ctx.Query("level")

	res, err := c.adminService.GetSystemLogs(ctx.Context(), page, limit, level)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list logs", res))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetLogDetail(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success log detail", res))
}
