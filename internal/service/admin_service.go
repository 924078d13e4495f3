package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/entity"
	"vistratv-be/internal/pkg/logger"
	"vistratv-be/internal/repository/specification"
	"vistratv-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	GetUserGrowth(ctx context.Context) ([]*dto.UserGrowthStats, error)

	GetAllUsers(ctx context.Context, req *dto.AdminUserListRequest) (*dto.PaginatedResponse[*dto.UserListResponse], error)
	UpdateUserStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateUserStatusRequest) error

	GetTransactions(ctx context.Context, req *dto.AdminTransactionListRequest) (*dto.PaginatedResponse[*dto.TransactionResponse], error)
	GetWebhookLogs(ctx context.Context, page, limit int, provider string) (*dto.PaginatedResponse[*dto.WebhookLogResponse], error)

	ProcessSubscriptionChange(ctx context.Context, req *dto.ProcessSubscriptionChangeRequest) (*dto.ProcessSubscriptionChangeResponse, error)

	ProcessAffiliateAction(ctx context.Context, affiliateId uuid.UUID, req *dto.AdminAffiliateActionRequest) error
	GetAffiliates(ctx context.Context, page, limit int, status string) ([]*dto.AffiliateResponse, error)

	GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error)
	GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error)
}

type adminService struct {
	uowFactory          unitofwork.RepositoryFactory
	subscriptionService ISubscriptionService
	logger              logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	subscriptionService ISubscriptionService,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:          uowFactory,
		subscriptionService: subscriptionService,
		logger:              log,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	totalUsers, err := uow.UserRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	activeSubs, err := uow.SubscriptionRepository().CountActiveSubscribers(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := uow.PaymentRepository().SumCompletedAmount(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := uow.PaymentRepository().CountTransactions(ctx,
		specification.ByStatus{Status: string(entity.PaymentStatusPending)})
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		TotalUsers:          totalUsers,
		ActiveSubscriptions: activeSubs,
		TotalRevenue:        revenue,
		PendingPayments:     pending,
	}, nil
}

// GetUserGrowth buckets signups of the last 30 days by calendar day.
func (s *adminService) GetUserGrowth(ctx context.Context) ([]*dto.UserGrowthStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	since := time.Now().AddDate(0, 0, -30)
	users, err := uow.UserRepository().FindAll(ctx,
		specification.CreatedAfter{T: since},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, u := range users {
		counts[u.CreatedAt.Format("2006-01-02")]++
	}

	stats := make([]*dto.UserGrowthStats, 0, 30)
	for d := 0; d < 30; d++ {
		date := since.AddDate(0, 0, d+1).Format("2006-01-02")
		stats = append(stats, &dto.UserGrowthStats{Date: date, Count: counts[date]})
	}
	return stats, nil
}

func (s *adminService) GetAllUsers(ctx context.Context, req *dto.AdminUserListRequest) (*dto.PaginatedResponse[*dto.UserListResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page, limit := normalizePage(req.Page, req.Limit)

	filters := []specification.Specification{}
	if req.Search != "" {
		filters = append(filters, specification.SearchUsers{Term: req.Search})
	}
	if req.Role != "" {
		filters = append(filters, specification.FilterBy{Field: "role", Value: req.Role})
	}
	if req.Status != "" {
		filters = append(filters, specification.ByStatus{Status: req.Status})
	}

	total, err := uow.UserRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	users, err := uow.UserRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.UserListResponse, 0, len(users))
	for _, u := range users {
		items = append(items, &dto.UserListResponse{
			Id:        u.Id,
			Email:     u.Email,
			FullName:  u.FullName,
			Role:      string(u.Role),
			Status:    string(u.Status),
			CreatedAt: u.CreatedAt,
		})
	}

	return paginate(items, total, page, limit), nil
}

func (s *adminService) UpdateUserStatus(ctx context.Context, userId uuid.UUID, req *dto.UpdateUserStatusRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}

	user.Status = entity.UserStatus(req.Status)
	user.UpdatedAt = time.Now()
	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("AdminService", "User status updated", map[string]interface{}{
		"user_id": userId,
		"status":  req.Status,
		"reason":  req.Reason,
	})
	return nil
}

func (s *adminService) GetTransactions(ctx context.Context, req *dto.AdminTransactionListRequest) (*dto.PaginatedResponse[*dto.TransactionResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page, limit := normalizePage(req.Page, req.Limit)

	filters := []specification.Specification{}
	if req.Status != "" {
		filters = append(filters, specification.ByStatus{Status: req.Status})
	}
	if req.Provider != "" {
		filters = append(filters, specification.ByProvider{Provider: req.Provider})
	}
	if req.Email != "" {
		filters = append(filters, specification.ByEmail{Email: req.Email})
	}

	total, err := uow.PaymentRepository().CountTransactions(ctx, filters...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	txs, err := uow.PaymentRepository().FindAllTransactions(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, &dto.TransactionResponse{
			Id:                   tx.Id,
			GatewayTransactionId: tx.GatewayTransactionId,
			Provider:             string(tx.Provider),
			Email:                tx.Email,
			Amount:               tx.Amount,
			Currency:             tx.Currency,
			Status:               string(tx.Status),
			CreatedAt:            tx.CreatedAt,
		})
	}

	return paginate(items, total, page, limit), nil
}

func (s *adminService) GetWebhookLogs(ctx context.Context, page, limit int, provider string) (*dto.PaginatedResponse[*dto.WebhookLogResponse], error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page, limit = normalizePage(page, limit)

	filters := []specification.Specification{}
	if provider != "" {
		filters = append(filters, specification.ByProvider{Provider: provider})
	}

	total, err := uow.WebhookLogRepository().Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	logs, err := uow.WebhookLogRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.WebhookLogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, &dto.WebhookLogResponse{
			Id:            l.Id,
			Provider:      string(l.Provider),
			EventStatus:   l.EventStatus,
			TransactionId: l.TransactionId,
			Status:        string(l.Status),
			ResponseNote:  l.Response,
			SourceIP:      l.SourceIP,
			CreatedAt:     l.CreatedAt,
		})
	}

	return paginate(items, total, page, limit), nil
}

// ProcessSubscriptionChange moves a user onto another plan from the back
// office, through the same proration path the self-service switch uses.
// Force applies the change even when a balance would normally be owed.
func (s *adminService) ProcessSubscriptionChange(ctx context.Context, req *dto.ProcessSubscriptionChangeRequest) (*dto.ProcessSubscriptionChangeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindActiveByUser(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, ErrNoActiveSubscription
	}

	result, err := s.subscriptionService.SwitchPlanForSubscription(ctx, sub, req.NewPlanId, req.Force)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AdminService", "Subscription change processed", map[string]interface{}{
		"user_id":     req.UserId,
		"new_plan_id": req.NewPlanId,
		"applied":     result.Applied,
		"amount_due":  result.AmountDue,
		"force":       req.Force,
	})

	return &dto.ProcessSubscriptionChangeResponse{
		Applied:       result.Applied,
		AmountDue:     result.AmountDue,
		Credit:        result.Credit,
		RemainingDays: result.RemainingDays,
	}, nil
}

func (s *adminService) ProcessAffiliateAction(ctx context.Context, affiliateId uuid.UUID, req *dto.AdminAffiliateActionRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	affiliate, err := uow.AffiliateRepository().FindOne(ctx, specification.ByID{ID: affiliateId})
	if err != nil {
		return err
	}
	if affiliate == nil {
		return errors.New("affiliate not found")
	}

	switch req.Action {
	case "approve":
		affiliate.Status = entity.AffiliateStatusActive
	case "reject":
		affiliate.Status = entity.AffiliateStatusRejected
	case "suspend":
		affiliate.Status = entity.AffiliateStatusSuspended
	default:
		return fmt.Errorf("unknown affiliate action: %s", req.Action)
	}
	affiliate.UpdatedAt = time.Now()

	if err := uow.AffiliateRepository().Update(ctx, affiliate); err != nil {
		return err
	}

	s.logger.Info("AdminService", "Affiliate status changed", map[string]interface{}{
		"affiliate_id": affiliateId,
		"action":       req.Action,
	})
	return nil
}

func (s *adminService) GetAffiliates(ctx context.Context, page, limit int, status string) ([]*dto.AffiliateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	page, limit = normalizePage(page, limit)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	affiliates, err := uow.AffiliateRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AffiliateResponse, 0, len(affiliates))
	for _, a := range affiliates {
		res = append(res, toAffiliateResponse(a))
	}
	return res, nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, page, limit int, level string) ([]*dto.LogListResponse, error) {
	page, limit = normalizePage(page, limit)

	entries, err := s.logger.GetLogs(level, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.LogListResponse, 0, len(entries))
	for _, e := range entries {
		createdAt, _ := time.Parse(time.RFC3339, e.Timestamp)
		res = append(res, &dto.LogListResponse{
			Id:        e.Id,
			Level:     e.Level,
			Module:    e.Module,
			Message:   e.Message,
			CreatedAt: createdAt,
		})
	}
	return res, nil
}

func (s *adminService) GetLogDetail(ctx context.Context, logId string) (*dto.LogDetailResponse, error) {
	entry, err := s.logger.GetLogById(logId)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errors.New("log entry not found")
	}

	createdAt, _ := time.Parse(time.RFC3339, entry.Timestamp)
	return &dto.LogDetailResponse{
		LogListResponse: dto.LogListResponse{
			Id:        entry.Id,
			Level:     entry.Level,
			Module:    entry.Module,
			Message:   entry.Message,
			CreatedAt: createdAt,
		},
		Details: entry.Details,
	}, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func paginate[T any](items []T, total int64, page, limit int) *dto.PaginatedResponse[T] {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &dto.PaginatedResponse[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
