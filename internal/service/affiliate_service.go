package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/entity"
	"vistratv-be/internal/pkg/logger"
	"vistratv-be/internal/repository/specification"
	"vistratv-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const defaultCommissionRate = 10.0

type IAffiliateService interface {
	Apply(ctx context.Context, userId uuid.UUID, req *dto.ApplyAffiliateRequest) (*dto.AffiliateResponse, error)
	GetDashboard(ctx context.Context, userId uuid.UUID) (*dto.AffiliateResponse, error)
	ListReferrals(ctx context.Context, userId uuid.UUID, page, limit int) ([]*dto.ReferralResponse, error)
}

type affiliateService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAffiliateService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IAffiliateService {
	return &affiliateService{uowFactory: uowFactory, logger: log}
}

// Apply enrolls the user into the affiliate program in pending state. An
// admin flips it to active before the code starts paying out.
func (s *affiliateService) Apply(ctx context.Context, userId uuid.UUID, req *dto.ApplyAffiliateRequest) (*dto.AffiliateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.AffiliateRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("affiliate application already exists")
	}

	code, err := generateAffiliateCode()
	if err != nil {
		return nil, err
	}

	affiliate := &entity.Affiliate{
		Id:             uuid.New(),
		UserId:         userId,
		Code:           code,
		PayoutEmail:    req.PayoutEmail,
		Website:        req.Website,
		CommissionRate: defaultCommissionRate,
		Status:         entity.AffiliateStatusPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := uow.AffiliateRepository().Create(ctx, affiliate); err != nil {
		return nil, err
	}

	s.logger.Info("AffiliateService", "Affiliate application received", map[string]interface{}{
		"user_id": userId,
		"code":    code,
	})
	return toAffiliateResponse(affiliate), nil
}

func (s *affiliateService) GetDashboard(ctx context.Context, userId uuid.UUID) (*dto.AffiliateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	affiliate, err := uow.AffiliateRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, errors.New("not an affiliate")
	}
	return toAffiliateResponse(affiliate), nil
}

func (s *affiliateService) ListReferrals(ctx context.Context, userId uuid.UUID, page, limit int) ([]*dto.ReferralResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	affiliate, err := uow.AffiliateRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if affiliate == nil {
		return nil, errors.New("not an affiliate")
	}

	page, limit = normalizePage(page, limit)
	referrals, err := uow.AffiliateRepository().FindReferrals(ctx,
		specification.FilterBy{Field: "affiliate_id", Value: affiliate.Id},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.ReferralResponse, 0, len(referrals))
	for _, r := range referrals {
		res = append(res, &dto.ReferralResponse{
			Id:            r.Id,
			TransactionId: r.TransactionId.String(),
			Amount:        r.Amount,
			Commission:    r.Commission,
			CreatedAt:     r.CreatedAt,
		})
	}
	return res, nil
}

func toAffiliateResponse(a *entity.Affiliate) *dto.AffiliateResponse {
	return &dto.AffiliateResponse{
		Id:              a.Id,
		Code:            a.Code,
		Status:          string(a.Status),
		CommissionRate:  a.CommissionRate,
		TotalReferrals:  a.TotalReferrals,
		TotalEarnings:   a.TotalEarnings,
		PendingEarnings: a.PendingEarnings,
		PaidEarnings:    a.PaidEarnings,
	}
}

const affiliateCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateAffiliateCode() (string, error) {
	buf := make([]byte, 8)
	for i := range buf {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(affiliateCodeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to generate affiliate code: %w", err)
		}
		buf[i] = affiliateCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
