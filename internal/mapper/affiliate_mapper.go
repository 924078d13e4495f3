package mapper

import (
	"vistratv-be/internal/entity"
	"vistratv-be/internal/model"
)

type AffiliateMapper struct{}

func NewAffiliateMapper() *AffiliateMapper {
	return &AffiliateMapper{}
}

func (m *AffiliateMapper) ToEntity(a *model.Affiliate) *entity.Affiliate {
	if a == nil {
		return nil
	}
	return &entity.Affiliate{
		Id:              a.Id,
		UserId:          a.UserId,
		Code:            a.Code,
		PayoutEmail:     a.PayoutEmail,
		Website:         a.Website,
		CommissionRate:  a.CommissionRate,
		Status:          entity.AffiliateStatus(a.Status),
		TotalReferrals:  a.TotalReferrals,
		TotalEarnings:   a.TotalEarnings,
		PendingEarnings: a.PendingEarnings,
		PaidEarnings:    a.PaidEarnings,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (m *AffiliateMapper) ToModel(a *entity.Affiliate) *model.Affiliate {
	if a == nil {
		return nil
	}
	return &model.Affiliate{
		Id:              a.Id,
		UserId:          a.UserId,
		Code:            a.Code,
		PayoutEmail:     a.PayoutEmail,
		Website:         a.Website,
		CommissionRate:  a.CommissionRate,
		Status:          string(a.Status),
		TotalReferrals:  a.TotalReferrals,
		TotalEarnings:   a.TotalEarnings,
		PendingEarnings: a.PendingEarnings,
		PaidEarnings:    a.PaidEarnings,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (m *AffiliateMapper) ReferralToEntity(r *model.AffiliateReferral) *entity.AffiliateReferral {
	if r == nil {
		return nil
	}
	return &entity.AffiliateReferral{
		Id:            r.Id,
		AffiliateId:   r.AffiliateId,
		TransactionId: r.TransactionId,
		Amount:        r.Amount,
		Commission:    r.Commission,
		Currency:      r.Currency,
		CreatedAt:     r.CreatedAt,
	}
}

func (m *AffiliateMapper) ReferralToModel(r *entity.AffiliateReferral) *model.AffiliateReferral {
	if r == nil {
		return nil
	}
	return &model.AffiliateReferral{
		Id:            r.Id,
		AffiliateId:   r.AffiliateId,
		TransactionId: r.TransactionId,
		Amount:        r.Amount,
		Commission:    r.Commission,
		Currency:      r.Currency,
		CreatedAt:     r.CreatedAt,
	}
}
