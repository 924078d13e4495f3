package service

import (
	"context"

	"vistratv-be/internal/entity"
	"vistratv-be/internal/pkg/logger"
	"vistratv-be/internal/repository/contract"
	"vistratv-be/internal/repository/specification"
	"vistratv-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repository fakes backing the service tests. The FindOne
// matchers only understand the specifications the services actually use.

type fakeStore struct {
	users         []*entity.User
	plans         []*entity.SubscriptionPlan
	subscriptions []*entity.Subscription
	transactions  []*entity.PaymentTransaction
	webhookLogs   []*entity.WebhookLog
	promos        []*entity.PromoCode
	redemptions   []*entity.PromoRedemption
	affiliates    []*entity.Affiliate
	referrals     []*entity.AffiliateReferral

	begins  int
	commits int
}

type fakeUow struct{ store *fakeStore }

func (u *fakeUow) Begin(ctx context.Context) error { u.store.begins++; return nil }
func (u *fakeUow) Commit() error                   { u.store.commits++; return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository { return &fakeUserRepo{u.store} }
func (u *fakeUow) SubscriptionRepository() contract.SubscriptionRepository {
	return &fakeSubscriptionRepo{u.store}
}
func (u *fakeUow) PaymentRepository() contract.PaymentRepository { return &fakePaymentRepo{u.store} }
func (u *fakeUow) WebhookLogRepository() contract.WebhookLogRepository {
	return &fakeWebhookLogRepo{u.store}
}
func (u *fakeUow) PromoRepository() contract.PromoRepository { return &fakePromoRepo{u.store} }
func (u *fakeUow) AffiliateRepository() contract.AffiliateRepository {
	return &fakeAffiliateRepo{u.store}
}

type fakeFactory struct{ store *fakeStore }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

func newFakeFactory() (*fakeFactory, *fakeStore) {
	store := &fakeStore{}
	return &fakeFactory{store: store}, store
}

// nopLogger satisfies logger.ILogger without writing anywhere.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
func (nopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (nopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

// --- users ---

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.users = append(r.store.users, user)
	return nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.store.users {
		if matchUser(u, specs) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	users, _ := r.FindAll(ctx, specs...)
	return int64(len(users)), nil
}

func (r *fakeUserRepo) CreatePasswordResetToken(ctx context.Context, token *entity.PasswordResetToken) error {
	return nil
}

func (r *fakeUserRepo) FindPasswordResetToken(ctx context.Context, specs ...specification.Specification) (*entity.PasswordResetToken, error) {
	return nil, nil
}

func (r *fakeUserRepo) MarkResetTokenUsed(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeUserRepo) CreateProvider(ctx context.Context, provider *entity.UserProvider) error {
	return nil
}

func (r *fakeUserRepo) FindProvider(ctx context.Context, specs ...specification.Specification) (*entity.UserProvider, error) {
	return nil, nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if u.Id != v.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != v.Email {
				return false
			}
		}
	}
	return true
}

// --- subscriptions ---

type fakeSubscriptionRepo struct{ store *fakeStore }

func (r *fakeSubscriptionRepo) CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	r.store.plans = append(r.store.plans, plan)
	return nil
}

func (r *fakeSubscriptionRepo) UpdatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error {
	return nil
}

func (r *fakeSubscriptionRepo) DeletePlan(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakeSubscriptionRepo) FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error) {
	for _, p := range r.store.plans {
		if matchPlan(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error) {
	var out []*entity.SubscriptionPlan
	for _, p := range r.store.plans {
		if matchPlan(p, specs) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) CreateSubscription(ctx context.Context, subscription *entity.Subscription) error {
	r.store.subscriptions = append(r.store.subscriptions, subscription)
	return nil
}

func (r *fakeSubscriptionRepo) UpdateSubscription(ctx context.Context, subscription *entity.Subscription) error {
	for i, s := range r.store.subscriptions {
		if s.Id == subscription.Id {
			r.store.subscriptions[i] = subscription
			return nil
		}
	}
	return nil
}

func (r *fakeSubscriptionRepo) FindOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	for _, s := range r.store.subscriptions {
		if matchSubscription(s, specs) {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindAllSubscriptions(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	for _, s := range r.store.subscriptions {
		if matchSubscription(s, specs) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) FindActiveByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	for _, s := range r.store.subscriptions {
		if s.UserId != nil && *s.UserId == userId && s.Status == entity.SubscriptionStatusActive {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.Subscription, error) {
	for _, s := range r.store.subscriptions {
		if s.Email == email && s.Status == entity.SubscriptionStatusActive {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSubscriptionRepo) CountActiveSubscribers(ctx context.Context) (int64, error) {
	var n int64
	for _, s := range r.store.subscriptions {
		if s.Status == entity.SubscriptionStatusActive {
			n++
		}
	}
	return n, nil
}

func matchPlan(p *entity.SubscriptionPlan, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if p.Id != v.ID {
				return false
			}
		case specification.BySlug:
			if p.Slug != v.Slug {
				return false
			}
		case specification.ActiveOnly:
			if !p.IsActive {
				return false
			}
		}
	}
	return true
}

func matchSubscription(s *entity.Subscription, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if s.Id != v.ID {
				return false
			}
		case specification.ByEmail:
			if s.Email != v.Email {
				return false
			}
		}
	}
	return true
}

// --- payments ---

type fakePaymentRepo struct{ store *fakeStore }

func (r *fakePaymentRepo) CreateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error {
	r.store.transactions = append(r.store.transactions, tx)
	return nil
}

func (r *fakePaymentRepo) UpdateTransaction(ctx context.Context, tx *entity.PaymentTransaction) error {
	for i, t := range r.store.transactions {
		if t.Id == tx.Id {
			r.store.transactions[i] = tx
			return nil
		}
	}
	return nil
}

func (r *fakePaymentRepo) FindOneTransaction(ctx context.Context, specs ...specification.Specification) (*entity.PaymentTransaction, error) {
	for _, t := range r.store.transactions {
		if matchTransaction(t, specs) {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakePaymentRepo) FindAllTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.PaymentTransaction, error) {
	var out []*entity.PaymentTransaction
	for _, t := range r.store.transactions {
		if matchTransaction(t, specs) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) CountTransactions(ctx context.Context, specs ...specification.Specification) (int64, error) {
	txs, _ := r.FindAllTransactions(ctx, specs...)
	return int64(len(txs)), nil
}

func (r *fakePaymentRepo) SumCompletedAmount(ctx context.Context) (float64, error) {
	var sum float64
	for _, t := range r.store.transactions {
		if t.Status == entity.PaymentStatusCompleted {
			sum += t.Amount
		}
	}
	return sum, nil
}

func matchTransaction(t *entity.PaymentTransaction, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if t.Id != v.ID {
				return false
			}
		case specification.ByGatewayTransactionId:
			if t.GatewayTransactionId != v.TransactionId {
				return false
			}
		case specification.ByEmail:
			if t.Email != v.Email {
				return false
			}
		}
	}
	return true
}

// --- webhook logs ---

type fakeWebhookLogRepo struct{ store *fakeStore }

func (r *fakeWebhookLogRepo) CreateIfAbsent(ctx context.Context, log *entity.WebhookLog) (bool, *entity.WebhookLog, error) {
	for _, l := range r.store.webhookLogs {
		if l.Provider == log.Provider && l.TransactionId == log.TransactionId && l.EventStatus == log.EventStatus {
			return false, l, nil
		}
	}
	r.store.webhookLogs = append(r.store.webhookLogs, log)
	return true, log, nil
}

func (r *fakeWebhookLogRepo) Update(ctx context.Context, log *entity.WebhookLog) error {
	for i, l := range r.store.webhookLogs {
		if l.Id == log.Id {
			r.store.webhookLogs[i] = log
			return nil
		}
	}
	return nil
}

func (r *fakeWebhookLogRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.WebhookLog, error) {
	if len(r.store.webhookLogs) == 0 {
		return nil, nil
	}
	return r.store.webhookLogs[0], nil
}

func (r *fakeWebhookLogRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.WebhookLog, error) {
	return r.store.webhookLogs, nil
}

func (r *fakeWebhookLogRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.webhookLogs)), nil
}

// --- promos ---

type fakePromoRepo struct{ store *fakeStore }

func (r *fakePromoRepo) Create(ctx context.Context, promo *entity.PromoCode) error {
	r.store.promos = append(r.store.promos, promo)
	return nil
}

func (r *fakePromoRepo) Update(ctx context.Context, promo *entity.PromoCode) error { return nil }

func (r *fakePromoRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (r *fakePromoRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PromoCode, error) {
	for _, p := range r.store.promos {
		if matchPromo(p, specs) {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePromoRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.PromoCode, error) {
	return r.store.promos, nil
}

func (r *fakePromoRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	for _, p := range r.store.promos {
		if p.Id == id {
			p.CurrentUses++
			return nil
		}
	}
	return nil
}

func (r *fakePromoRepo) CreateRedemption(ctx context.Context, redemption *entity.PromoRedemption) error {
	r.store.redemptions = append(r.store.redemptions, redemption)
	return nil
}

func (r *fakePromoRepo) CountRedemptions(ctx context.Context, promoId uuid.UUID, userId *uuid.UUID, email string) (int64, error) {
	var n int64
	for _, red := range r.store.redemptions {
		if red.PromoCodeId != promoId {
			continue
		}
		if userId != nil && red.UserId != nil && *red.UserId == *userId {
			n++
			continue
		}
		if email != "" && red.Email == email {
			n++
		}
	}
	return n, nil
}

func matchPromo(p *entity.PromoCode, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if p.Id != v.ID {
				return false
			}
		case specification.ByCode:
			if p.Code != v.Code {
				return false
			}
		}
	}
	return true
}

// --- affiliates ---

type fakeAffiliateRepo struct{ store *fakeStore }

func (r *fakeAffiliateRepo) Create(ctx context.Context, affiliate *entity.Affiliate) error {
	r.store.affiliates = append(r.store.affiliates, affiliate)
	return nil
}

func (r *fakeAffiliateRepo) Update(ctx context.Context, affiliate *entity.Affiliate) error {
	return nil
}

func (r *fakeAffiliateRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Affiliate, error) {
	for _, a := range r.store.affiliates {
		if matchAffiliate(a, specs) {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAffiliateRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Affiliate, error) {
	return r.store.affiliates, nil
}

func (r *fakeAffiliateRepo) CreateReferral(ctx context.Context, referral *entity.AffiliateReferral) error {
	r.store.referrals = append(r.store.referrals, referral)
	return nil
}

func (r *fakeAffiliateRepo) FindReferrals(ctx context.Context, specs ...specification.Specification) ([]*entity.AffiliateReferral, error) {
	return r.store.referrals, nil
}

func (r *fakeAffiliateRepo) AccrueCommission(ctx context.Context, affiliateId uuid.UUID, commission float64) error {
	for _, a := range r.store.affiliates {
		if a.Id == affiliateId {
			a.TotalReferrals++
			a.TotalEarnings += commission
			a.PendingEarnings += commission
			return nil
		}
	}
	return nil
}

func matchAffiliate(a *entity.Affiliate, specs []specification.Specification) bool {
	for _, sp := range specs {
		switch v := sp.(type) {
		case specification.ByID:
			if a.Id != v.ID {
				return false
			}
		case specification.ByCode:
			if a.Code != v.Code {
				return false
			}
		case specification.UserOwnedBy:
			if a.UserId != v.UserID {
				return false
			}
		}
	}
	return true
}
