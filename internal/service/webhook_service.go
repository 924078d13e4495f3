package service

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/entity"
	"vistratv-be/internal/pkg/logger"
	"vistratv-be/internal/repository/specification"
	"vistratv-be/internal/repository/unitofwork"
	"vistratv-be/pkg/billing"
	"vistratv-be/pkg/events"
	pktNats "vistratv-be/pkg/nats"
	"vistratv-be/pkg/paygate"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MailTopicName is the watermill topic the mail worker consumes.
const MailTopicName = "SEND_MAIL"

type IWebhookService interface {
	HandlePaygate(ctx context.Context, rawBody []byte, signature, sourceIP string) (*dto.WebhookAck, error)
	HandleMidtrans(ctx context.Context, req *dto.MidtransWebhookRequest, sourceIP string) (*dto.WebhookAck, error)
}

// WebhookConfig carries the verification settings for inbound gateway
// events.
type WebhookConfig struct {
	PaygateSecret     string
	AllowUnsigned     bool
	MidtransServerKey string
	IsProduction      bool
}

type webhookService struct {
	uowFactory     unitofwork.RepositoryFactory
	cfg            WebhookConfig
	pubSub         *gochannel.GoChannel
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewWebhookService(
	uowFactory unitofwork.RepositoryFactory,
	cfg WebhookConfig,
	pubSub *gochannel.GoChannel,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IWebhookService {
	return &webhookService{
		uowFactory:     uowFactory,
		cfg:            cfg,
		pubSub:         pubSub,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

// HandlePaygate is the reconciliation entry point for the crypto gateway.
// Order matters: authenticate, parse, dedupe, look up, persist, fan out.
func (s *webhookService) HandlePaygate(ctx context.Context, rawBody []byte, signature, sourceIP string) (*dto.WebhookAck, error) {
	if err := s.verifyPaygateSignature(rawBody, signature, sourceIP); err != nil {
		return nil, err
	}

	req, err := parsePaygatePayload(rawBody)
	if err != nil {
		s.logger.Warn("WebhookService", "Rejected malformed webhook payload", map[string]interface{}{
			"source_ip": sourceIP,
			"error":     err.Error(),
		})
		return nil, ErrMalformedPayload
	}

	mapped, recognized := paygate.NormalizeStatus(req.Status)

	var payloadMap map[string]interface{}
	if json.Unmarshal(rawBody, &payloadMap) != nil {
		payloadMap = map[string]interface{}{
			"transaction_id": req.TransactionId,
			"status":         req.Status,
		}
	}

	return s.reconcile(ctx, entity.PaymentProviderPaygate, req.TransactionId, mapped, recognized, payloadMap, sourceIP)
}

func (s *webhookService) verifyPaygateSignature(rawBody []byte, signature, sourceIP string) error {
	if s.cfg.PaygateSecret == "" {
		if s.cfg.AllowUnsigned && !s.cfg.IsProduction {
			s.logger.Warn("WebhookService", "Accepting unsigned webhook: no secret configured", map[string]interface{}{
				"source_ip": sourceIP,
			})
			return nil
		}
		s.logger.Error("WebhookService", "Webhook rejected: no secret configured and unsigned delivery not allowed", map[string]interface{}{
			"source_ip": sourceIP,
		})
		return ErrInvalidSignature
	}

	if !paygate.VerifySignature(s.cfg.PaygateSecret, rawBody, signature) {
		s.logger.Warn("WebhookService", "Webhook signature mismatch", map[string]interface{}{
			"source_ip": sourceIP,
		})
		return ErrInvalidSignature
	}
	return nil
}

// parsePaygatePayload tries JSON first and falls back to URL-encoded
// form data, which the gateway uses for some event types.
func parsePaygatePayload(rawBody []byte) (*dto.PaygateWebhookRequest, error) {
	var req dto.PaygateWebhookRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		values, formErr := url.ParseQuery(string(rawBody))
		if formErr != nil {
			return nil, fmt.Errorf("body is neither JSON nor form encoded")
		}
		req.TransactionId = values.Get("transaction_id")
		req.Status = values.Get("status")
		req.Email = values.Get("email")
		if amount, err := strconv.ParseFloat(values.Get("amount"), 64); err == nil {
			req.Amount = amount
		}
		req.Currency = values.Get("currency")
	}

	if strings.TrimSpace(req.TransactionId) == "" {
		return nil, fmt.Errorf("missing transaction_id")
	}
	if strings.TrimSpace(req.Status) == "" {
		return nil, fmt.Errorf("missing status")
	}
	return &req, nil
}

// HandleMidtrans verifies the card gateway's SHA-512 signature and feeds
// the event into the same reconciliation pipeline.
func (s *webhookService) HandleMidtrans(ctx context.Context, req *dto.MidtransWebhookRequest, sourceIP string) (*dto.WebhookAck, error) {
	if s.cfg.MidtransServerKey == "" {
		s.logger.Error("WebhookService", "Midtrans webhook rejected: server key not configured", nil)
		return nil, ErrInvalidSignature
	}

	signatureInput := req.OrderId + req.StatusCode + req.GrossAmount + s.cfg.MidtransServerKey
	expected := fmt.Sprintf("%x", sha512.Sum512([]byte(signatureInput)))
	if subtle.ConstantTimeCompare([]byte(req.SignatureKey), []byte(expected)) != 1 {
		s.logger.Warn("WebhookService", "Midtrans signature mismatch", map[string]interface{}{
			"order_id":  req.OrderId,
			"source_ip": sourceIP,
		})
		return nil, ErrInvalidSignature
	}

	if strings.TrimSpace(req.OrderId) == "" || strings.TrimSpace(req.TransactionStatus) == "" {
		return nil, ErrMalformedPayload
	}

	mapped, recognized := mapMidtransStatus(req.TransactionStatus)

	payloadMap := map[string]interface{}{
		"transaction_status": req.TransactionStatus,
		"order_id":           req.OrderId,
		"fraud_status":       req.FraudStatus,
		"gross_amount":       req.GrossAmount,
	}

	return s.reconcile(ctx, entity.PaymentProviderMidtrans, req.OrderId, mapped, recognized, payloadMap, sourceIP)
}

func mapMidtransStatus(transactionStatus string) (string, bool) {
	switch transactionStatus {
	case "capture", "settlement":
		return "completed", true
	case "pending":
		return "pending", true
	case "deny", "cancel":
		return "cancelled", true
	case "expire":
		return "expired", true
	case "failure":
		return "failed", true
	}
	return transactionStatus, false
}

// reconcile merges one externally observed payment event into internal
// state exactly once. The audit insert doubles as the duplicate gate: a
// second delivery of the same (provider, transaction, status) hits the
// unique index and, when the first run finished, is acknowledged without
// touching anything. Rows left failed or received are retaken.
func (s *webhookService) reconcile(
	ctx context.Context,
	provider entity.PaymentProvider,
	transactionId, eventStatus string,
	recognized bool,
	payload map[string]interface{},
	sourceIP string,
) (*dto.WebhookAck, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	logRow := &entity.WebhookLog{
		Id:            uuid.New(),
		Provider:      provider,
		TransactionId: transactionId,
		EventStatus:   eventStatus,
		Status:        entity.WebhookStatusReceived,
		Payload:       payload,
		SourceIP:      sourceIP,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	created, existing, err := uow.WebhookLogRepository().CreateIfAbsent(ctx, logRow)
	if err != nil {
		return nil, err
	}
	if !created {
		// Only a processed row is a true duplicate. A failed or stalled
		// row means the earlier attempt never finished, so the gateway's
		// retry retakes it and runs the pipeline again.
		if existing.Status == entity.WebhookStatusProcessed {
			s.logger.Info("WebhookService", "Duplicate webhook delivery acknowledged", map[string]interface{}{
				"provider":       string(provider),
				"transaction_id": transactionId,
				"event_status":   eventStatus,
				"first_seen":     existing.CreatedAt,
			})
			return &dto.WebhookAck{Success: true, Status: eventStatus}, nil
		}

		s.logger.Info("WebhookService", "Retaking webhook delivery after incomplete attempt", map[string]interface{}{
			"provider":       string(provider),
			"transaction_id": transactionId,
			"event_status":   eventStatus,
			"prior_status":   string(existing.Status),
		})
		logRow = existing
		logRow.Status = entity.WebhookStatusReceived
		logRow.Payload = payload
		logRow.SourceIP = sourceIP
		logRow.UpdatedAt = time.Now()
		if err := uow.WebhookLogRepository().Update(ctx, logRow); err != nil {
			return nil, err
		}
	}

	tx, err := uow.PaymentRepository().FindOneTransaction(ctx, specification.ByGatewayTransactionId{TransactionId: transactionId})
	if err != nil {
		s.markLogFailed(ctx, uow, logRow, "database error: "+err.Error())
		return nil, err
	}
	if tx == nil {
		s.logger.Error("WebhookService", "Webhook references unknown transaction", map[string]interface{}{
			"provider":       string(provider),
			"transaction_id": transactionId,
			"source_ip":      sourceIP,
		})
		s.markLogFailed(ctx, uow, logRow, "transaction not found")
		return nil, ErrUnknownTransaction
	}

	firstCompleted := recognized && eventStatus == string(entity.PaymentStatusCompleted) &&
		!tx.Status.Terminal()

	if tx.GatewayResponse == nil {
		tx.GatewayResponse = make(map[string]interface{})
	}
	tx.GatewayResponse["last_webhook"] = payload
	tx.GatewayResponse["received_at"] = time.Now().Format(time.RFC3339)
	if !tx.Status.Terminal() {
		tx.Status = entity.PaymentStatus(eventStatus)
	}
	tx.UpdatedAt = time.Now()

	if err := uow.PaymentRepository().UpdateTransaction(ctx, tx); err != nil {
		s.markLogFailed(ctx, uow, logRow, "failed to update transaction: "+err.Error())
		return nil, err
	}

	if firstCompleted {
		s.fanOut(ctx, uow, tx)
	}

	logRow.Status = entity.WebhookStatusProcessed
	logRow.Response = fmt.Sprintf("status set to %s", eventStatus)
	logRow.UpdatedAt = time.Now()
	if err := uow.WebhookLogRepository().Update(ctx, logRow); err != nil {
		s.logger.Warn("WebhookService", "Failed to mark webhook log processed", map[string]interface{}{
			"log_id": logRow.Id,
			"error":  err.Error(),
		})
	}

	return &dto.WebhookAck{Success: true, Status: eventStatus}, nil
}

func (s *webhookService) markLogFailed(ctx context.Context, uow unitofwork.UnitOfWork, logRow *entity.WebhookLog, note string) {
	logRow.Status = entity.WebhookStatusFailed
	logRow.Response = note
	logRow.UpdatedAt = time.Now()
	if err := uow.WebhookLogRepository().Update(ctx, logRow); err != nil {
		s.logger.Warn("WebhookService", "Failed to mark webhook log failed", map[string]interface{}{
			"log_id": logRow.Id,
			"error":  err.Error(),
		})
	}
}

// fanOut runs the first-completion side effects. The branches are
// deliberately independent: a failure in one is logged and swallowed so
// the others, and the already persisted transaction status, stand.
func (s *webhookService) fanOut(ctx context.Context, uow unitofwork.UnitOfWork, tx *entity.PaymentTransaction) {
	if planIdStr := tx.MetaString(entity.MetaSubscriptionPlanId); planIdStr != "" {
		if tx.MetaString(entity.MetaChangeType) == "plan_switch" {
			s.applyPaidPlanSwitch(ctx, uow, tx)
		} else {
			s.createSubscription(ctx, uow, tx, planIdStr)
		}
	}

	if code := tx.MetaString(entity.MetaPromoCode); code != "" {
		s.redeemPromo(ctx, uow, tx, code)
	}

	if affiliateIdStr := tx.MetaString(entity.MetaAffiliateId); affiliateIdStr != "" {
		s.accrueCommission(ctx, uow, tx, affiliateIdStr)
	}

	if s.eventPublisher != nil {
		evt := events.New("PAYMENT_COMPLETED", map[string]interface{}{
			"transaction_id": tx.GatewayTransactionId,
			"email":          tx.Email,
			"amount":         tx.Amount,
			"currency":       tx.Currency,
			"provider":       string(tx.Provider),
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Warn("WebhookService", "Failed to publish payment event", map[string]interface{}{"error": err.Error()})
		}
	}
}

func (s *webhookService) createSubscription(ctx context.Context, uow unitofwork.UnitOfWork, tx *entity.PaymentTransaction, planIdStr string) {
	planId, err := uuid.Parse(planIdStr)
	if err != nil {
		s.logger.Error("WebhookService", "Invalid plan id in transaction metadata", map[string]interface{}{
			"transaction_id": tx.GatewayTransactionId,
			"plan_id":        planIdStr,
		})
		return
	}

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if err != nil || plan == nil {
		s.logger.Error("WebhookService", "Plan referenced by transaction not found", map[string]interface{}{
			"transaction_id": tx.GatewayTransactionId,
			"plan_id":        planIdStr,
		})
		return
	}

	// Tentatively match a user account by email when checkout was
	// anonymous; the subscription stays email-keyed otherwise.
	userId := tx.UserId
	if userId == nil && tx.Email != "" {
		if user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: tx.Email}); err == nil && user != nil {
			userId = &user.Id
		}
	}

	// The partial unique index allows one active subscription per user.
	// Superseding the old row and inserting the new one must land
	// together, or a failed insert would strand the user with nothing.
	var current *entity.Subscription
	if userId != nil {
		current, _ = uow.SubscriptionRepository().FindActiveByUser(ctx, *userId)
	} else if tx.Email != "" {
		current, _ = uow.SubscriptionRepository().FindActiveByEmail(ctx, tx.Email)
	}

	if err := uow.Begin(ctx); err != nil {
		s.logger.Error("WebhookService", "Failed to open transaction for subscription creation", map[string]interface{}{
			"transaction_id": tx.GatewayTransactionId,
			"error":          err.Error(),
		})
		return
	}
	defer uow.Rollback()

	if current != nil {
		current.Status = entity.SubscriptionStatusCancelled
		current.UpdatedAt = time.Now()
		if err := uow.SubscriptionRepository().UpdateSubscription(ctx, current); err != nil {
			s.logger.Error("WebhookService", "Failed to supersede existing subscription", map[string]interface{}{
				"subscription_id": current.Id,
				"error":           err.Error(),
			})
			return
		}
	}

	now := time.Now()
	sub := &entity.Subscription{
		Id:        uuid.New(),
		UserId:    userId,
		Email:     tx.Email,
		PlanId:    plan.Id,
		Status:    entity.SubscriptionStatusActive,
		StartDate: now,
		EndDate:   billing.NextEndDate(now, billing.PlanTerms{DurationMonths: plan.DurationMonths}),
		Price:     tx.Amount,
		Currency:  tx.Currency,
		AutoRenew: true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
		s.logger.Error("WebhookService", "Failed to create subscription", map[string]interface{}{
			"transaction_id": tx.GatewayTransactionId,
			"error":          err.Error(),
		})
		return
	}

	if err := uow.Commit(); err != nil {
		s.logger.Error("WebhookService", "Failed to commit subscription creation", map[string]interface{}{
			"transaction_id": tx.GatewayTransactionId,
			"error":          err.Error(),
		})
		return
	}

	s.logger.Info("WebhookService", "Subscription created", map[string]interface{}{
		"subscription_id": sub.Id,
		"plan":            plan.Name,
		"email":           tx.Email,
	})

	s.publishMail(&dto.SendMailMessage{
		Type:     dto.MailTypePaymentConfirmation,
		Email:    tx.Email,
		PlanName: plan.Name,
		Amount:   tx.Amount,
		Currency: tx.Currency,
		EndDate:  sub.EndDate.Format("2006-01-02"),
	})
}

// applyPaidPlanSwitch finishes an upgrade that needed payment: the
// subscription referenced at checkout moves onto the new plan with a
// fresh period.
func (s *webhookService) applyPaidPlanSwitch(ctx context.Context, uow unitofwork.UnitOfWork, tx *entity.PaymentTransaction) {
	subId, err := uuid.Parse(tx.MetaString(entity.MetaSubscriptionId))
	if err != nil {
		s.logger.Error("WebhookService", "Invalid subscription id in transaction metadata", map[string]interface{}{
			"transaction_id": tx.GatewayTransactionId,
		})
		return
	}
	planId, err := uuid.Parse(tx.MetaString(entity.MetaSubscriptionPlanId))
	if err != nil {
		return
	}

	sub, err := uow.SubscriptionRepository().FindOneSubscription(ctx, specification.ByID{ID: subId})
	if err != nil || sub == nil {
		s.logger.Error("WebhookService", "Subscription for plan switch not found", map[string]interface{}{
			"subscription_id": subId,
		})
		return
	}
	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: planId})
	if err != nil || plan == nil {
		return
	}

	now := time.Now()
	sub.PlanId = plan.Id
	sub.Price = plan.Price
	sub.EndDate = billing.NextEndDate(now, billing.PlanTerms{DurationMonths: plan.DurationMonths})
	sub.UpdatedAt = now

	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		s.logger.Error("WebhookService", "Failed to apply paid plan switch", map[string]interface{}{
			"subscription_id": sub.Id,
			"error":           err.Error(),
		})
		return
	}

	s.publishMail(&dto.SendMailMessage{
		Type:     dto.MailTypePlanChange,
		Email:    sub.Email,
		PlanName: plan.Name,
		EndDate:  sub.EndDate.Format("2006-01-02"),
	})
}

func (s *webhookService) redeemPromo(ctx context.Context, uow unitofwork.UnitOfWork, tx *entity.PaymentTransaction, code string) {
	promo, err := uow.PromoRepository().FindOne(ctx, specification.ByCode{Code: strings.ToUpper(code)})
	if err != nil || promo == nil {
		s.logger.Warn("WebhookService", "Promo code from transaction metadata not found", map[string]interface{}{
			"transaction_id": tx.GatewayTransactionId,
			"code":           code,
		})
		return
	}

	if err := uow.PromoRepository().IncrementUsage(ctx, promo.Id); err != nil {
		s.logger.Error("WebhookService", "Failed to increment promo usage", map[string]interface{}{
			"promo_id": promo.Id,
			"error":    err.Error(),
		})
		return
	}

	redemption := &entity.PromoRedemption{
		Id:            uuid.New(),
		PromoCodeId:   promo.Id,
		UserId:        tx.UserId,
		Email:         tx.Email,
		TransactionId: tx.Id,
		CreatedAt:     time.Now(),
	}
	if err := uow.PromoRepository().CreateRedemption(ctx, redemption); err != nil {
		s.logger.Warn("WebhookService", "Failed to record promo redemption", map[string]interface{}{
			"promo_id": promo.Id,
			"error":    err.Error(),
		})
	}
}

func (s *webhookService) accrueCommission(ctx context.Context, uow unitofwork.UnitOfWork, tx *entity.PaymentTransaction, affiliateIdStr string) {
	affiliateId, err := uuid.Parse(affiliateIdStr)
	if err != nil {
		return
	}

	affiliate, err := uow.AffiliateRepository().FindOne(ctx, specification.ByID{ID: affiliateId})
	if err != nil || affiliate == nil {
		s.logger.Warn("WebhookService", "Affiliate from transaction metadata not found", map[string]interface{}{
			"transaction_id": tx.GatewayTransactionId,
			"affiliate_id":   affiliateIdStr,
		})
		return
	}
	if affiliate.Status != entity.AffiliateStatusActive {
		s.logger.Warn("WebhookService", "Skipping commission for inactive affiliate", map[string]interface{}{
			"affiliate_id": affiliate.Id,
			"status":       string(affiliate.Status),
		})
		return
	}

	commission, _ := decimal.NewFromFloat(tx.Amount).
		Mul(decimal.NewFromFloat(affiliate.CommissionRate)).
		Div(decimal.NewFromInt(100)).
		Round(2).Float64()

	referral := &entity.AffiliateReferral{
		Id:            uuid.New(),
		AffiliateId:   affiliate.Id,
		TransactionId: tx.Id,
		Amount:        tx.Amount,
		Commission:    commission,
		Currency:      tx.Currency,
		CreatedAt:     time.Now(),
	}
	if err := uow.AffiliateRepository().CreateReferral(ctx, referral); err != nil {
		// Unique index on transaction_id keeps duplicate commissions out.
		s.logger.Warn("WebhookService", "Failed to create affiliate referral", map[string]interface{}{
			"affiliate_id": affiliate.Id,
			"error":        err.Error(),
		})
		return
	}

	if err := uow.AffiliateRepository().AccrueCommission(ctx, affiliate.Id, commission); err != nil {
		s.logger.Error("WebhookService", "Failed to accrue affiliate commission", map[string]interface{}{
			"affiliate_id": affiliate.Id,
			"error":        err.Error(),
		})
	}
}

func (s *webhookService) publishMail(msg *dto.SendMailMessage) {
	if s.pubSub == nil {
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.pubSub.Publish(MailTopicName, message.NewMessage(uuid.NewString(), payload)); err != nil {
		s.logger.Warn("WebhookService", "Failed to enqueue mail job", map[string]interface{}{
			"type":  msg.Type,
			"email": msg.Email,
			"error": err.Error(),
		})
	}
}
