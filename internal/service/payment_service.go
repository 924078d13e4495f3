package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/entity"
	"vistratv-be/internal/pkg/logger"
	"vistratv-be/internal/repository/specification"
	"vistratv-be/internal/repository/unitofwork"
	"vistratv-be/pkg/paygate"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

type IPaymentService interface {
	GetOrderSummary(ctx context.Context, req *dto.OrderSummaryRequest, userId *uuid.UUID) (*dto.OrderSummaryResponse, error)
	Checkout(ctx context.Context, userId *uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	GetTransactionStatus(ctx context.Context, gatewayTransactionId string) (*dto.TransactionResponse, error)
}

type paymentService struct {
	uowFactory    unitofwork.RepositoryFactory
	paygateClient *paygate.Client
	promoService  IPromoService
	logger        logger.ILogger
	baseURL       string
	clientURL     string
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	paygateClient *paygate.Client,
	promoService IPromoService,
	log logger.ILogger,
	baseURL, clientURL string,
) IPaymentService {
	return &paymentService{
		uowFactory:    uowFactory,
		paygateClient: paygateClient,
		promoService:  promoService,
		logger:        log,
		baseURL:       baseURL,
		clientURL:     clientURL,
	}
}

func (s *paymentService) GetOrderSummary(ctx context.Context, req *dto.OrderSummaryRequest, userId *uuid.UUID) (*dto.OrderSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found")
	}

	summary := &dto.OrderSummaryResponse{
		PlanName:      plan.Name,
		BillingPeriod: fmt.Sprintf("%d month(s)", plan.DurationMonths),
		Subtotal:      plan.Price,
		Total:         plan.Price,
		Currency:      plan.Currency,
	}

	if req.PromoCode != "" {
		validation, err := s.promoService.Validate(ctx, &dto.ValidatePromoRequest{
			Code:   req.PromoCode,
			PlanId: req.PlanId,
			Email:  req.Email,
		}, userId)
		if err != nil {
			return nil, err
		}
		if validation.Valid {
			summary.PromoApplied = true
			summary.Discount = plan.Price - validation.DiscountedPrice
			summary.Total = validation.DiscountedPrice
		}
	}

	return summary, nil
}

// Checkout creates the pending transaction and hands the customer to the
// gateway's payment page. The transaction's metadata stashes everything
// the webhook reconciler needs later: plan, promo code, affiliate id.
func (s *paymentService) Checkout(ctx context.Context, userId *uuid.UUID, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	plan, err := uow.SubscriptionRepository().FindOnePlan(ctx, specification.ByID{ID: req.PlanId}, specification.ActiveOnly{})
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, errors.New("plan not found")
	}

	amount := plan.Price
	metadata := map[string]interface{}{
		entity.MetaSubscriptionPlanId: plan.Id.String(),
	}

	if req.PromoCode != "" {
		validation, err := s.promoService.Validate(ctx, &dto.ValidatePromoRequest{
			Code:   req.PromoCode,
			PlanId: req.PlanId,
			Email:  req.Email,
		}, userId)
		if err != nil {
			return nil, err
		}
		if !validation.Valid {
			return nil, fmt.Errorf("invalid promo code: %s", validation.Reason)
		}
		amount = validation.DiscountedPrice
		metadata[entity.MetaPromoCode] = validation.Code
	}

	if req.AffiliateCode != "" {
		code := strings.ToUpper(strings.TrimSpace(req.AffiliateCode))
		affiliate, err := uow.AffiliateRepository().FindOne(ctx,
			specification.ByCode{Code: code},
			specification.ByStatus{Status: string(entity.AffiliateStatusActive)},
		)
		if err != nil {
			return nil, err
		}
		// Unknown or inactive affiliate codes are silently dropped,
		// the checkout still goes through.
		if affiliate != nil {
			metadata[entity.MetaAffiliateId] = affiliate.Id.String()
		}
	}

	provider := entity.PaymentProvider(req.Provider)
	if provider == "" {
		provider = entity.PaymentProviderPaygate
	}

	tx := &entity.PaymentTransaction{
		Id:        uuid.New(),
		UserId:    userId,
		Email:     req.Email,
		Provider:  provider,
		Amount:    amount,
		Currency:  plan.Currency,
		Status:    entity.PaymentStatusPending,
		Metadata:  metadata,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	var paymentURL string
	switch provider {
	case entity.PaymentProviderPaygate:
		invoice, err := s.paygateClient.CreateInvoice(ctx, &paygate.InvoiceRequest{
			OrderId:     tx.Id.String(),
			Amount:      amount,
			Currency:    plan.Currency,
			Email:       req.Email,
			CallbackURL: s.baseURL + "/api/payment/paygate/webhook",
			SuccessURL:  s.clientURL + "/checkout/success",
			CancelURL:   s.clientURL + "/checkout/cancel",
		})
		if err != nil {
			return nil, err
		}
		tx.GatewayTransactionId = invoice.TransactionId
		paymentURL = invoice.PaymentURL

	case entity.PaymentProviderMidtrans:
		// Midtrans correlates by our order id, so the internal id doubles
		// as the gateway transaction id.
		tx.GatewayTransactionId = tx.Id.String()
		snapResp, err := s.createSnapTransaction(tx, plan, req)
		if err != nil {
			return nil, err
		}
		paymentURL = snapResp.RedirectURL

	default:
		return nil, fmt.Errorf("unsupported payment provider: %s", provider)
	}

	if err := uow.PaymentRepository().CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.logger.Info("PaymentService", "Checkout transaction created", map[string]interface{}{
		"transaction_id": tx.GatewayTransactionId,
		"provider":       string(provider),
		"amount":         amount,
	})

	return &dto.CheckoutResponse{
		TransactionId: tx.GatewayTransactionId,
		PaymentURL:    paymentURL,
		Amount:        amount,
		Currency:      plan.Currency,
	}, nil
}

func (s *paymentService) createSnapTransaction(tx *entity.PaymentTransaction, plan *entity.SubscriptionPlan, req *dto.CheckoutRequest) (*snap.Response, error) {
	var sClient snap.Client
	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_IS_PRODUCTION") == "true" {
		env = midtrans.Production
	}
	sClient.New(os.Getenv("MIDTRANS_SERVER_KEY"), env)

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  tx.Id.String(),
			GrossAmt: int64(tx.Amount),
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: s.clientURL + "/checkout/success",
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FullName,
			Email: req.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    plan.Id.String(),
				Price: int64(tx.Amount),
				Qty:   1,
				Name:  plan.Name,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	snapResp, midErr := sClient.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("midtrans error: %v", midErr.GetMessage())
	}
	return snapResp, nil
}

func (s *paymentService) GetTransactionStatus(ctx context.Context, gatewayTransactionId string) (*dto.TransactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tx, err := uow.PaymentRepository().FindOneTransaction(ctx, specification.ByGatewayTransactionId{TransactionId: gatewayTransactionId})
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, errors.New("transaction not found")
	}

	return &dto.TransactionResponse{
		Id:                   tx.Id,
		GatewayTransactionId: tx.GatewayTransactionId,
		Provider:             string(tx.Provider),
		Email:                tx.Email,
		Amount:               tx.Amount,
		Currency:             tx.Currency,
		Status:               string(tx.Status),
		CreatedAt:            tx.CreatedAt,
	}, nil
}
