package service

import (
	"context"
	"encoding/json"

	"vistratv-be/internal/dto"
	"vistratv-be/internal/pkg/logger"
	"vistratv-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IMailWorkerService interface {
	Consume(ctx context.Context) error
}

// mailWorkerService drains the in-process mail queue so SMTP latency and
// outages never sit on a webhook response.
type mailWorkerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewMailWorkerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IMailWorkerService {
	return &mailWorkerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
		logger:       log,
	}
}

func (ws *mailWorkerService) Consume(ctx context.Context) error {
	messages, err := ws.pubSub.Subscribe(ctx, ws.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ws.processMessage(msg)
		}
	}()

	return nil
}

func (ws *mailWorkerService) processMessage(msg *message.Message) {
	var payload dto.SendMailMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ws.logger.Error("MailWorker", "Failed to unmarshal mail job", map[string]interface{}{
			"error": err.Error(),
		})
		// Ack invalid messages to prevent infinite retry
		msg.Ack()
		return
	}

	var err error
	switch payload.Type {
	case dto.MailTypePaymentConfirmation:
		err = ws.emailService.SendPaymentConfirmation(payload.Email, payload.PlanName, payload.Amount, payload.Currency, payload.EndDate)
	case dto.MailTypePlanChange:
		err = ws.emailService.SendPlanChangeNotice(payload.Email, payload.OldPlan, payload.PlanName, payload.EndDate)
	default:
		ws.logger.Warn("MailWorker", "Unknown mail job type", map[string]interface{}{
			"type": payload.Type,
		})
		msg.Ack()
		return
	}

	if err != nil {
		ws.logger.Error("MailWorker", "Failed to send mail", map[string]interface{}{
			"type":  payload.Type,
			"email": payload.Email,
			"error": err.Error(),
		})
		// Nack for retriable errors
		msg.Nack()
		return
	}

	ws.logger.Info("MailWorker", "Mail sent", map[string]interface{}{
		"type":  payload.Type,
		"email": payload.Email,
	})
	msg.Ack()
}
