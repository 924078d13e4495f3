package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"vistratv-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmailService struct {
	mu            sync.Mutex
	confirmations []string
	planChanges   []string
}

func (r *recordingEmailService) SendPaymentConfirmation(toEmail, planName string, amount float64, currency, endDate string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirmations = append(r.confirmations, toEmail)
	return nil
}

func (r *recordingEmailService) SendPlanChangeNotice(toEmail, oldPlan, newPlan, endDate string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.planChanges = append(r.planChanges, toEmail)
	return nil
}

func (r *recordingEmailService) SendResetToken(toEmail, token string) error { return nil }

func (r *recordingEmailService) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.confirmations), len(r.planChanges)
}

func TestMailWorkerDispatchesJobs(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	emails := &recordingEmailService{}
	worker := NewMailWorkerService(pubSub, MailTopicName, emails, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, worker.Consume(ctx))

	publish := func(msg *dto.SendMailMessage) {
		payload, err := json.Marshal(msg)
		require.NoError(t, err)
		require.NoError(t, pubSub.Publish(MailTopicName, message.NewMessage(uuid.NewString(), payload)))
	}

	publish(&dto.SendMailMessage{
		Type:     dto.MailTypePaymentConfirmation,
		Email:    "viewer@example.com",
		PlanName: "Standard",
		Amount:   14.99,
		Currency: "USD",
	})
	publish(&dto.SendMailMessage{
		Type:    dto.MailTypePlanChange,
		Email:   "viewer@example.com",
		OldPlan: "Basic",
	})

	assert.Eventually(t, func() bool {
		confirmations, planChanges := emails.counts()
		return confirmations == 1 && planChanges == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMailWorkerAcksUnknownJobType(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	emails := &recordingEmailService{}
	worker := NewMailWorkerService(pubSub, MailTopicName, emails, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, worker.Consume(ctx))

	payload, err := json.Marshal(&dto.SendMailMessage{Type: "unsupported", Email: "x@example.com"})
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish(MailTopicName, message.NewMessage(uuid.NewString(), payload)))
	require.NoError(t, pubSub.Publish(MailTopicName, message.NewMessage(uuid.NewString(), []byte("not json"))))

	time.Sleep(100 * time.Millisecond)
	confirmations, planChanges := emails.counts()
	assert.Zero(t, confirmations)
	assert.Zero(t, planChanges)
}
