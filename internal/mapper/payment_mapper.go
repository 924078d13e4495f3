package mapper

import (
	"encoding/json"

	"vistratv-be/internal/entity"
	"vistratv-be/internal/model"

	"gorm.io/datatypes"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func jsonToMap(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return map[string]interface{}{}
	}
	out := map[string]interface{}{}
	_ = json.Unmarshal(raw, &out)
	return out
}

func mapToJSON(in map[string]interface{}) datatypes.JSON {
	if in == nil {
		return datatypes.JSON([]byte("{}"))
	}
	raw, err := json.Marshal(in)
	if err != nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}

func (m *PaymentMapper) TransactionToEntity(t *model.PaymentTransaction) *entity.PaymentTransaction {
	if t == nil {
		return nil
	}
	return &entity.PaymentTransaction{
		Id:                   t.Id,
		UserId:               t.UserId,
		Email:                t.Email,
		GatewayTransactionId: t.GatewayTransactionId,
		Provider:             entity.PaymentProvider(t.Provider),
		Amount:               t.Amount,
		Currency:             t.Currency,
		Status:               entity.PaymentStatus(t.Status),
		Metadata:             jsonToMap(t.Metadata),
		GatewayResponse:      jsonToMap(t.GatewayResponse),
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

func (m *PaymentMapper) TransactionToModel(t *entity.PaymentTransaction) *model.PaymentTransaction {
	if t == nil {
		return nil
	}
	return &model.PaymentTransaction{
		Id:                   t.Id,
		UserId:               t.UserId,
		Email:                t.Email,
		GatewayTransactionId: t.GatewayTransactionId,
		Provider:             string(t.Provider),
		Amount:               t.Amount,
		Currency:             t.Currency,
		Status:               string(t.Status),
		Metadata:             mapToJSON(t.Metadata),
		GatewayResponse:      mapToJSON(t.GatewayResponse),
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
	}
}

func (m *PaymentMapper) WebhookLogToEntity(l *model.WebhookLog) *entity.WebhookLog {
	if l == nil {
		return nil
	}
	return &entity.WebhookLog{
		Id:            l.Id,
		Provider:      entity.PaymentProvider(l.Provider),
		TransactionId: l.TransactionId,
		EventStatus:   l.EventStatus,
		Status:        entity.WebhookProcessingStatus(l.Status),
		Payload:       jsonToMap(l.Payload),
		Response:      l.Response,
		SourceIP:      l.SourceIP,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func (m *PaymentMapper) WebhookLogToModel(l *entity.WebhookLog) *model.WebhookLog {
	if l == nil {
		return nil
	}
	return &model.WebhookLog{
		Id:            l.Id,
		Provider:      string(l.Provider),
		TransactionId: l.TransactionId,
		EventStatus:   l.EventStatus,
		Status:        string(l.Status),
		Payload:       mapToJSON(l.Payload),
		Response:      l.Response,
		SourceIP:      l.SourceIP,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}
