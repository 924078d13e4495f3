package dto

// PaygateWebhookRequest is the gateway's event payload. Only
// transaction_id and status are required; everything else rides along
// into the stored metadata.
type PaygateWebhookRequest struct {
	TransactionId string                 `json:"transaction_id"`
	Status        string                 `json:"status"`
	Amount        float64                `json:"amount"`
	Currency      string                 `json:"currency"`
	Email         string                 `json:"email"`
	Metadata      map[string]interface{} `json:"metadata"`
	Timestamp     int64                  `json:"timestamp"`
}

type WebhookAck struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
}
