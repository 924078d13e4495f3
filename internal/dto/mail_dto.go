package dto

// Email job types consumed by the mail worker.
const (
	MailTypePaymentConfirmation = "payment_confirmation"
	MailTypePlanChange          = "plan_change"
)

// SendMailMessage is the payload published to the mail topic. Fields are
// a superset; which ones matter depends on Type.
type SendMailMessage struct {
	Type     string  `json:"type"`
	Email    string  `json:"email"`
	PlanName string  `json:"plan_name"`
	OldPlan  string  `json:"old_plan,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
	Currency string  `json:"currency,omitempty"`
	EndDate  string  `json:"end_date"`
}
