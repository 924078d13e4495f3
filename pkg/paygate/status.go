package paygate

// statusMap normalizes the gateway's status vocabulary onto the internal
// payment statuses. Unknown gateway statuses pass through verbatim so a
// new gateway state degrades to an inspectable stored value instead of a
// rejected webhook.
var statusMap = map[string]string{
	"confirmed":  "completed",
	"success":    "completed",
	"paid":       "completed",
	"finished":   "completed",
	"waiting":    "pending",
	"confirming": "pending",
	"pending":    "pending",
	"error":      "failed",
	"fail":       "failed",
	"failed":     "failed",
	"timeout":    "expired",
	"expired":    "expired",
	"canceled":   "cancelled",
	"cancelled":  "cancelled",
}

// NormalizeStatus maps a gateway status onto the internal vocabulary.
// The second return reports whether the status was recognized; callers
// must not trigger payment side effects for passthrough statuses.
func NormalizeStatus(gatewayStatus string) (string, bool) {
	if mapped, ok := statusMap[gatewayStatus]; ok {
		return mapped, true
	}
	return gatewayStatus, false
}
