package paygate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name       string
		gateway    string
		want       string
		recognized bool
	}{
		{"confirmed maps to completed", "confirmed", "completed", true},
		{"success maps to completed", "success", "completed", true},
		{"paid maps to completed", "paid", "completed", true},
		{"waiting maps to pending", "waiting", "pending", true},
		{"confirming maps to pending", "confirming", "pending", true},
		{"error maps to failed", "error", "failed", true},
		{"timeout maps to expired", "timeout", "expired", true},
		{"canceled maps to cancelled", "canceled", "cancelled", true},
		{"unknown passes through verbatim", "foo", "foo", false},
		{"empty passes through", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, recognized := NormalizeStatus(tt.gateway)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.recognized, recognized)
		})
	}
}
