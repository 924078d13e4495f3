package paygate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	secret := "whsec_test"
	body := []byte(`{"transaction_id":"tx_1","status":"completed"}`)

	valid := Sign(secret, body)

	assert.True(t, VerifySignature(secret, body, valid))
	assert.False(t, VerifySignature(secret, body, valid+"00"))
	assert.False(t, VerifySignature(secret, body, ""))
	assert.False(t, VerifySignature(secret, []byte(`{"transaction_id":"tx_2"}`), valid))
	assert.False(t, VerifySignature("other_secret", body, valid))
}

func TestSignIsDeterministic(t *testing.T) {
	body := []byte("payload")
	assert.Equal(t, Sign("s", body), Sign("s", body))
	assert.NotEqual(t, Sign("s", body), Sign("t", body))
}
