package service

import "errors"

// Webhook processing failures the controller maps onto HTTP statuses.
var (
	ErrInvalidSignature   = errors.New("invalid webhook signature")
	ErrMalformedPayload   = errors.New("malformed webhook payload")
	ErrUnknownTransaction = errors.New("unknown transaction")
)
