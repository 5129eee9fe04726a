package gateway

import (
	"errors"
	"fmt"
)

var (
	ErrAmountRequired      = errors.New("amount missing (JSON body required)")
	ErrAmountNegative      = errors.New("amount must be a non-negative integer")
	ErrTargetURLRequired   = errors.New("target_url required")
	ErrOrderNotFound       = errors.New("order not found")
	ErrPaymentLinkNotFound = errors.New("payment link not found")
)

// DeliveryError reports a failed outbound webhook delivery. It carries the
// signature and envelope that were attempted so the caller can inspect the
// delivery or replay it by hand; a bare transport error would swallow that.
type DeliveryError struct {
	Signature string
	Envelope  *WebhookEnvelope
	Body      []byte
	Err       error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to POST to target: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }
