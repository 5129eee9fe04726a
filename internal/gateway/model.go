package gateway

import "encoding/json"

// StatusCreated is the only status the simulator ever assigns; records are
// never advanced or deleted.
const StatusCreated = "created"

const defaultCurrency = "INR"

// Order is a gateway record for an amount to be collected. Immutable after
// creation.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Notes    map[string]string
	Status   string
}

// PaymentLink is a shareable reference to a payable amount. Immutable after
// creation.
type PaymentLink struct {
	ID        string
	Amount    int64
	Currency  string
	Notes     map[string]string
	ShortURL  string
	Status    string
	CreatedAt int64
}

// WebhookEnvelope is the body of an outbound webhook delivery. It is
// marshaled exactly once; the signature covers those exact bytes, so the
// envelope is never re-serialized after signing.
type WebhookEnvelope struct {
	Event     string          `json:"event"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt int64           `json:"created_at"`
}
