package gateway

// OrderResponse is the external representation of an Order, including the
// derived fields the gateway reports but never stores.
type OrderResponse struct {
	ID         string            `json:"id"`
	Entity     string            `json:"entity"`
	Amount     int64             `json:"amount"`
	AmountPaid int64             `json:"amount_paid"`
	AmountDue  int64             `json:"amount_due"`
	Currency   string            `json:"currency"`
	Receipt    string            `json:"receipt"`
	Status     string            `json:"status"`
	Attempts   int               `json:"attempts"`
	Notes      map[string]string `json:"notes"`
}

type PaymentLinkResponse struct {
	ID        string            `json:"id"`
	Entity    string            `json:"entity"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	ShortURL  string            `json:"short_url"`
	Status    string            `json:"status"`
	CreatedAt int64             `json:"created_at"`
	Notes     map[string]string `json:"notes"`
}

// ToOrderResponse maps an Order to its wire form. Nothing is ever paid in
// the simulator, so amount_paid and attempts stay zero and amount_due equals
// the full amount.
func ToOrderResponse(o *Order) *OrderResponse {
	return &OrderResponse{
		ID:         o.ID,
		Entity:     "order",
		Amount:     o.Amount,
		AmountPaid: 0,
		AmountDue:  o.Amount,
		Currency:   o.Currency,
		Receipt:    "rcpt_" + o.ID,
		Status:     o.Status,
		Attempts:   0,
		Notes:      notesOrEmpty(o.Notes),
	}
}

func ToPaymentLinkResponse(l *PaymentLink) *PaymentLinkResponse {
	return &PaymentLinkResponse{
		ID:        l.ID,
		Entity:    "payment_link",
		Amount:    l.Amount,
		Currency:  l.Currency,
		ShortURL:  l.ShortURL,
		Status:    l.Status,
		CreatedAt: l.CreatedAt,
		Notes:     notesOrEmpty(l.Notes),
	}
}

// notesOrEmpty keeps notes rendering as {} rather than null.
func notesOrEmpty(notes map[string]string) map[string]string {
	if notes == nil {
		return map[string]string{}
	}
	return notes
}
