package gateway

import (
	"context"
	"encoding/json"
	"time"

	"mockpay/internal/logger"
	"mockpay/internal/signature"

	"go.uber.org/zap"
)

const (
	defaultEvent   = "payment.captured"
	defaultPayload = `{"mock":"data"}`
	shortURLBase   = "https://mock-pay.test/p/"
)

// CreateOrderInput is the decoded body of POST /orders. Amount is a pointer
// so a missing field is distinguishable from zero.
type CreateOrderInput struct {
	Amount   *int64            `json:"amount"`
	Currency string            `json:"currency"`
	Notes    map[string]string `json:"notes"`
}

type CreatePaymentLinkInput struct {
	Amount   *int64            `json:"amount"`
	Currency string            `json:"currency"`
	Notes    map[string]string `json:"notes"`
	ShortURL string            `json:"short_url"`
}

type DispatchWebhookInput struct {
	TargetURL string          `json:"target_url"`
	Event     string          `json:"event"`
	Payload   json.RawMessage `json:"payload"`
}

// DeliveryResult reports a completed webhook delivery, whatever status the
// subscriber answered with.
type DeliveryResult struct {
	SentTo       string `json:"sent_to"`
	StatusCode   int    `json:"status_code"`
	ResponseText string `json:"response_text"`
}

type Service interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	CreatePaymentLink(ctx context.Context, in CreatePaymentLinkInput) (*PaymentLink, error)
	GetPaymentLink(ctx context.Context, id string) (*PaymentLink, error)
	DispatchWebhook(ctx context.Context, in DispatchWebhookInput) (*DeliveryResult, error)
}

type service struct {
	repo      Repository
	transport Transport
	secret    string
	now       func() time.Time
}

func NewService(repo Repository, transport Transport, secret string) Service {
	return &service{
		repo:      repo,
		transport: transport,
		secret:    secret,
		now:       time.Now,
	}
}

func (s *service) CreateOrder(ctx context.Context, in CreateOrderInput) (*Order, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}

	order := Order{
		ID:       s.repo.NextID("order"),
		Amount:   *in.Amount,
		Currency: currencyOrDefault(in.Currency),
		Notes:    in.Notes,
		Status:   StatusCreated,
	}
	s.repo.SaveOrder(order)

	logger.FromCtx(ctx).Info("order created",
		zap.String("order_id", order.ID),
		zap.Int64("amount", order.Amount),
		zap.String("currency", order.Currency),
	)
	return &order, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	order, ok := s.repo.FindOrder(id)
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

func (s *service) CreatePaymentLink(ctx context.Context, in CreatePaymentLinkInput) (*PaymentLink, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}

	id := s.repo.NextID("plink")
	shortURL := in.ShortURL
	if shortURL == "" {
		shortURL = shortURLBase + id
	}

	link := PaymentLink{
		ID:        id,
		Amount:    *in.Amount,
		Currency:  currencyOrDefault(in.Currency),
		Notes:     in.Notes,
		ShortURL:  shortURL,
		Status:    StatusCreated,
		CreatedAt: s.now().Unix(),
	}
	s.repo.SavePaymentLink(link)

	logger.FromCtx(ctx).Info("payment link created",
		zap.String("link_id", link.ID),
		zap.Int64("amount", link.Amount),
		zap.String("short_url", link.ShortURL),
	)
	return &link, nil
}

func (s *service) GetPaymentLink(ctx context.Context, id string) (*PaymentLink, error) {
	link, ok := s.repo.FindPaymentLink(id)
	if !ok {
		return nil, ErrPaymentLinkNotFound
	}
	return &link, nil
}

// DispatchWebhook builds the envelope, serializes it exactly once, signs
// those bytes and posts them to the target. The signed bytes are the
// transmitted bytes; the envelope is never re-marshaled after signing.
func (s *service) DispatchWebhook(ctx context.Context, in DispatchWebhookInput) (*DeliveryResult, error) {
	if in.TargetURL == "" {
		return nil, ErrTargetURLRequired
	}

	event := in.Event
	if event == "" {
		event = defaultEvent
	}
	payload := in.Payload
	if len(payload) == 0 {
		payload = json.RawMessage(defaultPayload)
	}

	envelope := &WebhookEnvelope{
		Event:     event,
		Payload:   payload,
		CreatedAt: s.now().Unix(),
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}
	sig := signature.Sign(body, s.secret)

	log := logger.FromCtx(ctx).With(
		zap.String("target_url", in.TargetURL),
		zap.String("event", event),
	)

	resp, err := s.transport.Send(ctx, in.TargetURL, body, map[string]string{
		"Content-Type":   "application/json",
		signature.Header: sig,
	})
	if err != nil {
		log.Error("webhook delivery failed", zap.Error(err))
		return nil, &DeliveryError{
			Signature: sig,
			Envelope:  envelope,
			Body:      body,
			Err:       err,
		}
	}

	log.Info("webhook delivered", zap.Int("status_code", resp.StatusCode))
	return &DeliveryResult{
		SentTo:       in.TargetURL,
		StatusCode:   resp.StatusCode,
		ResponseText: string(resp.Body),
	}, nil
}

func validateAmount(amount *int64) error {
	if amount == nil {
		return ErrAmountRequired
	}
	if *amount < 0 {
		return ErrAmountNegative
	}
	return nil
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return defaultCurrency
	}
	return currency
}
