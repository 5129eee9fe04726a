package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const deliveryTimeout = 10 * time.Second

// DeliveryResponse is the raw outcome of a webhook delivery.
type DeliveryResponse struct {
	StatusCode int
	Body       []byte
}

// Transport sends a prepared webhook delivery. It is injected into the
// service so tests can substitute the network; no repository lock is ever
// held while a send is in flight.
type Transport interface {
	Send(ctx context.Context, url string, body []byte, headers map[string]string) (*DeliveryResponse, error)
}

type httpTransport struct {
	httpClient *http.Client
}

// NewHTTPTransport returns a Transport backed by an http.Client with a
// bounded timeout. A delivery that exceeds it is reported as a failure; no
// retries are attempted.
func NewHTTPTransport() Transport {
	return &httpTransport{
		httpClient: &http.Client{
			Timeout: deliveryTimeout,
		},
	}
}

func (t *httpTransport) Send(ctx context.Context, url string, body []byte, headers map[string]string) (*DeliveryResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read delivery response: %w", err)
	}

	return &DeliveryResponse{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}
