package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Rakhulsr/khayal-shop/app/models"
)

// NotifyTimeout bounds the whole post-checkout notification fan-out.
const NotifyTimeout = 10 * time.Second

// OrderNotifier is told about every newly placed order.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, order *models.Order) error
}

// Notifiers fans an event out to every member. One failing member does not
// stop the others.
type Notifiers []OrderNotifier

func (n Notifiers) OrderPlaced(ctx context.Context, order *models.Order) error {
	var errs []error
	for _, notifier := range n {
		if notifier == nil {
			continue
		}
		if err := notifier.OrderPlaced(ctx, order); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// notifyInBackground runs the notifier on its own goroutine with a fresh
// timeout so the caller never waits. Failures are only logged.
func notifyInBackground(notifier OrderNotifier, order models.Order) {
	if notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), NotifyTimeout)
		defer cancel()

		if err := notifier.OrderPlaced(ctx, &order); err != nil {
			log.Printf("Notify: order %s: %v", order.OrderNumber, err)
			return
		}
		log.Printf("Notify: ✅ order %s notifications sent", order.OrderNumber)
	}()
}

// WebhookNotifier POSTs the order as JSON to a fixed URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: NotifyTimeout},
	}
}

func (w *WebhookNotifier) OrderPlaced(ctx context.Context, order *models.Order) error {
	if w.url == "" {
		return nil
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("failed to encode order for webhook: %w", err)
	}

	if _, err := w.doRequest(ctx, http.MethodPost, bytes.NewBuffer(payload), "application/json"); err != nil {
		return &BackendUnavailableError{Op: "order webhook", Err: err}
	}
	return nil
}

func (w *WebhookNotifier) doRequest(ctx context.Context, method string, body *bytes.Buffer, contentType string) ([]byte, error) {
	if body == nil {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, w.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}
