// Package notify delivers best-effort webhook calls that never block or fail the caller.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

// Webhook posts JSON payloads in detached goroutines. Failures are only logged.
type Webhook struct {
	client  *http.Client
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewWebhook makes a notifier with a per-delivery timeout
func NewWebhook(timeout time.Duration) *Webhook {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{client: &http.Client{Timeout: timeout}, timeout: timeout}
}

// Notify announces a new lead to url with {"lead_id": id}. Empty url is a no-op.
func (w *Webhook) Notify(url string, leadID int64) {
	w.Forward(url, map[string]int64{"lead_id": leadID})
}

// Forward sends payload to url without waiting for the outcome. Empty url is a no-op.
func (w *Webhook) Forward(url string, payload any) {
	if url == "" {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		lgr.Printf("[WARN] can't encode webhook payload: %v", err)
		return
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := w.send(url, body); err != nil {
			lgr.Printf("[WARN] webhook to %s failed: %v", url, err)
			return
		}
		lgr.Printf("[DEBUG] webhook delivered to %s", url)
	}()
}

// Wait blocks until all in-flight deliveries finish
func (w *Webhook) Wait() {
	w.wg.Wait()
}

// send runs detached from any request context, only the delivery timeout bounds it
func (w *Webhook) send(url string, body []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
