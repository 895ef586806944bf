package push

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	maxReconnectAttempts = 5
	maxReconnectDelay    = 30 * time.Second
)

// TokenSource supplies the bearer token for the stream connection. The
// console uses a service account so the channel survives user logouts.
type TokenSource func() string

// Channel maintains a long-lived connection to the backend's
// notification stream and publishes what it reads into the Hub.
type Channel struct {
	streamURL  string
	token      TokenSource
	hub        *Hub
	httpClient *http.Client
	attempts   int
}

// NewChannel creates a channel for the backend at baseURL (the stream
// lives next to the REST API, outside the /api prefix).
func NewChannel(baseURL string, token TokenSource, hub *Hub) *Channel {
	return &Channel{
		streamURL: strings.TrimSuffix(strings.TrimRight(baseURL, "/"), "/api") + "/hubs/notificaciones",
		token:     token,
		hub:       hub,
		// No overall timeout: the stream is meant to stay open.
		httpClient: &http.Client{},
	}
}

// Run connects and keeps reconnecting until the context is cancelled or
// the attempt budget is spent. Delays grow as min(1s * 2^n, 30s); a
// successful connection resets the budget.
func (c *Channel) Run(ctx context.Context) {
	for {
		err := c.connect(ctx)
		if ctx.Err() != nil {
			return
		}
		c.attempts++
		if c.attempts > maxReconnectAttempts {
			slog.Warn("push_event", "event", "giving_up", "attempts", c.attempts-1)
			return
		}
		delay := reconnectDelay(c.attempts)
		slog.Info("push_event", "event", "reconnecting", "attempt", c.attempts, "delay", delay, "error", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// connect opens the stream and pumps notifications until it drops.
// POST: returns the transport error that ended the stream
func (c *Channel) connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.streamURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream rechazado: %d", resp.StatusCode)
	}

	slog.Info("push_event", "event", "connected", "url", c.streamURL)
	c.attempts = 0

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		payload, ok := strings.CutPrefix(line, "data:")
		if !ok {
			continue
		}
		payload = strings.TrimSpace(payload)
		if payload == "" {
			continue
		}
		var n Notification
		if err := json.Unmarshal([]byte(payload), &n); err != nil {
			slog.Warn("push_event", "event", "bad_payload", "error", err)
			continue
		}
		c.hub.Publish(n)
	}
	return scanner.Err()
}

// reconnectDelay computes the nth backoff delay, starting at one second.
func reconnectDelay(attempt int) time.Duration {
	delay := time.Second << (attempt - 1)
	if delay > maxReconnectDelay || delay <= 0 {
		return maxReconnectDelay
	}
	return delay
}
