// Package notify sends WhatsApp alerts about filing completeness via a
// WAHA gateway.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/berkasflow/berkasflow/internal/common"
)

// Config holds WAHA gateway settings.
type Config struct {
	APIURL  string        `mapstructure:"api_url" yaml:"api_url"`
	APIKey  string        `mapstructure:"api_key" yaml:"api_key"`
	Session string        `mapstructure:"session" yaml:"session"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// DefaultConfig returns gateway settings matching a local WAHA instance.
func DefaultConfig() Config {
	return Config{
		APIURL:  "http://localhost:3000",
		Session: "default",
		Timeout: 30 * time.Second,
	}
}

// WAHANotifier sends text messages through the WAHA sendText endpoint.
type WAHANotifier struct {
	client *http.Client
	config Config
	logger *slog.Logger
}

// NewWAHANotifier creates a notifier for the configured gateway.
func NewWAHANotifier(cfg Config) (*WAHANotifier, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("%w: WAHA API URL", common.ErrMissingConfig)
	}
	if cfg.Session == "" {
		cfg.Session = "default"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &WAHANotifier{
		client: &http.Client{Timeout: cfg.Timeout},
		config: cfg,
		logger: slog.Default().With("component", "notify"),
	}, nil
}

type sendTextRequest struct {
	ChatID  string `json:"chatId"`
	Text    string `json:"text"`
	Session string `json:"session"`
}

// Send delivers a message to the recipient's WhatsApp number.
func (w *WAHANotifier) Send(ctx context.Context, recipient, message string) error {
	if recipient == "" {
		return fmt.Errorf("%w: recipient", common.ErrMissingConfig)
	}

	payload, err := json.Marshal(sendTextRequest{
		ChatID:  recipient + "@c.us",
		Text:    message,
		Session: w.config.Session,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		w.config.APIURL+"/api/sendText", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.config.APIKey != "" {
		req.Header.Set("x-api-key", w.config.APIKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return common.NewRetryableError(fmt.Errorf("WAHA request failed: %w", err), true)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 300 {
		err := fmt.Errorf("WAHA returned status %d", resp.StatusCode)
		if resp.StatusCode >= 500 {
			return common.NewRetryableError(err, true)
		}
		return err
	}

	w.logger.Info("notification sent", "recipient", recipient)
	return nil
}
