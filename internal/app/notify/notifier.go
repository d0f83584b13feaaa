package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Notifier posts fire-and-forget status callbacks to an automation
// endpoint. It exists purely for external observability: every failure is
// swallowed, and pipeline correctness never depends on a callback landing.
type Notifier struct {
	webhookURL string
	client     *http.Client
	log        *zap.Logger
}

type payload struct {
	Status    string `json:"status"`
	Filename  string `json:"filename"`
	Details   string `json:"details"`
	Timestamp string `json:"timestamp"`
}

// NewNotifier creates a Notifier. An empty webhookURL disables callbacks.
func NewNotifier(webhookURL string, timeout time.Duration, log *zap.Logger) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: timeout},
		log:        log.Named("notify"),
	}
}

// Notify posts {status, filename, details, timestamp}. The response is
// ignored; transport errors and non-2xx statuses are logged at debug level
// and otherwise discarded.
func (n *Notifier) Notify(status, filename, details string) {
	if n.webhookURL == "" {
		return
	}

	body, err := json.Marshal(payload{
		Status:    status,
		Filename:  filename,
		Details:   details,
		Timestamp: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		n.log.Debug("webhook delivery failed", zap.String("filename", filename), zap.Error(err))
		return
	}
	resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		n.log.Debug("webhook rejected", zap.Int("status", resp.StatusCode), zap.String("filename", filename))
	}
}
