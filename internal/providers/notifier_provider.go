package providers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/Na1awut/NDLP/internal/models"
	"github.com/Na1awut/NDLP/internal/structures"
)

// NotifierInterface delivers crisis alerts. Fire-and-forget from the
// engine's perspective: a delivery failure is logged and never touches the
// conversational reply.
type NotifierInterface interface {
	Deliver(ctx context.Context, payload models.AlertPayload) error
}

type HTTPNotifier struct {
	url    string
	client *http.Client
}

func NewNotifierProvider(conf *structures.Config, logger Logger) NotifierInterface {
	if conf.External.NotifierURL == "" {
		logger.Warnf(TypeApp, "No notifier configured, crisis alerts are log-only")
		return &logNotifier{logger: logger}
	}
	return &HTTPNotifier{
		url:    conf.External.NotifierURL,
		client: &http.Client{Timeout: conf.External.Timeout},
	}
}

func (n *HTTPNotifier) Deliver(ctx context.Context, payload models.AlertPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrAlertDispatchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrAlertDispatchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrAlertDispatchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("%w: notifier returned %d", models.ErrAlertDispatchFailed, resp.StatusCode)
	}
	return nil
}

type logNotifier struct {
	logger Logger
}

func (l *logNotifier) Deliver(_ context.Context, payload models.AlertPayload) error {
	l.logger.Warnf(TypeApp, "CRISIS ALERT identity=%s E=%.2f zone=%s platform=%s", payload.Identity, payload.Energy, payload.Zone, payload.Platform)
	return nil
}
