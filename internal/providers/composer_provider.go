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

// FallbackReply is served whenever composition fails or no composer is
// configured. It must stay generic and supportive.
const FallbackReply = "I'm here with you. Tell me more whenever you're ready."

// ComposerInterface is the black-box response generator. Same failure
// posture as extraction: non-retryable per message, degrade to the
// fallback reply.
type ComposerInterface interface {
	Compose(ctx context.Context, message string, features models.EmotionFeatures, directive models.Directive) (string, error)
}

type HTTPComposer struct {
	url    string
	client *http.Client
}

func NewComposerProvider(conf *structures.Config, logger Logger) ComposerInterface {
	if conf.External.ComposerURL == "" {
		logger.Infof(TypeApp, "No composer configured, serving the fallback reply")
		return &staticComposer{}
	}
	return &HTTPComposer{
		url:    conf.External.ComposerURL,
		client: &http.Client{Timeout: conf.External.Timeout},
	}
}

type composeRequest struct {
	Text      string                 `json:"text"`
	Features  models.EmotionFeatures `json:"features"`
	Directive models.Directive       `json:"directive"`
}

type composeResponse struct {
	Text string `json:"text"`
}

func (c *HTTPComposer) Compose(ctx context.Context, message string, features models.EmotionFeatures, directive models.Directive) (string, error) {
	body, err := json.Marshal(composeRequest{Text: message, Features: features, Directive: directive})
	if err != nil {
		return FallbackReply, fmt.Errorf("%w: %v", models.ErrCompositionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return FallbackReply, fmt.Errorf("%w: %v", models.ErrCompositionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return FallbackReply, fmt.Errorf("%w: %v", models.ErrCompositionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FallbackReply, fmt.Errorf("%w: composer returned %d", models.ErrCompositionFailed, resp.StatusCode)
	}

	var out composeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return FallbackReply, fmt.Errorf("%w: %v", models.ErrCompositionFailed, err)
	}
	if out.Text == "" {
		return FallbackReply, fmt.Errorf("%w: empty composition", models.ErrCompositionFailed)
	}
	return out.Text, nil
}

type staticComposer struct{}

func (s *staticComposer) Compose(_ context.Context, _ string, _ models.EmotionFeatures, _ models.Directive) (string, error) {
	return FallbackReply, nil
}
