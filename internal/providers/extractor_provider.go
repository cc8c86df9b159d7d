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

// ExtractorInterface is the black-box feature extraction model. A failure
// is non-retryable for the message; the caller falls back to the neutral
// vector.
type ExtractorInterface interface {
	Extract(ctx context.Context, message string) (models.EmotionFeatures, error)
}

type HTTPExtractor struct {
	url    string
	client *http.Client
}

func NewExtractorProvider(conf *structures.Config, logger Logger) ExtractorInterface {
	if conf.External.ExtractorURL == "" {
		logger.Infof(TypeApp, "No extractor configured, every message scores neutral")
		return &neutralExtractor{}
	}
	return &HTTPExtractor{
		url:    conf.External.ExtractorURL,
		client: &http.Client{Timeout: conf.External.Timeout},
	}
}

func (e *HTTPExtractor) Extract(ctx context.Context, message string) (models.EmotionFeatures, error) {
	body, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return models.NeutralFeatures(), fmt.Errorf("%w: %v", models.ErrExtractionFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return models.NeutralFeatures(), fmt.Errorf("%w: %v", models.ErrExtractionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return models.NeutralFeatures(), fmt.Errorf("%w: %v", models.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.NeutralFeatures(), fmt.Errorf("%w: extractor returned %d", models.ErrExtractionFailed, resp.StatusCode)
	}

	var features models.EmotionFeatures
	if err := json.NewDecoder(resp.Body).Decode(&features); err != nil {
		return models.NeutralFeatures(), fmt.Errorf("%w: %v", models.ErrExtractionFailed, err)
	}
	return features, nil
}

// neutralExtractor always reports the no-signal vector; used when no
// extractor endpoint is configured.
type neutralExtractor struct{}

func (n *neutralExtractor) Extract(_ context.Context, _ string) (models.EmotionFeatures, error) {
	return models.NeutralFeatures(), nil
}
