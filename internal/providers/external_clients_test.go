package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Na1awut/NDLP/internal/models"
	"github.com/Na1awut/NDLP/internal/structures"
)

func jsonDecode(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func externalConfig(extractor, composer, notifier string) *structures.Config {
	return &structures.Config{
		External: structures.ExternalConfig{
			ExtractorURL: extractor,
			ComposerURL:  composer,
			NotifierURL:  notifier,
			Timeout:      2 * time.Second,
		},
	}
}

func TestExtractor_UnconfiguredReturnsNeutral(t *testing.T) {
	e := NewExtractorProvider(externalConfig("", "", ""), &cacheTestLogger{})

	f, err := e.Extract(context.Background(), "whatever")
	require.NoError(t, err)
	assert.Equal(t, models.NeutralFeatures(), f)
}

func TestExtractor_ParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valence":-0.8,"arousal":0.9,"dominance":0.3,"intent":"venting","uncertainty":0.4,"confidence":0.95}`))
	}))
	defer srv.Close()

	e := NewExtractorProvider(externalConfig(srv.URL, "", ""), &cacheTestLogger{})
	f, err := e.Extract(context.Background(), "today was awful")
	require.NoError(t, err)
	assert.Equal(t, -0.8, f.Valence)
	assert.Equal(t, models.IntentVenting, f.Intent)
	assert.Equal(t, 0.95, f.Confidence)
}

func TestExtractor_ServerErrorDegradesToNeutral(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	e := NewExtractorProvider(externalConfig(srv.URL, "", ""), &cacheTestLogger{})
	f, err := e.Extract(context.Background(), "hi")
	assert.ErrorIs(t, err, models.ErrExtractionFailed)
	assert.Equal(t, models.NeutralFeatures(), f)
}

func TestComposer_UnconfiguredServesFallback(t *testing.T) {
	c := NewComposerProvider(externalConfig("", "", ""), &cacheTestLogger{})

	reply, err := c.Compose(context.Background(), "hi", models.NeutralFeatures(), models.Directive{})
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestComposer_ForwardsDirective(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req composeRequest
		require.NoError(t, jsonDecode(r, &req))
		assert.Equal(t, models.ToneGentleProtective, req.Directive.Tone)
		_, _ = w.Write([]byte(`{"text":"I'm right here with you."}`))
	}))
	defer srv.Close()

	c := NewComposerProvider(externalConfig("", srv.URL, ""), &cacheTestLogger{})
	reply, err := c.Compose(context.Background(), "hi", models.NeutralFeatures(), models.Directive{Tone: models.ToneGentleProtective})
	require.NoError(t, err)
	assert.Equal(t, "I'm right here with you.", reply)
}

func TestComposer_EmptyTextFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text":""}`))
	}))
	defer srv.Close()

	c := NewComposerProvider(externalConfig("", srv.URL, ""), &cacheTestLogger{})
	reply, err := c.Compose(context.Background(), "hi", models.NeutralFeatures(), models.Directive{})
	assert.ErrorIs(t, err, models.ErrCompositionFailed)
	assert.Equal(t, FallbackReply, reply)
}

func TestNotifier_UnconfiguredLogsOnly(t *testing.T) {
	n := NewNotifierProvider(externalConfig("", "", ""), &cacheTestLogger{})
	assert.NoError(t, n.Deliver(context.Background(), models.AlertPayload{Identity: "id-1", Energy: -8}))
}

func TestNotifier_PostsPayload(t *testing.T) {
	var got models.AlertPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, jsonDecode(r, &got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := NewNotifierProvider(externalConfig("", "", srv.URL), &cacheTestLogger{})
	err := n.Deliver(context.Background(), models.AlertPayload{Identity: "id-1", Energy: -7.5, Platform: "telegram"})
	require.NoError(t, err)
	assert.Equal(t, models.IdentityID("id-1"), got.Identity)
	assert.Equal(t, -7.5, got.Energy)
}

func TestNotifier_ErrorStatusSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewNotifierProvider(externalConfig("", "", srv.URL), &cacheTestLogger{})
	err := n.Deliver(context.Background(), models.AlertPayload{})
	assert.ErrorIs(t, err, models.ErrAlertDispatchFailed)
}
