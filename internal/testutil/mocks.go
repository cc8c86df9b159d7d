package testutil

import (
	"context"
	"sync"

	"github.com/Na1awut/NDLP/internal/models"
	"github.com/Na1awut/NDLP/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockCache implements providers.CacheProviderInterface with a plain map.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

// MockExtractor implements providers.ExtractorInterface with a fixed
// feature vector or a fixed error.
type MockExtractor struct {
	Features models.EmotionFeatures
	Err      error
	Calls    int
}

func (m *MockExtractor) Extract(_ context.Context, _ string) (models.EmotionFeatures, error) {
	m.Calls++
	if m.Err != nil {
		return models.NeutralFeatures(), m.Err
	}
	return m.Features, nil
}

// MockComposer implements providers.ComposerInterface and records the last
// directive it was handed.
type MockComposer struct {
	Reply         string
	Err           error
	LastDirective models.Directive
}

func (m *MockComposer) Compose(_ context.Context, _ string, _ models.EmotionFeatures, directive models.Directive) (string, error) {
	m.LastDirective = directive
	if m.Err != nil {
		return "fallback", m.Err
	}
	return m.Reply, nil
}

// MockNotifier implements providers.NotifierInterface and collects the
// delivered payloads.
type MockNotifier struct {
	mu        sync.Mutex
	Delivered []models.AlertPayload
	Err       error
}

func (m *MockNotifier) Deliver(_ context.Context, payload models.AlertPayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Delivered = append(m.Delivered, payload)
	return nil
}

func (m *MockNotifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Delivered)
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockSnapshotter implements interfaces.Snapshotter around a plain Storage.
type MockSnapshotter struct {
	mu       sync.Mutex
	Snapshot *models.Storage
	PutCalls int
}

func (m *MockSnapshotter) GetSnapshot() *models.Storage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Snapshot == nil {
		return models.NewStorage()
	}
	return m.Snapshot
}

func (m *MockSnapshotter) PutSnapshot(s *models.Storage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshot = s
	m.PutCalls++
}
