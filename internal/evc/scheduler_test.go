package evc

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Na1awut/NDLP/internal/providers"
	"github.com/Na1awut/NDLP/internal/structures"
	"github.com/Na1awut/NDLP/internal/testutil"
)

type mockSweeper struct {
	calls int
}

func (m *mockSweeper) SweepExpiredTokens(_ time.Time) int {
	m.calls++
	return 0
}

func schedulerTestConfig(filePath string) *structures.Config {
	return &structures.Config{
		Persistence: structures.Persistence{
			FilePath:     filePath,
			SaveInterval: time.Hour,
		},
		Token: structures.TokenConfig{
			SweepInterval: time.Hour,
		},
	}
}

func noopMetrics() providers.MetricsProviderInterface {
	return providers.NewMetricsProvider(&structures.Config{})
}

func TestScheduler_Restore_MissingFileIsCleanBoot(t *testing.T) {
	snap := &testutil.MockSnapshotter{}
	fm := NewFileManager(&testutil.MockCompressor{}, snap, &testutil.MockLogger{})
	s := NewScheduler(schedulerTestConfig("/nonexistent/evc.dat"), &testutil.MockLogger{}, noopMetrics(), &mockSweeper{}, fm)

	require.NoError(t, s.Restore())
	assert.Equal(t, 0, snap.PutCalls)
}

func TestScheduler_RestoreAfterPersist(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "evc.dat")

	source := &testutil.MockSnapshotter{Snapshot: sampleStorage()}
	fm := NewFileManager(&testutil.MockCompressor{}, source, &testutil.MockLogger{})
	s := NewScheduler(schedulerTestConfig(path), &testutil.MockLogger{}, noopMetrics(), &mockSweeper{}, fm)

	require.NoError(t, s.Persist())
	_, err := os.Stat(path)
	require.NoError(t, err)

	target := &testutil.MockSnapshotter{}
	fm2 := NewFileManager(&testutil.MockCompressor{}, target, &testutil.MockLogger{})
	s2 := NewScheduler(schedulerTestConfig(path), &testutil.MockLogger{}, noopMetrics(), &mockSweeper{}, fm2)

	require.NoError(t, s2.Restore())
	assert.Equal(t, 1, target.PutCalls)
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	snap := &testutil.MockSnapshotter{}
	fm := NewFileManager(&testutil.MockCompressor{}, snap, &testutil.MockLogger{})
	s := NewScheduler(schedulerTestConfig(""), &testutil.MockLogger{}, noopMetrics(), &mockSweeper{}, fm)

	// Stop before Init must not panic.
	s.Stop()
}
