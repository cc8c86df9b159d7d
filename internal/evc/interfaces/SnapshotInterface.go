package interfaces

import (
	"time"

	"github.com/Na1awut/NDLP/internal/models"
)

// Snapshotter is implemented by the registry service: it can dump the
// whole logical store and restore it on boot.
type Snapshotter interface {
	GetSnapshot() *models.Storage
	PutSnapshot(s *models.Storage)
}

// TokenSweeper drops expired link tokens; run periodically by the scheduler.
type TokenSweeper interface {
	SweepExpiredTokens(now time.Time) int
}
