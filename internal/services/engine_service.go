package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/atomic"

	"github.com/Na1awut/NDLP/internal/evc"
	"github.com/Na1awut/NDLP/internal/models"
	"github.com/Na1awut/NDLP/internal/providers"
	"github.com/Na1awut/NDLP/internal/structures"
)

type EngineServiceInterface interface {
	Process(ctx context.Context, req *models.ProcessRequest) (*models.ProcessResponse, error)
	LookupIdentity(platform, userID string) (models.IdentityID, bool)
	Status(platform, userID string) (*models.StatusResponse, error)
	IssueLinkToken(platform, userID string) (*models.TokenResponse, error)
	Link(ctx context.Context, code, platform, userID string) (*models.LinkResponse, error)
	Reset(ctx context.Context, platform, userID string) error

	// EngineStats, exported as gauges.
	ProcessedTotal() int64
	IdentityCount() int
	LiveTokenCount() int
}

// EngineService drives the whole per-message pipeline. Feature extraction
// and response composition run outside the identity's critical section;
// only the state transition itself runs inside it.
type EngineService struct {
	config    *structures.Config
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
	registry  RegistryServiceInterface
	extractor providers.ExtractorInterface
	composer  providers.ComposerInterface
	notifier  providers.NotifierInterface

	updater *evc.Updater
	decider *evc.Decider
	mirror  *evc.Mirror

	processed atomic.Int64
}

func NewEngineService(
	config *structures.Config,
	logger providers.Logger,
	metrics providers.MetricsProviderInterface,
	registry RegistryServiceInterface,
	extractor providers.ExtractorInterface,
	composer providers.ComposerInterface,
	notifier providers.NotifierInterface,
) EngineServiceInterface {
	engine := &EngineService{
		config:    config,
		logger:    logger,
		metrics:   metrics,
		registry:  registry,
		extractor: extractor,
		composer:  composer,
		notifier:  notifier,
		updater:   evc.NewUpdater(config.EVC, evc.NewDeltaPolicy(config.EVC)),
		decider:   evc.NewDecider(config.EVC),
		mirror:    evc.NewMirror(),
	}
	metrics.RegisterEngine(engine)
	return engine
}

// Process scores one inbound message and produces the reply. Extraction
// failure degrades to the neutral vector, composition failure to the fixed
// fallback reply; neither aborts the state update.
func (e *EngineService) Process(ctx context.Context, req *models.ProcessRequest) (*models.ProcessResponse, error) {
	now := time.Now()
	id := e.registry.Resolve(req.Platform, req.UserID, now)

	features, err := e.extractor.Extract(ctx, req.Message)
	degraded := err != nil
	if degraded {
		e.metrics.IncExtractionFallbacks()
		e.logger.Warnf(providers.TypeApp, "Extraction degraded for %s: %s", id, err)
	}

	var (
		view      models.StateView
		alert     *models.AlertPayload
		botTone   models.BotTone
		finalID   models.IdentityID
		raised    bool
		energyNow float64
	)
	err = e.registry.WithState(ctx, id, func(cur models.IdentityID, st *models.EmotionalState, rec *models.AlertRecord) error {
		finalID = cur

		forces := evc.ComputeForces(features, st)
		e.updater.Apply(st, features, forces, now)
		st.Flags = evc.UpdateFlags(features, st.E, e.config.EVC.AlertThreshold)
		st.Zone = evc.ClassifyZone(st.E, st.Zone, e.config.EVC.ZoneDeadband)
		st.Phase = evc.ClassifyPhase(st.History, e.config.EVC.PhaseSlope, e.config.EVC.AlertThreshold)
		e.mirror.Update(&st.Mirror, st.E)
		botTone = e.mirror.Tone(st.Mirror)

		raised, alert = e.decider.Decide(cur, st, rec, req.Platform, now)
		if !raised && st.E <= e.config.EVC.AlertThreshold {
			e.metrics.IncAlertsSuppressed()
		}

		energyNow = st.E
		view = stateView(st)
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrLockTimeout) {
			e.metrics.IncLockTimeouts()
		}
		return nil, err
	}

	if raised {
		e.metrics.IncAlertsRaised()
		go e.dispatchAlert(*alert)
	}

	directive := evc.GeneratePolicy(view.Zone, view.Phase, botTone, raised)
	view.Tone = directive.Tone
	view.BotTone = directive.BotTone

	reply, err := e.composer.Compose(ctx, req.Message, features, directive)
	if err != nil {
		e.metrics.IncCompositionFallbacks()
		e.logger.Warnf(providers.TypeApp, "Composition degraded for %s: %s", finalID, err)
		degraded = true
	}

	e.processed.Inc()
	e.metrics.IncMessagesProcessed(req.Platform)
	e.metrics.ObserveEnergy(energyNow)

	return &models.ProcessResponse{
		Reply:       reply,
		Identity:    finalID,
		State:       view,
		AlertRaised: raised,
		Degraded:    degraded,
	}, nil
}

// dispatchAlert delivers the crisis alert off the request path. The
// cool-down stamp is already committed, so a delivery failure is only
// logged; it is never surfaced to the conversation.
func (e *EngineService) dispatchAlert(payload models.AlertPayload) {
	ctx, cancel := context.WithTimeout(context.Background(), e.config.External.Timeout)
	defer cancel()
	if err := e.notifier.Deliver(ctx, payload); err != nil {
		e.logger.Errorf(providers.TypeApp, "Alert delivery failed for %s: %s", payload.Identity, err)
		return
	}
	e.logger.Warnf(providers.TypeApp, "Crisis alert dispatched for %s (E=%.2f)", payload.Identity, payload.Energy)
}

// LookupIdentity resolves without creating; unknown pairs report false.
func (e *EngineService) LookupIdentity(platform, userID string) (models.IdentityID, bool) {
	return e.registry.Lookup(platform, userID)
}

// Status is read-only: a never-seen (platform, user) pair is reported as
// not found instead of allocating an identity for it.
func (e *EngineService) Status(platform, userID string) (*models.StatusResponse, error) {
	id, found := e.registry.Lookup(platform, userID)
	if !found {
		return nil, models.ErrIdentityNotFound
	}
	cur, st, _, ok := e.registry.ReadState(id)
	if !ok {
		return nil, models.ErrIdentityResolution
	}
	view := stateView(st)
	view.Tone = evc.GeneratePolicy(st.Zone, st.Phase, e.mirror.Tone(st.Mirror), false).Tone
	view.BotTone = e.mirror.Tone(st.Mirror)
	return &models.StatusResponse{
		Identity:    cur,
		State:       view,
		Platforms:   e.registry.PlatformsOf(cur),
		LastUpdated: st.LastUpdated,
	}, nil
}

func (e *EngineService) IssueLinkToken(platform, userID string) (*models.TokenResponse, error) {
	tok, err := e.registry.IssueToken(platform, userID, time.Now())
	if err != nil {
		return nil, err
	}
	return &models.TokenResponse{Code: tok.Code, ExpiresAt: tok.ExpiresAt}, nil
}

func (e *EngineService) Link(ctx context.Context, code, platform, userID string) (*models.LinkResponse, error) {
	id, err := e.registry.RedeemToken(ctx, code, platform, userID, time.Now())
	if err != nil {
		if errors.Is(err, models.ErrLockTimeout) {
			e.metrics.IncLockTimeouts()
		}
		return nil, err
	}
	return &models.LinkResponse{Identity: id, Linked: true}, nil
}

func (e *EngineService) Reset(ctx context.Context, platform, userID string) error {
	id, found := e.registry.Lookup(platform, userID)
	if !found {
		return models.ErrIdentityNotFound
	}
	return e.registry.Reset(ctx, id, time.Now())
}

func (e *EngineService) ProcessedTotal() int64 { return e.processed.Load() }
func (e *EngineService) IdentityCount() int    { return e.registry.IdentityCount() }
func (e *EngineService) LiveTokenCount() int   { return e.registry.LiveTokenCount() }

func stateView(st *models.EmotionalState) models.StateView {
	view := models.StateView{
		E:      st.E,
		DeltaE: st.DeltaE,
		Zone:   st.Zone,
		Phase:  st.Phase,
		Turn:   st.Turn,
		Flags:  st.Flags,
	}
	if st.Hormones != nil {
		view.Dominant = evc.DominantState(st.Hormones)
	}
	return view
}
