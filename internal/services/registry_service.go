package services

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/Na1awut/NDLP/internal/evc"
	"github.com/Na1awut/NDLP/internal/models"
	"github.com/Na1awut/NDLP/internal/providers"
	"github.com/Na1awut/NDLP/internal/structures"
)

// 32 characters so a random byte masked to 5 bits indexes without bias.
// I, O, 0 and 1 are left out to keep codes unambiguous when read aloud.
const tokenAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type RegistryServiceInterface interface {
	Resolve(platform, userID string, now time.Time) models.IdentityID
	Lookup(platform, userID string) (models.IdentityID, bool)
	PlatformsOf(id models.IdentityID) []string
	IssueToken(platform, userID string, now time.Time) (models.LinkToken, error)
	RedeemToken(ctx context.Context, code, platform, userID string, now time.Time) (models.IdentityID, error)
	WithState(ctx context.Context, id models.IdentityID, fn func(id models.IdentityID, st *models.EmotionalState, rec *models.AlertRecord) error) error
	ReadState(id models.IdentityID) (models.IdentityID, *models.EmotionalState, *models.AlertRecord, bool)
	Reset(ctx context.Context, id models.IdentityID, now time.Time) error
	IdentityCount() int
	LiveTokenCount() int
	SweepExpiredTokens(now time.Time) int
	GetSnapshot() *models.Storage
	PutSnapshot(s *models.Storage)
}

// identityEntry couples one identity's mutable record with its exclusive
// critical section. The weighted semaphore gives a context-bounded wait,
// which a plain mutex cannot.
type identityEntry struct {
	sem   *semaphore.Weighted
	state *models.EmotionalState
	alert *models.AlertRecord
}

func newIdentityEntry(now time.Time) *identityEntry {
	return &identityEntry{
		sem:   semaphore.NewWeighted(1),
		state: models.NewNeutralState(now),
		alert: &models.AlertRecord{},
	}
}

// RegistryService owns the identity graph: canonical identities, platform
// bindings, link tokens and the per-identity state records. The registry
// mutex guards the maps only; state records are guarded by their entry's
// semaphore and the mutex is never held while waiting on a semaphore.
type RegistryService struct {
	config *structures.Config
	logger providers.Logger

	mu         sync.RWMutex
	identities map[models.IdentityID]*models.CanonicalIdentity
	bindings   map[string]models.IdentityID
	entries    map[models.IdentityID]*identityEntry
	tokens     map[string]*models.LinkToken
}

func NewRegistryService(config *structures.Config, logger providers.Logger) RegistryServiceInterface {
	return &RegistryService{
		config:     config,
		logger:     logger,
		identities: make(map[models.IdentityID]*models.CanonicalIdentity),
		bindings:   make(map[string]models.IdentityID),
		entries:    make(map[models.IdentityID]*identityEntry),
		tokens:     make(map[string]*models.LinkToken),
	}
}

// canonicalLocked follows the merge chain to the surviving identity.
// Requires at least a read lock on s.mu.
func (s *RegistryService) canonicalLocked(id models.IdentityID) models.IdentityID {
	for {
		ident, ok := s.identities[id]
		if !ok || !ident.Retired || ident.MergedInto == "" {
			return id
		}
		id = ident.MergedInto
	}
}

// Resolve maps a (platform, user) pair to its canonical identity, creating
// one on first contact.
func (s *RegistryService) Resolve(platform, userID string, now time.Time) models.IdentityID {
	key := models.BindingKey(platform, userID)

	s.mu.RLock()
	if id, ok := s.bindings[key]; ok {
		id = s.canonicalLocked(id)
		s.mu.RUnlock()
		return id
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.bindings[key]; ok {
		return s.canonicalLocked(id)
	}
	id := models.NewIdentityID()
	s.identities[id] = &models.CanonicalIdentity{ID: id, CreatedAt: now}
	s.bindings[key] = id
	s.entries[id] = newIdentityEntry(now)
	s.logger.Infof(providers.TypeApp, "New identity %s for %s", id, key)
	return id
}

// Lookup resolves an existing binding without creating one; read-only
// queries use it so they cannot grow the identity table.
func (s *RegistryService) Lookup(platform, userID string) (models.IdentityID, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.bindings[models.BindingKey(platform, userID)]
	if !ok {
		return "", false
	}
	return s.canonicalLocked(id), true
}

func (s *RegistryService) PlatformsOf(id models.IdentityID) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id = s.canonicalLocked(id)
	var platforms []string
	for key, bound := range s.bindings {
		if s.canonicalLocked(bound) != id {
			continue
		}
		if i := strings.IndexByte(key, ':'); i > 0 {
			platforms = append(platforms, key[:i])
		}
	}
	return platforms
}

// acquire takes the entry's critical section, waiting at most the
// configured acquire timeout.
func (s *RegistryService) acquire(ctx context.Context, e *identityEntry) error {
	acquireCtx, cancel := context.WithTimeout(ctx, s.config.Lock.AcquireTimeout)
	defer cancel()
	if err := e.sem.Acquire(acquireCtx, 1); err != nil {
		return fmt.Errorf("%w: %v", models.ErrLockTimeout, err)
	}
	return nil
}

// WithState runs fn inside the identity's exclusive critical section. If
// the identity was merged away while waiting, the call transparently
// retries on the survivor. Once the section is entered, fn runs to
// completion regardless of the caller's context.
func (s *RegistryService) WithState(ctx context.Context, id models.IdentityID, fn func(id models.IdentityID, st *models.EmotionalState, rec *models.AlertRecord) error) error {
	for {
		s.mu.RLock()
		id = s.canonicalLocked(id)
		e := s.entries[id]
		s.mu.RUnlock()
		if e == nil {
			return fmt.Errorf("%w: unknown identity %s", models.ErrIdentityResolution, id)
		}

		if err := s.acquire(ctx, e); err != nil {
			return err
		}

		s.mu.RLock()
		current := s.canonicalLocked(id)
		s.mu.RUnlock()
		if current != id {
			e.sem.Release(1)
			id = current
			continue
		}

		err := fn(id, e.state, e.alert)
		e.sem.Release(1)
		return err
	}
}

// ReadState returns a deep copy of the identity's record without entering
// the critical section queue; it briefly takes the section itself.
func (s *RegistryService) ReadState(id models.IdentityID) (models.IdentityID, *models.EmotionalState, *models.AlertRecord, bool) {
	var (
		state *models.EmotionalState
		alert models.AlertRecord
		out   models.IdentityID
	)
	err := s.WithState(context.Background(), id, func(cur models.IdentityID, st *models.EmotionalState, rec *models.AlertRecord) error {
		out = cur
		state = st.Clone()
		alert = *rec
		return nil
	})
	if err != nil {
		return "", nil, nil, false
	}
	return out, state, &alert, true
}

// Reset returns the identity to the neutral baseline. The alert record is
// deliberately preserved so a reset cannot defeat the alert cool-down.
func (s *RegistryService) Reset(ctx context.Context, id models.IdentityID, now time.Time) error {
	return s.WithState(ctx, id, func(_ models.IdentityID, st *models.EmotionalState, _ *models.AlertRecord) error {
		*st = *models.NewNeutralState(now)
		return nil
	})
}

func (s *RegistryService) generateCode() (string, error) {
	buf := make([]byte, s.config.Token.Length)
	if _, err := crand.Read(buf); err != nil {
		return "", err
	}
	for i, b := range buf {
		buf[i] = tokenAlphabet[b&31]
	}
	return string(buf), nil
}

// IssueToken mints a single-use link code owned by the caller's identity.
// Collisions with a live code are retried a bounded number of times.
func (s *RegistryService) IssueToken(platform, userID string, now time.Time) (models.LinkToken, error) {
	owner := s.Resolve(platform, userID, now)

	s.mu.Lock()
	defer s.mu.Unlock()
	for attempt := 0; attempt < s.config.Token.MaxAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return models.LinkToken{}, err
		}
		if existing, ok := s.tokens[code]; ok && !existing.Used && !existing.Expired(now) {
			continue
		}
		tok := &models.LinkToken{
			Code:      code,
			Owner:     owner,
			IssuedAt:  now,
			ExpiresAt: now.Add(s.config.Token.TTL),
		}
		s.tokens[code] = tok
		return *tok, nil
	}
	return models.LinkToken{}, models.ErrTokenGenerationExhausted
}

// RedeemToken binds (platform, userID) to the token owner's identity,
// merging the redeemer's existing identity into the owner's when both
// exist. Exactly one concurrent redemption of a code can succeed: the
// token is validated and burned under the registry lock only after both
// state sections are held, so the merge is atomic against Process calls.
func (s *RegistryService) RedeemToken(ctx context.Context, code, platform, userID string, now time.Time) (models.IdentityID, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	key := models.BindingKey(platform, userID)

	for {
		s.mu.RLock()
		tok, ok := s.tokens[code]
		if !ok {
			s.mu.RUnlock()
			return "", models.ErrTokenNotFound
		}
		if tok.Used {
			s.mu.RUnlock()
			return "", models.ErrTokenAlreadyUsed
		}
		if tok.Expired(now) {
			s.mu.RUnlock()
			return "", models.ErrTokenExpired
		}
		owner := s.canonicalLocked(tok.Owner)
		var loser models.IdentityID
		if bound, ok := s.bindings[key]; ok {
			if c := s.canonicalLocked(bound); c != owner {
				loser = c
			}
		}
		ownerEntry := s.entries[owner]
		var loserEntry *identityEntry
		if loser != "" {
			loserEntry = s.entries[loser]
		}
		s.mu.RUnlock()

		if ownerEntry == nil {
			return "", fmt.Errorf("%w: token owner %s has no record", models.ErrIdentityResolution, owner)
		}

		// Both sections are taken in a global order so two concurrent
		// links cannot deadlock each other.
		first, second := ownerEntry, loserEntry
		if loserEntry != nil && loser < owner {
			first, second = loserEntry, ownerEntry
		}
		if err := s.acquire(ctx, first); err != nil {
			return "", err
		}
		if second != nil {
			if err := s.acquire(ctx, second); err != nil {
				first.sem.Release(1)
				return "", err
			}
		}

		done, id, err := s.finishRedeem(code, key, owner, loser, now)
		first.sem.Release(1)
		if second != nil {
			second.sem.Release(1)
		}
		if !done {
			// The graph shifted while we were waiting; re-resolve.
			continue
		}
		return id, err
	}
}

// finishRedeem re-validates and commits the link under the registry lock.
// Returns done=false when the identity graph changed underneath and the
// caller must retry.
func (s *RegistryService) finishRedeem(code, key string, owner, loser models.IdentityID, now time.Time) (bool, models.IdentityID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tok, ok := s.tokens[code]
	if !ok {
		return true, "", models.ErrTokenNotFound
	}
	if tok.Used {
		return true, "", models.ErrTokenAlreadyUsed
	}
	if tok.Expired(now) {
		return true, "", models.ErrTokenExpired
	}
	if s.canonicalLocked(tok.Owner) != owner {
		return false, "", nil
	}
	var currentLoser models.IdentityID
	if bound, ok := s.bindings[key]; ok {
		if c := s.canonicalLocked(bound); c != owner {
			currentLoser = c
		}
	}
	if currentLoser != loser {
		return false, "", nil
	}

	tok.Used = true
	s.bindings[key] = owner

	if loser == "" {
		s.dropStaleBindingsLocked(key, owner)
		s.logger.Infof(providers.TypeApp, "Linked %s to identity %s", key, owner)
		return true, owner, nil
	}

	ownerEntry, loserEntry := s.entries[owner], s.entries[loser]
	evc.MergeStates(ownerEntry.state, loserEntry.state, s.config.EVC.HistorySize)
	evc.MergeAlertRecords(ownerEntry.alert, loserEntry.alert)

	loserIdent := s.identities[loser]
	loserIdent.Retired = true
	loserIdent.MergedInto = owner
	for k, v := range s.bindings {
		if s.canonicalLocked(v) == loser {
			s.bindings[k] = owner
		}
	}
	delete(s.entries, loser)
	s.dropStaleBindingsLocked(key, owner)

	s.logger.Infof(providers.TypeApp, "Merged identity %s into %s via link token", loser, owner)
	return true, owner, nil
}

// dropStaleBindingsLocked enforces one binding per platform: after key is
// bound to owner, any other binding of owner on the same platform is
// replaced, not duplicated. Requires s.mu held for writing.
func (s *RegistryService) dropStaleBindingsLocked(key string, owner models.IdentityID) {
	i := strings.IndexByte(key, ':')
	if i <= 0 {
		return
	}
	prefix := key[:i+1]
	for k, v := range s.bindings {
		if k != key && strings.HasPrefix(k, prefix) && s.canonicalLocked(v) == owner {
			delete(s.bindings, k)
		}
	}
}

func (s *RegistryService) IdentityCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, ident := range s.identities {
		if !ident.Retired {
			n++
		}
	}
	return n
}

func (s *RegistryService) LiveTokenCount() int {
	now := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, tok := range s.tokens {
		if !tok.Used && !tok.Expired(now) {
			n++
		}
	}
	return n
}

// SweepExpiredTokens drops used and expired codes. Returns the number
// removed.
func (s *RegistryService) SweepExpiredTokens(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for code, tok := range s.tokens {
		if tok.Used || tok.Expired(now) {
			delete(s.tokens, code)
			n++
		}
	}
	return n
}

// GetSnapshot deep-copies the whole registry. State records are copied
// inside their critical sections, one identity at a time, so a snapshot
// never observes a half-applied update.
func (s *RegistryService) GetSnapshot() *models.Storage {
	storage := models.NewStorage()

	s.mu.RLock()
	for id, ident := range s.identities {
		c := *ident
		storage.Identities[id] = &c
	}
	for k, v := range s.bindings {
		storage.Bindings[k] = v
	}
	for code, tok := range s.tokens {
		c := *tok
		storage.Tokens[code] = &c
	}
	ids := make([]models.IdentityID, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	for _, id := range ids {
		s.mu.RLock()
		e := s.entries[id]
		s.mu.RUnlock()
		if e == nil {
			continue
		}
		if err := e.sem.Acquire(context.Background(), 1); err != nil {
			continue
		}
		storage.States[id] = e.state.Clone()
		rec := *e.alert
		storage.Alerts[id] = &rec
		e.sem.Release(1)
	}

	return storage
}

// PutSnapshot replaces the registry contents wholesale; used on boot
// before the server accepts traffic.
func (s *RegistryService) PutSnapshot(storage *models.Storage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identities = storage.Identities
	s.bindings = storage.Bindings
	s.tokens = storage.Tokens
	s.entries = make(map[models.IdentityID]*identityEntry, len(storage.States))
	now := time.Now()
	for id, ident := range s.identities {
		if ident.Retired {
			continue
		}
		e := newIdentityEntry(now)
		if st := storage.States[id]; st != nil {
			e.state = st
		}
		if rec := storage.Alerts[id]; rec != nil {
			e.alert = rec
		}
		s.entries[id] = e
	}
}
