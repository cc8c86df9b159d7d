package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/Na1awut/NDLP/internal/models"
	"github.com/Na1awut/NDLP/internal/providers"
	"github.com/Na1awut/NDLP/internal/services"
	"github.com/Na1awut/NDLP/internal/structures"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	config *structures.Config
	logger providers.Logger
	engine services.EngineServiceInterface
	cache  providers.CacheProviderInterface
}

func NewApiController(config *structures.Config, logger providers.Logger, engine services.EngineServiceInterface, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		config: config,
		logger: logger,
		engine: engine,
		cache:  cache,
	}
}

// writeError maps pipeline error kinds to HTTP statuses.
func (ac *ApiController) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrIdentityNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
	case errors.Is(err, models.ErrTokenNotFound):
		http.Error(w, "Token Not Found", http.StatusNotFound)
	case errors.Is(err, models.ErrTokenExpired):
		http.Error(w, "Token Expired", http.StatusGone)
	case errors.Is(err, models.ErrTokenAlreadyUsed):
		http.Error(w, "Token Already Used", http.StatusConflict)
	case errors.Is(err, models.ErrTokenGenerationExhausted):
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
	case errors.Is(err, models.ErrLockTimeout):
		http.Error(w, "Busy, Retry Later", http.StatusServiceUnavailable)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// statusCacheKey is keyed by the canonical identity, not the platform
// binding, so one invalidation covers every platform of a linked user.
func statusCacheKey(id models.IdentityID) string {
	return "status:" + string(id)
}

// Process scores one message and returns the composed reply.
func (ac *ApiController) Process(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload models.ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Platform == "" || payload.UserID == "" || payload.Message == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	resp, err := ac.engine.Process(r.Context(), &payload)
	if err != nil {
		ac.writeError(w, err)
		return
	}

	ac.cache.Del(statusCacheKey(resp.Identity))
	ac.writeJSON(w, http.StatusOK, resp)
}

// Status reports the current state without mutating it. Responses are
// cached briefly under the identity key; any write to the identity,
// from any of its platforms, invalidates the same entry.
func (ac *ApiController) Status(w http.ResponseWriter, r *http.Request) {
	platform := r.URL.Query().Get("platform")
	userID := r.URL.Query().Get("user_id")
	if platform == "" || userID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id, ok := ac.engine.LookupIdentity(platform, userID)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	ac.serveFromCacheOrCompute(w, statusCacheKey(id), func() (any, error) {
		return ac.engine.Status(platform, userID)
	})
}

type tokenRequest struct {
	Platform string `json:"platform"`
	UserID   string `json:"user_id"`
}

type linkRequest struct {
	Code     string `json:"code"`
	Platform string `json:"platform"`
	UserID   string `json:"user_id"`
}

func (ac *ApiController) GetToken(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Platform == "" || payload.UserID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	resp, err := ac.engine.IssueLinkToken(payload.Platform, payload.UserID)
	if err != nil {
		ac.writeError(w, err)
		return
	}
	ac.writeJSON(w, http.StatusCreated, resp)
}

func (ac *ApiController) Link(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload linkRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Code == "" || payload.Platform == "" || payload.UserID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	resp, err := ac.engine.Link(r.Context(), payload.Code, payload.Platform, payload.UserID)
	if err != nil {
		ac.writeError(w, err)
		return
	}

	ac.cache.Del(statusCacheKey(resp.Identity))
	ac.writeJSON(w, http.StatusOK, resp)
}

// Reset is an operator action and requires the admin key.
func (ac *ApiController) Reset(w http.ResponseWriter, r *http.Request) {
	if ac.config.Admin.Key == "" || r.Header.Get("X-Admin-Key") != ac.config.Admin.Key {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if payload.Platform == "" || payload.UserID == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id, ok := ac.engine.LookupIdentity(payload.Platform, payload.UserID)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if err := ac.engine.Reset(r.Context(), payload.Platform, payload.UserID); err != nil {
		ac.writeError(w, err)
		return
	}

	ac.cache.Del(statusCacheKey(id))
	w.WriteHeader(http.StatusNoContent)
}
