package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"diddht/internal/didmanager"
	"diddht/internal/identifier/models"
	"diddht/internal/kms"
	"diddht/internal/platform/metrics"
	"diddht/internal/platform/middleware"
	dErrors "diddht/pkg/domain-errors"
	"diddht/pkg/platform/httputil"
	"diddht/pkg/platform/sentinel"
)

// DIDManager is the agent's identifier manager.
type DIDManager interface {
	Providers() []string
	Create(ctx context.Context, req didmanager.CreateRequest) (*models.Identifier, error)
	Get(ctx context.Context, did string) (*models.Identifier, error)
	GetByAlias(ctx context.Context, alias, provider string) (*models.Identifier, error)
	Find(ctx context.Context, req didmanager.FindRequest) ([]models.Identifier, error)
	Delete(ctx context.Context, did string) (bool, error)
	AddKey(ctx context.Context, did string, key kms.Key, options map[string]any) error
	AddService(ctx context.Context, did string, svc models.Service, options map[string]any) error
	RemoveKey(ctx context.Context, did, kid string, options map[string]any) error
	RemoveService(ctx context.Context, did, serviceID string, options map[string]any) error
	Update(ctx context.Context, args models.UpdateArgs) (*models.Identifier, error)
}

// KeyManager exposes public key metadata.
type KeyManager interface {
	GetKey(ctx context.Context, kid string) (kms.Key, error)
}

// agentMethod handles one remote agent call. A nil result with a nil error
// answers 204.
type agentMethod func(h *Handler, r *http.Request) (any, error)

var agentMethods = map[string]agentMethod{
	"didManagerGetProviders":  (*Handler).getProviders,
	"didManagerCreate":        (*Handler).create,
	"didManagerGet":           (*Handler).get,
	"didManagerGetByAlias":    (*Handler).getByAlias,
	"didManagerFind":          (*Handler).find,
	"didManagerDelete":        (*Handler).delete,
	"didManagerAddKey":        (*Handler).addKey,
	"didManagerAddService":    (*Handler).addService,
	"didManagerRemoveKey":     (*Handler).removeKey,
	"didManagerRemoveService": (*Handler).removeService,
	"didManagerUpdate":        (*Handler).update,
	"keyManagerGet":           (*Handler).getKey,
}

// AvailableMethods lists the agent methods served under /agent, sorted.
func AvailableMethods() []string {
	names := make([]string, 0, len(agentMethods))
	for name := range agentMethods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handler serves the remote agent API.
type Handler struct {
	dids         DIDManager
	keys         KeyManager
	logger       *slog.Logger
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
	timeout      time.Duration
}

// New creates the agent handler. A nil jwtValidator leaves the API open.
func New(
	dids DIDManager,
	keys KeyManager,
	logger *slog.Logger,
	metrics *metrics.Metrics,
	jwtValidator middleware.JWTValidator,
	timeout time.Duration) *Handler {
	return &Handler{
		dids:         dids,
		keys:         keys,
		logger:       logger,
		metrics:      metrics,
		jwtValidator: jwtValidator,
		timeout:      timeout,
	}
}

// Register registers the agent routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	agentRouter := chi.NewRouter()
	agentRouter.Use(middleware.Recovery(h.logger))
	agentRouter.Use(middleware.RequestID)
	agentRouter.Use(middleware.RequestTime)
	agentRouter.Use(middleware.Logger(h.logger))
	if h.timeout > 0 {
		agentRouter.Use(middleware.Timeout(h.timeout))
	}
	agentRouter.Use(middleware.ContentTypeJSON)
	agentRouter.Use(middleware.LatencyMiddleware(h.metrics))
	if h.jwtValidator != nil {
		agentRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	}
	agentRouter.Get("/", h.handleListMethods)
	agentRouter.Post("/{method}", h.handleAgentMethod)

	r.Mount("/agent", agentRouter)
}

func (h *Handler) handleListMethods(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"methods": AvailableMethods()})
}

func (h *Handler) handleAgentMethod(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	name := chi.URLParam(r, "method")

	method, ok := agentMethods[name]
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "unknown agent method: "+name))
		return
	}
	if !middleware.Allows(ctx, name) {
		h.logger.WarnContext(ctx, "agent method outside token scope",
			"request_id", requestID,
			"method", name,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "token does not grant "+name))
		return
	}

	result, err := method(h, r)
	if err != nil {
		h.logFailure(ctx, name, err)
		httputil.WriteError(w, err)
		return
	}
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) logFailure(ctx context.Context, method string, err error) {
	attrs := []any{
		"request_id", middleware.GetRequestID(ctx),
		"method", method,
		"error", err,
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeInternal, dErrors.CodePublishFailed:
		h.logger.ErrorContext(ctx, "agent method failed", attrs...)
	default:
		h.logger.WarnContext(ctx, "agent method rejected", attrs...)
	}
}

type didArgs struct {
	DID string `json:"did"`
}

func (a didArgs) validate() error {
	if a.DID == "" {
		return dErrors.New(dErrors.CodeValidation, "did is required")
	}
	return nil
}

type getByAliasArgs struct {
	Alias    string `json:"alias"`
	Provider string `json:"provider,omitempty"`
}

type addKeyArgs struct {
	DID     string         `json:"did"`
	Key     kms.Key        `json:"key"`
	Options map[string]any `json:"options,omitempty"`
}

type addServiceArgs struct {
	DID     string         `json:"did"`
	Service models.Service `json:"service"`
	Options map[string]any `json:"options,omitempty"`
}

type removeKeyArgs struct {
	DID     string         `json:"did"`
	KID     string         `json:"kid"`
	Options map[string]any `json:"options,omitempty"`
}

type removeServiceArgs struct {
	DID     string         `json:"did"`
	ID      string         `json:"id"`
	Options map[string]any `json:"options,omitempty"`
}

type keyArgs struct {
	KID string `json:"kid"`
}

func (h *Handler) getProviders(r *http.Request) (any, error) {
	return h.dids.Providers(), nil
}

func (h *Handler) create(r *http.Request) (any, error) {
	req, err := httputil.DecodeJSON[didmanager.CreateRequest](r)
	if err != nil {
		return nil, err
	}
	return h.dids.Create(r.Context(), req)
}

func (h *Handler) get(r *http.Request) (any, error) {
	args, err := httputil.DecodeJSON[didArgs](r)
	if err != nil {
		return nil, err
	}
	if err := args.validate(); err != nil {
		return nil, err
	}
	return h.dids.Get(r.Context(), args.DID)
}

func (h *Handler) getByAlias(r *http.Request) (any, error) {
	args, err := httputil.DecodeJSON[getByAliasArgs](r)
	if err != nil {
		return nil, err
	}
	if args.Alias == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "alias is required")
	}
	return h.dids.GetByAlias(r.Context(), args.Alias, args.Provider)
}

func (h *Handler) find(r *http.Request) (any, error) {
	req, err := httputil.DecodeJSON[didmanager.FindRequest](r)
	if err != nil {
		return nil, err
	}
	return h.dids.Find(r.Context(), req)
}

func (h *Handler) delete(r *http.Request) (any, error) {
	args, err := httputil.DecodeJSON[didArgs](r)
	if err != nil {
		return nil, err
	}
	if err := args.validate(); err != nil {
		return nil, err
	}
	return h.dids.Delete(r.Context(), args.DID)
}

func (h *Handler) addKey(r *http.Request) (any, error) {
	args, err := httputil.DecodeJSON[addKeyArgs](r)
	if err != nil {
		return nil, err
	}
	if err := (didArgs{DID: args.DID}).validate(); err != nil {
		return nil, err
	}
	return nil, h.dids.AddKey(r.Context(), args.DID, args.Key, args.Options)
}

func (h *Handler) addService(r *http.Request) (any, error) {
	args, err := httputil.DecodeJSON[addServiceArgs](r)
	if err != nil {
		return nil, err
	}
	if err := (didArgs{DID: args.DID}).validate(); err != nil {
		return nil, err
	}
	return nil, h.dids.AddService(r.Context(), args.DID, args.Service, args.Options)
}

func (h *Handler) removeKey(r *http.Request) (any, error) {
	args, err := httputil.DecodeJSON[removeKeyArgs](r)
	if err != nil {
		return nil, err
	}
	if err := (didArgs{DID: args.DID}).validate(); err != nil {
		return nil, err
	}
	return nil, h.dids.RemoveKey(r.Context(), args.DID, args.KID, args.Options)
}

func (h *Handler) removeService(r *http.Request) (any, error) {
	args, err := httputil.DecodeJSON[removeServiceArgs](r)
	if err != nil {
		return nil, err
	}
	if err := (didArgs{DID: args.DID}).validate(); err != nil {
		return nil, err
	}
	return nil, h.dids.RemoveService(r.Context(), args.DID, args.ID, args.Options)
}

func (h *Handler) update(r *http.Request) (any, error) {
	args, err := httputil.DecodeJSON[models.UpdateArgs](r)
	if err != nil {
		return nil, err
	}
	if err := (didArgs{DID: args.DID}).validate(); err != nil {
		return nil, err
	}
	return h.dids.Update(r.Context(), args)
}

func (h *Handler) getKey(r *http.Request) (any, error) {
	args, err := httputil.DecodeJSON[keyArgs](r)
	if err != nil {
		return nil, err
	}
	if args.KID == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "kid is required")
	}
	key, err := h.keys.GetKey(r.Context(), args.KID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Key not found: "+args.KID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load key")
	}
	return key, nil
}
