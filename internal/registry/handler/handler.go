package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pidreg/internal/platform/metrics"
	"pidreg/internal/platform/middleware"
	"pidreg/internal/registry/models"
	dErrors "pidreg/pkg/domain-errors"
)

// Service defines the registry operations the HTTP layer exposes.
type Service interface {
	RegisterUser(ctx context.Context, req *models.RegisterUserRequest) (*models.User, bool, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	RegisterAssetType(ctx context.Context, req *models.RegisterAssetTypeRequest) (*models.AssetType, bool, error)
	GetAssetType(ctx context.Context, id string) (*models.AssetType, error)
	ListAssetTypes(ctx context.Context) ([]*models.AssetType, error)
	RegisterAsset(ctx context.Context, req *models.RegisterAssetRequest) (*models.AssetDetails, error)
	ResolveGlobalID(ctx context.Context, ownerID int64, assetTypeID, localID string) (string, error)
	ResolveLocalID(ctx context.Context, globalID string) (string, error)
	ListAssetsForOwner(ctx context.Context, ownerID int64) ([]*models.AssetDetails, error)
}

// Handler is the thin HTTP layer over the registry service. It decodes
// requests, delegates, and translates domain errors to statuses; business
// logic stays in the service.
type Handler struct {
	registry Service
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates a registry Handler.
func New(registry Service, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{registry: registry, logger: logger, metrics: m}
}

// Register wires the registry routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(h.metrics))

	router.Post("/users/register", h.handleRegisterUser)
	router.Get("/users/{userID}", h.handleGetUser)

	router.Post("/asset_types/register", h.handleRegisterAssetType)
	router.Get("/asset_types", h.handleListAssetTypes)
	router.Get("/asset_types/{assetTypeID}", h.handleGetAssetType)

	router.Post("/assets/register", h.handleRegisterAsset)
	router.Get("/assets/global_id", h.handleResolveGlobalID)
	router.Get("/assets/local_id", h.handleResolveLocalID)
	router.Get("/assets", h.handleListAssets)

	r.Mount("/", router)
}

func (h *Handler) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	user, created, err := h.registry.RegisterUser(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, createdStatus(created), user)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "user id must be an integer"))
		return
	}

	user, err := h.registry.GetUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleRegisterAssetType(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterAssetTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	assetType, created, err := h.registry.RegisterAssetType(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, createdStatus(created), assetType)
}

func (h *Handler) handleGetAssetType(w http.ResponseWriter, r *http.Request) {
	assetType, err := h.registry.GetAssetType(r.Context(), chi.URLParam(r, "assetTypeID"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assetType)
}

func (h *Handler) handleListAssetTypes(w http.ResponseWriter, r *http.Request) {
	listed, err := h.registry.ListAssetTypes(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if listed == nil {
		listed = []*models.AssetType{}
	}
	writeJSON(w, http.StatusOK, listed)
}

func (h *Handler) handleRegisterAsset(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	details, err := h.registry.RegisterAsset(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, details)
}

func (h *Handler) handleResolveGlobalID(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	ownerID, err := strconv.ParseInt(query.Get("owner_id"), 10, 64)
	if err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "owner_id must be an integer"))
		return
	}

	globalID, err := h.registry.ResolveGlobalID(r.Context(), ownerID, query.Get("asset_type"), query.Get("local_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"global_id": globalID})
}

func (h *Handler) handleResolveLocalID(w http.ResponseWriter, r *http.Request) {
	localID, err := h.registry.ResolveLocalID(r.Context(), r.URL.Query().Get("global_id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"local_id": localID})
}

func (h *Handler) handleListAssets(w http.ResponseWriter, r *http.Request) {
	ownerID, err := strconv.ParseInt(r.URL.Query().Get("owner_id"), 10, 64)
	if err != nil {
		h.writeError(w, r, dErrors.New(dErrors.CodeBadRequest, "owner_id must be an integer"))
		return
	}

	listed, err := h.registry.ListAssetsForOwner(r.Context(), ownerID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if listed == nil {
		listed = []*models.AssetDetails{}
	}
	writeJSON(w, http.StatusOK, listed)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := dErrors.CodeOf(err)
	if code == dErrors.CodeInternal && h.logger != nil {
		h.logger.ErrorContext(r.Context(), "request failed",
			"error", err.Error(),
			"request_id", middleware.GetRequestID(r.Context()),
		)
	}
	writeJSON(w, dErrors.ToHTTPStatus(code), map[string]string{
		"error":   string(code),
		"message": dErrors.Message(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func createdStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
