package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-upload/pkg/simpleupload"
	"github.com/tendant/simple-upload/pkg/simpleupload/audit"
)

// ResolveHandler handles metadata resolution API endpoints
type ResolveHandler struct {
	resolver     simpleupload.Resolver
	recorder     audit.Recorder
	blockDefault bool
}

// NewResolveHandler creates a new resolve handler. blockDefault applies when
// a request does not specify its own local-address policy.
func NewResolveHandler(resolver simpleupload.Resolver, recorder audit.Recorder, blockDefault bool) *ResolveHandler {
	return &ResolveHandler{
		resolver:     resolver,
		recorder:     recorder,
		blockDefault: blockDefault,
	}
}

// Routes returns the router for resolve endpoints
func (h *ResolveHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ResolveMetadata)
	r.Get("/audit", h.ListAudit)
	return r
}

// ResolveRequest represents the request to resolve remote resource metadata
type ResolveRequest struct {
	URL             string `json:"url"`
	BlockLocalAddrs *bool  `json:"block_local_addrs,omitempty"`
}

// ResolveResponse represents the resolved metadata
type ResolveResponse struct {
	URL         string `json:"url"`
	Scheme      string `json:"scheme"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	SizeKnown   bool   `json:"size_known"`
}

// AuditListResponse represents a page of recorded probe outcomes
type AuditListResponse struct {
	Entries []*audit.Entry `json:"entries"`
}

// ResolveMetadata probes the URL in the request body and returns its content
// type and size without fetching the body
func (h *ResolveHandler) ResolveMetadata(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		http.Error(w, "URL is required", http.StatusBadRequest)
		return
	}

	block := h.blockDefault
	if req.BlockLocalAddrs != nil {
		block = *req.BlockLocalAddrs
	}

	class := simpleupload.ClassifyURL(req.URL)
	meta, err := h.resolver.Resolve(r.Context(), simpleupload.ResolveRequest{
		URL:             req.URL,
		BlockLocalAddrs: block,
	})

	h.record(r, req.URL, class, meta, err)

	if err != nil {
		slog.Error("Failed to resolve metadata", "url", req.URL, "error", err)
		http.Error(w, err.Error(), resolveStatusCode(err))
		return
	}

	resp := ResolveResponse{
		URL:         req.URL,
		Scheme:      string(class),
		ContentType: meta.ContentType,
		SizeBytes:   meta.Size,
		SizeKnown:   meta.SizeKnown(),
	}

	render.JSON(w, r, resp)
}

// ListAudit returns the most recent probe outcomes
func (h *ResolveHandler) ListAudit(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.recorder.ListRecent(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to list audit entries", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []*audit.Entry{}
	}

	render.JSON(w, r, AuditListResponse{Entries: entries})
}

// record persists the probe outcome. Failures are logged, never surfaced.
func (h *ResolveHandler) record(r *http.Request, rawURL string, class simpleupload.SchemeClass, meta *simpleupload.ResourceMetadata, probeErr error) {
	entry := audit.NewEntry(rawURL, class, meta, probeErr)
	if err := h.recorder.Record(r.Context(), entry); err != nil {
		slog.Error("Failed to record audit entry", "url", rawURL, "error", err)
	}
}

// resolveStatusCode maps probe failures onto HTTP status codes: policy
// refusals are 403, malformed requests 400, anything upstream 502.
func resolveStatusCode(err error) int {
	switch {
	case errors.Is(err, simpleupload.ErrEmptyURL),
		errors.Is(err, simpleupload.ErrProberNotRegistered):
		return http.StatusBadRequest
	case simpleupload.IsBlockedAddress(err):
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}
