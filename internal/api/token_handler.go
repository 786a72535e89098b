package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/tendant/simple-upload/pkg/simpleupload/token"
)

// TokenHandler handles token encryption API endpoints
type TokenHandler struct {
	codec *token.Codec
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(codec *token.Codec) *TokenHandler {
	return &TokenHandler{codec: codec}
}

// Routes returns the router for token endpoints
func (h *TokenHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/encrypt", h.Encrypt)
	r.Post("/decrypt", h.Decrypt)
	return r
}

// EncryptRequest represents the request to encrypt a value
type EncryptRequest struct {
	Payload string `json:"payload"`
}

// EncryptResponse represents an encrypted token
type EncryptResponse struct {
	Token string `json:"token"`
}

// DecryptRequest represents the request to decrypt a token
type DecryptRequest struct {
	Token string `json:"token"`
}

// DecryptResponse represents a decrypted value
type DecryptResponse struct {
	Payload string `json:"payload"`
}

// Encrypt encrypts the plaintext in the request body into a URL-safe token
func (h *TokenHandler) Encrypt(w http.ResponseWriter, r *http.Request) {
	var req EncryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tok, err := h.codec.Encrypt(req.Payload)
	if err != nil {
		slog.Error("Failed to encrypt token", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, EncryptResponse{Token: tok})
}

// Decrypt recovers the plaintext from a token produced by Encrypt
func (h *TokenHandler) Decrypt(w http.ResponseWriter, r *http.Request) {
	var req DecryptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Token == "" {
		http.Error(w, "Token is required", http.StatusBadRequest)
		return
	}

	payload, err := h.codec.Decrypt(req.Token)
	if err != nil {
		slog.Error("Failed to decrypt token", "error", err)
		http.Error(w, err.Error(), decryptStatusCode(err))
		return
	}

	render.JSON(w, r, DecryptResponse{Payload: payload})
}

// decryptStatusCode distinguishes tokens that are structurally wrong from
// tokens that fail decryption.
func decryptStatusCode(err error) int {
	switch {
	case token.IsFormatError(err):
		return http.StatusBadRequest
	case token.IsCryptoError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
