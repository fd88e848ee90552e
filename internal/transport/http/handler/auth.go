package handler

import (
	"encoding/json"
	"net/http"

	"github.com/permahub/api/internal/application/auth"
	"github.com/permahub/api/internal/domain"
	"github.com/permahub/api/internal/pkg/validate"
)

// AuthHandler handles the credential-exchange endpoints.
type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req domain.AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(domain.KindBadInput), "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, string(domain.KindBadInput), err.Error())
		return
	}
	pair, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, pair)
}

func (h *AuthHandler) ReAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req domain.ReAuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(domain.KindBadInput), "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, string(domain.KindBadInput), err.Error())
		return
	}
	pair, err := h.svc.ReAuthenticate(r.Context(), req.RefreshToken)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, pair)
}
