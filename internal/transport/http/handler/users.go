package handler

import (
	"encoding/json"
	"net/http"

	"github.com/permahub/api/internal/application/user"
	"github.com/permahub/api/internal/domain"
	"github.com/permahub/api/internal/pkg/validate"
	"github.com/permahub/api/internal/transport/http/middleware"
)

// UserHandler handles account lifecycle endpoints: public registration and
// verification, and the authenticated profile read/patch.
type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(domain.KindBadInput), "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, string(domain.KindBadInput), err.Error())
		return
	}
	u, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, u)
}

func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(domain.KindBadInput), "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, string(domain.KindBadInput), err.Error())
		return
	}
	u, err := h.svc.Verify(r.Context(), req.Code)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, u)
}

// Get returns the authenticated caller's own profile. The identity was
// resolved by the authentication middleware; the gate guarantees it exists.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, string(domain.KindUnauthenticated), "Full authentication is required")
		return
	}
	writeSuccess(w, http.StatusOK, u)
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	u, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, string(domain.KindUnauthenticated), "Full authentication is required")
		return
	}
	var req domain.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(domain.KindBadInput), "invalid request body")
		return
	}
	updated, err := h.svc.UpdateProfile(r.Context(), u.UserID, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, updated)
}
