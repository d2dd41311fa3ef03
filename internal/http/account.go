package httpapi

import (
	"net/http"

	"github.com/nikolayk812/coinvault/internal/domain"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	state, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSession(state))
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.auth.SignUp(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, userJSON(user))
}

// SignOut always succeeds for the caller.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.auth.SignOut(r.Context(), bearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	state, _ := stateFrom(r.Context())
	writeJSON(w, http.StatusOK, toMe(state))
}

type profileRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	profile, err := h.auth.UpdateProfile(r.Context(), bearerToken(r), domain.ProfileUpdate(req))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfile(&profile))
}
