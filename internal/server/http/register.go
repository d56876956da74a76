package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/beamhq/beam/internal/server/service"
	"github.com/beamhq/beam/pkg/httpx"
)

type RegisterHandler struct {
	RegisterService *service.RegisterService
}

type registerRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	InviteToken string `json:"invite_token"`
}

type registerResponse struct {
	Username string `json:"username"`
}

// ServeHTTP godoc
//
//	@Summary		Registration Endpoint
//	@Description	Create a new account. The first account ever created becomes the
//	@Description	owner and needs no invite; every later registration must present a
//	@Description	valid unclaimed invite token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest			true	"New account"
//	@Success		200		{object}	registerResponse		"username"
//	@Failure		400		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse		"error, error_description"
//	@Router			/api/v1/auth/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	user, err := h.RegisterService.Register(ctx, req.Username, req.Password, req.InviteToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoToken):
			httpx.WriteError(w, http.StatusUnauthorized, "no_token", "A valid unclaimed invite token is required")
		case errors.Is(err, service.ErrUsernameNotAvailable):
			httpx.WriteError(w, http.StatusConflict, "username_not_available", "Username is already taken")
		default:
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, registerResponse{Username: user.Username})
}
