package http

import (
	"errors"
	"net/http"

	"github.com/beamhq/beam/internal/server/service"
	"github.com/beamhq/beam/pkg/httpx"
)

// ForwardedUserHeader carries the identity asserted by the trusted reverse
// proxy. Never expose this endpoint without the proxy stripping the header
// from client requests.
const ForwardedUserHeader = "X-Forwarded-User"

type ForwardAuthHandler struct {
	ForwardAuthService *service.ForwardAuthService
}

// ServeHTTP godoc
//
//	@Summary		Forwarded Auth Endpoint
//	@Description	Log in the identity asserted by the reverse proxy's
//	@Description	X-Forwarded-User header, provisioning the account on first sight,
//	@Description	then redirect to / with the session token cookie set.
//	@Tags			Auth
//	@Produce		json
//	@Success		302
//	@Failure		400	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/api/v1/auth/forward [get].
func (h *ForwardAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := r.Header.Get(ForwardedUserHeader)
	if username == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "X-Forwarded-User header is required")
		return
	}

	token, err := h.ForwardAuthService.Authenticate(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrForwardAuthDisabled) {
			httpx.WriteError(w, http.StatusForbidden, "forward_auth_disabled", "Forwarded auth is disabled")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
