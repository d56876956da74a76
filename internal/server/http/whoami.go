package http

import (
	"fmt"
	"net/http"

	"github.com/beamhq/beam/internal/server/service"
	"github.com/beamhq/beam/pkg/httpx"
)

type WhoamiHandler struct {
	AuthService *service.AuthService
}

type whoamiResponse struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	Picture  *string  `json:"picture,omitempty"`
}

// ServeHTTP godoc
//
//	@Summary		Whoami Endpoint
//	@Description	Return the acting user's profile summary. The picture field is
//	@Description	omitted when no avatar has been uploaded.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	whoamiResponse		"username, roles, picture"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/v1/auth/whoami [get].
func (h *WhoamiHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := httpx.UsernameFromCtx(ctx)
	if username == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
		return
	}

	user, asset, err := h.AuthService.Whoami(ctx, username)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}

	resp := whoamiResponse{
		Username: user.Username,
		Roles:    user.Roles.Strings(),
	}
	if asset != nil {
		picture := fmt.Sprintf("/images/%s", asset.LocalPath)
		resp.Picture = &picture
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
