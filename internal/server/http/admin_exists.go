package http

import (
	"net/http"

	"github.com/beamhq/beam/internal/server/service"
	"github.com/beamhq/beam/pkg/httpx"
)

type AdminExistsHandler struct {
	AuthService *service.AuthService
}

type adminExistsResponse struct {
	Exists bool `json:"exists"`
}

// ServeHTTP godoc
//
//	@Summary		Admin Exists Endpoint
//	@Description	Report whether the bootstrap owner has been created yet. Setup UIs
//	@Description	use this to decide between first-run and login screens.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	adminExistsResponse	"exists"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/api/v1/auth/admin_exists [get].
func (h *AdminExistsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	exists, err := h.AuthService.AdminExists(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, adminExistsResponse{Exists: exists})
}
