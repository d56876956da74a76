package http

import (
	"errors"
	"net/http"

	"github.com/beamhq/beam/internal/server/service"
	"github.com/beamhq/beam/pkg/httpx"
)

type InvitesHandler struct {
	InviteService *service.InviteService
}

type inviteMintResponse struct {
	Token string `json:"token"`
}

// HandleList godoc
//
//	@Summary		Invite Listing Endpoint
//	@Description	List every invite: first the unclaimed set, then the claimed set
//	@Description	with the claiming username. Each group is ordered by creation time
//	@Description	ascending; ordering across the groups is not guaranteed.
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{array}		domain.InviteRow	"id, created, claimed_by"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/v1/auth/invites [get].
func (h *InvitesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.InviteService.ListInvites(r.Context())
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rows)
}

// HandleMint godoc
//
//	@Summary		Invite Creation Endpoint
//	@Description	Mint a fresh single-use invite token.
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{object}	inviteMintResponse	"token"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/v1/auth/new_invite [post].
func (h *InvitesHandler) HandleMint(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token, err := h.InviteService.MintInvite(ctx, httpx.UsernameFromCtx(ctx))
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, inviteMintResponse{Token: token})
}

// HandleDelete godoc
//
//	@Summary		Invite Deletion Endpoint
//	@Description	Delete an unclaimed invite. Claimed invites are part of their
//	@Description	user's identity record and cannot be deleted.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	path	string	true	"Invite token"
//	@Success		200
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		403	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		404	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/v1/auth/token/{token} [delete].
func (h *InvitesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "token is required")
		return
	}

	if err := h.InviteService.DeleteInvite(r.Context(), token); err != nil {
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteError(w, http.StatusNotFound, "not_found", "Invite not found")
		case errors.Is(err, service.ErrInviteClaimed):
			httpx.WriteError(w, http.StatusConflict, "invite_claimed", "Invite has already been claimed")
		default:
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
