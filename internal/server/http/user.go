package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/beamhq/beam/internal/server/service"
	"github.com/beamhq/beam/pkg/httpx"
)

// maxAvatarBytes caps avatar uploads.
const maxAvatarBytes = 5 << 20

type UserHandler struct {
	UserService *service.UserService
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type changeUsernameRequest struct {
	NewUsername string `json:"new_username"`
}

type deleteSelfRequest struct {
	Password string `json:"password"`
}

// HandleChangePassword godoc
//
//	@Summary		Password Change Endpoint
//	@Description	Change the acting user's password after re-verifying the current one.
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body	changePasswordRequest	true	"Old and new password"
//	@Success		200
//	@Failure		400	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/v1/auth/password [patch].
func (h *UserHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.NewPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "new_password is required")
		return
	}

	err := h.UserService.ChangePassword(ctx, httpx.UsernameFromCtx(ctx), req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Current password is incorrect")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleChangeUsername godoc
//
//	@Summary		Username Change Endpoint
//	@Description	Rename the acting user's account.
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body	changeUsernameRequest	true	"New username"
//	@Success		200
//	@Failure		400	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		409	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/v1/auth/username [patch].
func (h *UserHandler) HandleChangeUsername(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req changeUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}
	if req.NewUsername == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "new_username is required")
		return
	}

	err := h.UserService.ChangeUsername(ctx, httpx.UsernameFromCtx(ctx), req.NewUsername)
	if err != nil {
		if errors.Is(err, service.ErrUsernameNotAvailable) {
			httpx.WriteError(w, http.StatusConflict, "username_not_available", "Username is already taken")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleDeleteSelf godoc
//
//	@Summary		Account Deletion Endpoint
//	@Description	Delete the acting user's account after re-verifying their password.
//	@Description	Deletion is terminal.
//	@Tags			User
//	@Accept			json
//	@Produce		json
//	@Param			request	body	deleteSelfRequest	true	"Current password"
//	@Success		200
//	@Failure		400	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/v1/user/delete [delete].
func (h *UserHandler) HandleDeleteSelf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req deleteSelfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	err := h.UserService.DeleteSelf(ctx, httpx.UsernameFromCtx(ctx), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Password is incorrect")
			return
		}
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleUploadAvatar godoc
//
//	@Summary		Avatar Upload Endpoint
//	@Description	Upload a JPEG or PNG avatar (multipart field "file", max 5 MB) and
//	@Description	attach it to the acting user's profile.
//	@Tags			User
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Avatar image"
//	@Success		200
//	@Failure		400	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	httpx.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/api/v1/user/avatar [post].
func (h *UserHandler) HandleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "upload_failed", "Could not parse multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "upload_failed", "Multipart field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "upload_failed", "Could not read uploaded file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	err = h.UserService.SetAvatar(ctx, httpx.UsernameFromCtx(ctx), contentType, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFile):
			httpx.WriteError(w, http.StatusBadRequest, "unsupported_file", "Only JPEG and PNG images are accepted")
		case errors.Is(err, service.ErrUploadFailed):
			httpx.WriteError(w, http.StatusBadRequest, "upload_failed", "Could not store uploaded file")
		default:
			httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
