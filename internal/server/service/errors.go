package service

import "errors"

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrNoToken              = errors.New("no valid invite token")
	ErrUsernameNotAvailable = errors.New("username not available")
	ErrForwardAuthDisabled  = errors.New("forwarded auth is disabled")
	ErrUploadFailed         = errors.New("upload failed")
	ErrUnsupportedFile      = errors.New("unsupported file type")
	ErrInviteNotFound       = errors.New("invite not found")
	ErrInviteClaimed        = errors.New("invite has already been claimed")
)
